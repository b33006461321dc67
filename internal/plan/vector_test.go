package plan

import (
	"image"
	"testing"

	"github.com/0xdowz/auto-draw-bot/internal/palette"
	"github.com/0xdowz/auto-draw-bot/internal/quantize"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		name string
		in   []image.Point
		eps  float64
		want []image.Point
	}{
		{
			name: "two points untouched",
			in:   []image.Point{{0, 0}, {5, 0}},
			eps:  2,
			want: []image.Point{{0, 0}, {5, 0}},
		},
		{
			name: "collinear run collapses to endpoints",
			in:   []image.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}},
			eps:  2,
			want: []image.Point{{0, 0}, {4, 0}},
		},
		{
			name: "corner above threshold survives",
			in:   []image.Point{{0, 0}, {5, 5}, {10, 0}},
			eps:  2,
			want: []image.Point{{0, 0}, {5, 5}, {10, 0}},
		},
		{
			name: "shallow bump below threshold dropped",
			in:   []image.Point{{0, 0}, {5, 1}, {10, 0}},
			eps:  2,
			want: []image.Point{{0, 0}, {10, 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := simplify(tt.in, tt.eps)
			if len(got) != len(tt.want) {
				t.Fatalf("simplify = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("point %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestVectorNeverMorePointsThanOutline(t *testing.T) {
	twoBlocks := rasterFrom(t, 5, 2, []palette.Color{
		red, red, white, black, black,
		red, red, white, black, black,
	})
	rasters := []quantize.Raster{
		filledSquare(t, 4, red),
		filledSquare(t, 8, black),
		twoBlocks,
	}
	for i, r := range rasters {
		canvas := unitCanvas(r.Width, r.Height)
		outline := OutlinePlanner{Canvas: canvas, Skip: white}.Plan(r)
		vector := VectorPlanner{Canvas: canvas, Skip: white}.Plan(r)
		if vector.TotalPoints() > outline.TotalPoints() {
			t.Errorf("raster %d: vector %d points > outline %d points",
				i, vector.TotalPoints(), outline.TotalPoints())
		}
	}
}

func TestVectorPlannerStraightEdgeShrinks(t *testing.T) {
	// A long thin bar has straight boundary runs the simplifier collapses.
	r := filledSquare(t, 8, red)
	canvas := unitCanvas(8, 8)
	outline := OutlinePlanner{Canvas: canvas, Skip: white}.Plan(r)
	vector := VectorPlanner{Canvas: canvas, Skip: white}.Plan(r)
	if vector.TotalPoints() >= outline.TotalPoints() {
		t.Errorf("vector plan (%d points) should be shorter than outline (%d points)",
			vector.TotalPoints(), outline.TotalPoints())
	}
	for i, s := range vector {
		if len(s.Points) < 2 {
			t.Errorf("segment %d has %d points, want >= 2", i, len(s.Points))
		}
	}
}

func TestVectorPlannerEmptyCases(t *testing.T) {
	p := VectorPlanner{Canvas: unitCanvas(1, 1), Skip: white}.Plan(quantize.Raster{})
	if len(p) != 0 {
		t.Errorf("empty raster produced %d segments", len(p))
	}
}
