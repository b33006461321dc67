package plan

import (
	"image"
	"testing"

	"github.com/0xdowz/auto-draw-bot/internal/palette"
	"github.com/0xdowz/auto-draw-bot/internal/quantize"
)

// unitCanvas maps cell (x, y) onto screen point (x, y) exactly, so test
// expectations can be written in raster coordinates.
func unitCanvas(cols, rows int) Canvas {
	return Canvas{Rect: image.Rect(0, 0, 2*cols, 2*rows), Cols: cols, Rows: rows}
}

func rasterFrom(t *testing.T, w, h int, cells []palette.Color) quantize.Raster {
	t.Helper()
	if len(cells) != w*h {
		t.Fatalf("raster fixture: %d cells for %dx%d", len(cells), w, h)
	}
	r := quantize.NewRaster(w, h)
	copy(r.Cells, cells)
	return r
}

var (
	red   = palette.Color{R: 255}
	black = palette.Color{}
	white = palette.White
)

func TestPixelPlannerScenario(t *testing.T) {
	// 2x2 image: red/white on the first row, black/white on the second.
	r := rasterFrom(t, 2, 2, []palette.Color{
		red, white,
		black, white,
	})
	canvas := Canvas{Rect: image.Rect(0, 0, 2, 2), Cols: 2, Rows: 2}
	p := PixelPlanner{Canvas: canvas, Skip: white}.Plan(r)

	if len(p) != 2 {
		t.Fatalf("plan has %d segments, want 2 (white skipped)", len(p))
	}
	if p[0].Color != red || p[1].Color != black {
		t.Errorf("segment colors = %v, %v; want red then black", p[0].Color, p[1].Color)
	}
	for i, s := range p {
		if len(s.Points) != 1 {
			t.Errorf("segment %d has %d points, want 1 dab", i, len(s.Points))
		}
	}
	if want := canvas.CellCenter(0, 0); p[0].Points[0] != want {
		t.Errorf("red dab at %v, want %v", p[0].Points[0], want)
	}
	if want := canvas.CellCenter(0, 1); p[1].Points[0] != want {
		t.Errorf("black dab at %v, want %v", p[1].Points[0], want)
	}
}

func TestPixelPlannerGroupsColorsContiguously(t *testing.T) {
	// Interleaved colors across rows must still come out grouped.
	r := rasterFrom(t, 2, 2, []palette.Color{
		red, black,
		red, black,
	})
	p := PixelPlanner{Canvas: unitCanvas(2, 2), Skip: white}.Plan(r)

	if len(p) != 4 {
		t.Fatalf("plan has %d segments, want 4", len(p))
	}
	seen := make(map[palette.Color]int)
	last := palette.Color{R: 1, G: 2, B: 3}
	for _, s := range p {
		if s.Color != last {
			seen[s.Color]++
			last = s.Color
		}
	}
	for c, runs := range seen {
		if runs != 1 {
			t.Errorf("color %v appears in %d separate runs, want contiguous", c, runs)
		}
	}
}

func TestPixelPlannerOneSegmentPerNonSkipCell(t *testing.T) {
	r := rasterFrom(t, 3, 2, []palette.Color{
		red, white, black,
		black, red, white,
	})
	p := PixelPlanner{Canvas: unitCanvas(3, 2), Skip: white}.Plan(r)
	if len(p) != 4 {
		t.Errorf("plan has %d segments, want 4 non-skip cells", len(p))
	}
}

func TestPixelPlannerEmptyCases(t *testing.T) {
	if p := (PixelPlanner{Canvas: unitCanvas(1, 1), Skip: white}).Plan(quantize.Raster{}); len(p) != 0 {
		t.Errorf("empty raster produced %d segments", len(p))
	}
	allSkip := rasterFrom(t, 2, 2, []palette.Color{white, white, white, white})
	if p := (PixelPlanner{Canvas: unitCanvas(2, 2), Skip: white}).Plan(allSkip); len(p) != 0 {
		t.Errorf("all-skip raster produced %d segments", len(p))
	}
}

func TestCanvasCellCenter(t *testing.T) {
	c := Canvas{Rect: image.Rect(100, 50, 140, 70), Cols: 4, Rows: 2}
	tests := []struct {
		cx, cy int
		want   Point
	}{
		{0, 0, Point{105, 55}},
		{3, 0, Point{135, 55}},
		{0, 1, Point{105, 65}},
		{3, 1, Point{135, 65}},
	}
	for _, tt := range tests {
		if got := c.CellCenter(tt.cx, tt.cy); got != tt.want {
			t.Errorf("CellCenter(%d,%d) = %v, want %v", tt.cx, tt.cy, got, tt.want)
		}
	}
}
