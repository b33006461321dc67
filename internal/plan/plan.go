package plan

import (
	"image"
	"math"

	"github.com/0xdowz/auto-draw-bot/internal/palette"
	"github.com/0xdowz/auto-draw-bot/internal/quantize"
)

// Point is a screen-space coordinate.
type Point struct {
	X, Y int
}

// Segment is the atomic drawing unit: one dab (single point) or one
// continuous stroke (two or more points), painted in one color.
// Segments are immutable once produced.
type Segment struct {
	Color  palette.Color
	Points []Point
}

// Plan is the ordered segment list for one drawing run. All segments of one
// color are contiguous so the executor switches colors as rarely as
// possible.
type Plan []Segment

func (p Plan) TotalPoints() int {
	n := 0
	for _, s := range p {
		n += len(s.Points)
	}
	return n
}

// Planner turns a quantized raster into a plan. The three styles (pixel,
// outline, vector) all implement it; the style selector in the run
// configuration picks one per run.
type Planner interface {
	Plan(r quantize.Raster) Plan
}

// Canvas maps raster cells onto the target surface's canvas rectangle.
// The rectangle comes from the target-surface collaborator; Cols and Rows
// are the raster dimensions of the session.
type Canvas struct {
	Rect image.Rectangle
	Cols int
	Rows int
}

// CellCenter returns the screen coordinate of the center of cell (cx, cy).
func (c Canvas) CellCenter(cx, cy int) Point {
	cellW := float64(c.Rect.Dx()) / float64(c.Cols)
	cellH := float64(c.Rect.Dy()) / float64(c.Rows)
	return Point{
		X: c.Rect.Min.X + int(math.Round((float64(cx)+0.5)*cellW)),
		Y: c.Rect.Min.Y + int(math.Round((float64(cy)+0.5)*cellH)),
	}
}

func (c Canvas) mapCells(cells []image.Point) []Point {
	out := make([]Point, len(cells))
	for i, cell := range cells {
		out[i] = c.CellCenter(cell.X, cell.Y)
	}
	return out
}
