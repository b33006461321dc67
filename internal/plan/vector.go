package plan

import (
	"image"
	"math"

	"github.com/0xdowz/auto-draw-bot/internal/palette"
	"github.com/0xdowz/auto-draw-bot/internal/quantize"
)

// DefaultEpsilon is the simplification threshold in raster units.
const DefaultEpsilon = 2.0

// VectorPlanner draws the same boundary chains as OutlinePlanner but
// thins each chain with Douglas-Peucker simplification first, trading a
// little geometric fidelity for much shorter strokes.
type VectorPlanner struct {
	Canvas  Canvas
	Skip    palette.Color
	Epsilon float64
}

func (p VectorPlanner) Plan(r quantize.Raster) Plan {
	eps := p.Epsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	var out Plan
	for _, ch := range boundaryChains(r, p.Skip) {
		if len(ch.cells) < 2 {
			continue
		}
		cells := simplify(ch.cells, eps)
		out = append(out, Segment{Color: ch.color, Points: p.Canvas.mapCells(cells)})
	}
	return out
}

// simplify is Douglas-Peucker: keep the endpoints, and recursively keep the
// interior point farthest from the chord while that distance exceeds eps.
// The result is always a subsequence of the input, so it never grows.
func simplify(cells []image.Point, eps float64) []image.Point {
	if len(cells) <= 2 {
		return cells
	}
	maxDist := 0.0
	maxIdx := 0
	first, last := cells[0], cells[len(cells)-1]
	for i := 1; i < len(cells)-1; i++ {
		if d := perpDistance(cells[i], first, last); d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}
	if maxDist < eps {
		return []image.Point{first, last}
	}
	left := simplify(cells[:maxIdx+1], eps)
	right := simplify(cells[maxIdx:], eps)
	out := make([]image.Point, 0, len(left)+len(right)-1)
	out = append(out, left[:len(left)-1]...)
	return append(out, right...)
}

// perpDistance is the perpendicular distance from p to the line through a
// and b. Coincident endpoints degenerate to plain point distance.
func perpDistance(p, a, b image.Point) float64 {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(float64(p.X-a.X), float64(p.Y-a.Y))
	}
	return math.Abs(dx*float64(a.Y-p.Y)-float64(a.X-p.X)*dy) / length
}
