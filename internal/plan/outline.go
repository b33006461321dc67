package plan

import (
	"github.com/0xdowz/auto-draw-bot/internal/palette"
	"github.com/0xdowz/auto-draw-bot/internal/quantize"
)

// OutlinePlanner traces the boundary of each colored region as one
// continuous stroke per boundary loop. Chains shorter than two cells are
// dropped: a lone boundary cell is not a stroke.
type OutlinePlanner struct {
	Canvas Canvas
	Skip   palette.Color
}

func (p OutlinePlanner) Plan(r quantize.Raster) Plan {
	var out Plan
	for _, ch := range boundaryChains(r, p.Skip) {
		if len(ch.cells) < 2 {
			continue
		}
		out = append(out, Segment{Color: ch.color, Points: p.Canvas.mapCells(ch.cells)})
	}
	return out
}
