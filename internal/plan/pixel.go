package plan

import (
	"github.com/0xdowz/auto-draw-bot/internal/palette"
	"github.com/0xdowz/auto-draw-bot/internal/quantize"
)

// PixelPlanner emits one dab per raster cell, skipping the background
// color. Colors appear in first-appearance scan order; within a color
// group, cells follow row-major scan order.
type PixelPlanner struct {
	Canvas Canvas
	Skip   palette.Color
}

func (p PixelPlanner) Plan(r quantize.Raster) Plan {
	if r.Empty() {
		return nil
	}

	var order []palette.Color
	groups := make(map[palette.Color][]Point)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			c := r.At(x, y)
			if c == p.Skip {
				continue
			}
			if _, ok := groups[c]; !ok {
				order = append(order, c)
			}
			groups[c] = append(groups[c], p.Canvas.CellCenter(x, y))
		}
	}

	var out Plan
	for _, c := range order {
		for _, pt := range groups[c] {
			out = append(out, Segment{Color: c, Points: []Point{pt}})
		}
	}
	return out
}
