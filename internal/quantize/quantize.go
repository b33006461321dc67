package quantize

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/0xdowz/auto-draw-bot/internal/palette"
)

// Raster is a palette-indexed grid of colors, row-major. It is the handoff
// between the quantizer and a planner for one drawing session.
type Raster struct {
	Width  int
	Height int
	Cells  []palette.Color
}

func NewRaster(width, height int) Raster {
	if width <= 0 || height <= 0 {
		return Raster{}
	}
	return Raster{Width: width, Height: height, Cells: make([]palette.Color, width*height)}
}

func (r Raster) Empty() bool { return r.Width == 0 || r.Height == 0 }

func (r Raster) At(x, y int) palette.Color { return r.Cells[y*r.Width+x] }

func (r *Raster) Set(x, y int, c palette.Color) { r.Cells[y*r.Width+x] = c }

// Colors returns the distinct colors present, in first-appearance scan
// order. Planners iterate this to group segments per color.
func (r Raster) Colors() []palette.Color {
	var order []palette.Color
	seen := make(map[palette.Color]bool)
	for _, c := range r.Cells {
		if !seen[c] {
			seen[c] = true
			order = append(order, c)
		}
	}
	return order
}

// Image renders the raster back to a stdlib image, for previews.
func (r Raster) Image() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			out.SetRGBA(x, y, r.At(x, y).RGBA())
		}
	}
	return out
}

// Quantize resamples img to round(w*resolution) x round(h*resolution)
// (minimum 1x1 for non-empty sources) and maps every pixel to its nearest
// palette member. A nil or empty palette is the identity mapping: resampled
// colors pass through unchanged.
//
// Resampling is nearest-neighbor. It is deterministic and, unlike area
// averaging, never invents blend colors between palette cells, which keeps
// re-quantizing an already quantized raster stable.
func Quantize(img image.Image, resolution float64, pal palette.Palette) Raster {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return Raster{}
	}

	outW := int(math.Round(float64(srcW) * resolution))
	outH := int(math.Round(float64(srcH) * resolution))
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, outW, outH))
	if outW == srcW && outH == srcH {
		xdraw.Copy(scaled, image.Point{}, img, bounds, xdraw.Src, nil)
	} else {
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Src, nil)
	}

	out := NewRaster(outW, outH)
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			c := palette.FromColor(scaled.RGBAAt(x, y))
			out.Set(x, y, pal.Nearest(c))
		}
	}
	return out
}
