package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/0xdowz/auto-draw-bot/internal/palette"
)

// ImageSurface is an offscreen drawing surface. It accepts the same
// pointer primitives as a real target window but records the strokes into
// an RGBA image, which makes dry runs inspectable and testable.
type ImageSurface struct {
	rect    image.Rectangle
	img     *image.RGBA
	current color.RGBA
	penDown bool
	last    image.Point
}

// NewImageSurface returns a white canvas covering rect. The rectangle is
// expressed in the same coordinate space the planners map into, so plans
// replay onto it unchanged.
func NewImageSurface(rect image.Rectangle) *ImageSurface {
	img := image.NewRGBA(rect)
	draw.Draw(img, rect, &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return &ImageSurface{
		rect:    rect,
		img:     img,
		current: color.RGBA{A: 0xFF},
	}
}

func (s *ImageSurface) CanvasRect() image.Rectangle { return s.rect }

func (s *ImageSurface) SelectColor(c palette.Color) error {
	s.current = c.RGBA()
	return nil
}

func (s *ImageSurface) PointerDown(x, y int) error {
	s.penDown = true
	s.last = image.Pt(x, y)
	s.plot(x, y)
	return nil
}

func (s *ImageSurface) PointerMove(x, y int) error {
	if s.penDown {
		s.line(s.last, image.Pt(x, y))
		s.last = image.Pt(x, y)
	}
	return nil
}

func (s *ImageSurface) PointerUp(x, y int) error {
	if s.penDown {
		s.line(s.last, image.Pt(x, y))
	}
	s.penDown = false
	return nil
}

// Image returns the backing image. Callers must not mutate it while a run
// is in progress.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

// SavePNG writes the current canvas to path.
func (s *ImageSurface) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, s.img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func (s *ImageSurface) plot(x, y int) {
	if image.Pt(x, y).In(s.rect) {
		s.img.SetRGBA(x, y, s.current)
	}
}

// line rasterizes the stroke from a to b with Bresenham's algorithm.
func (s *ImageSurface) line(a, b image.Point) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		s.plot(x, y)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
