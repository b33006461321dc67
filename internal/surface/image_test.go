package surface

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xdowz/auto-draw-bot/internal/palette"
)

func TestImageSurfaceStartsWhite(t *testing.T) {
	s := NewImageSurface(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := s.Image().RGBAAt(x, y); got != (color.RGBA{255, 255, 255, 255}) {
				t.Fatalf("pixel (%d,%d) = %v, want white", x, y, got)
			}
		}
	}
}

func TestImageSurfaceDab(t *testing.T) {
	s := NewImageSurface(image.Rect(0, 0, 8, 8))
	if err := s.SelectColor(palette.Color{R: 255}); err != nil {
		t.Fatal(err)
	}
	if err := s.PointerDown(3, 4); err != nil {
		t.Fatal(err)
	}
	if err := s.PointerUp(3, 4); err != nil {
		t.Fatal(err)
	}
	if got := s.Image().RGBAAt(3, 4); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("dab pixel = %v, want red", got)
	}
	// A single dab touches exactly one pixel.
	painted := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if s.Image().RGBAAt(x, y) != (color.RGBA{255, 255, 255, 255}) {
				painted++
			}
		}
	}
	if painted != 1 {
		t.Errorf("%d pixels painted, want 1", painted)
	}
}

func TestImageSurfaceStrokeLines(t *testing.T) {
	tests := []struct {
		name string
		from image.Point
		to   image.Point
		want []image.Point
	}{
		{"horizontal", image.Pt(1, 2), image.Pt(4, 2), []image.Point{{1, 2}, {2, 2}, {3, 2}, {4, 2}}},
		{"vertical", image.Pt(2, 0), image.Pt(2, 3), []image.Point{{2, 0}, {2, 1}, {2, 2}, {2, 3}}},
		{"diagonal", image.Pt(0, 0), image.Pt(3, 3), []image.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewImageSurface(image.Rect(0, 0, 8, 8))
			if err := s.SelectColor(palette.Color{}); err != nil {
				t.Fatal(err)
			}
			if err := s.PointerDown(tt.from.X, tt.from.Y); err != nil {
				t.Fatal(err)
			}
			if err := s.PointerUp(tt.to.X, tt.to.Y); err != nil {
				t.Fatal(err)
			}
			black := color.RGBA{0, 0, 0, 255}
			for _, pt := range tt.want {
				if got := s.Image().RGBAAt(pt.X, pt.Y); got != black {
					t.Errorf("pixel %v = %v, want black", pt, got)
				}
			}
		})
	}
}

func TestImageSurfaceMoveWithoutPenIsNoop(t *testing.T) {
	s := NewImageSurface(image.Rect(0, 0, 4, 4))
	if err := s.SelectColor(palette.Color{R: 255}); err != nil {
		t.Fatal(err)
	}
	if err := s.PointerMove(2, 2); err != nil {
		t.Fatal(err)
	}
	if got := s.Image().RGBAAt(2, 2); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("hover painted pixel: %v", got)
	}
}

func TestImageSurfaceClipsOutOfBounds(t *testing.T) {
	s := NewImageSurface(image.Rect(0, 0, 4, 4))
	if err := s.SelectColor(palette.Color{}); err != nil {
		t.Fatal(err)
	}
	// Stroke exiting the canvas must not panic.
	if err := s.PointerDown(2, 2); err != nil {
		t.Fatal(err)
	}
	if err := s.PointerUp(10, 2); err != nil {
		t.Fatal(err)
	}
	if got := s.Image().RGBAAt(3, 2); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("edge pixel = %v, want black", got)
	}
}

func TestImageSurfaceOffsetRect(t *testing.T) {
	rect := image.Rect(100, 50, 110, 60)
	s := NewImageSurface(rect)
	if s.CanvasRect() != rect {
		t.Fatalf("CanvasRect() = %v, want %v", s.CanvasRect(), rect)
	}
	if err := s.SelectColor(palette.Color{B: 255}); err != nil {
		t.Fatal(err)
	}
	if err := s.PointerDown(105, 55); err != nil {
		t.Fatal(err)
	}
	if err := s.PointerUp(105, 55); err != nil {
		t.Fatal(err)
	}
	if got := s.Image().RGBAAt(105, 55); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("pixel in offset rect = %v, want blue", got)
	}
}

func TestSavePNG(t *testing.T) {
	s := NewImageSurface(image.Rect(0, 0, 4, 4))
	path := filepath.Join(t.TempDir(), "out.png")
	if err := s.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("wrote empty file")
	}
}
