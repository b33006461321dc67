package palette

import (
	"fmt"
	"image/color"
)

// Color is one 8-bit-per-channel RGB color. Equality is exact channel match.
type Color struct {
	R, G, B uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// FromColor converts any stdlib color to an opaque 8-bit RGB Color.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// RGBA returns the opaque stdlib equivalent, for painting previews.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

func (c Color) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

var (
	White = Color{255, 255, 255}
	Black = Color{0, 0, 0}
)

// Palette is an ordered set of unique colors the target surface can render.
// Built once from defaults or a file, read-only afterwards.
type Palette []Color

// Nearest returns the palette member with the smallest RGB Euclidean
// distance to c. Ties go to the earliest entry in palette order. An empty
// palette degrades to identity mapping; configuration validation rejects
// empty palettes before any drawing starts, so callers never hit that case
// by accident.
func (p Palette) Nearest(c Color) Color {
	if len(p) == 0 {
		return c
	}
	best := p[0]
	bestDist := distSq(c, p[0])
	for _, candidate := range p[1:] {
		if d := distSq(c, candidate); d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	return best
}

func (p Palette) Contains(c Color) bool {
	for _, member := range p {
		if member == c {
			return true
		}
	}
	return false
}

// distSq is the squared Euclidean RGB distance. The square root is
// monotonic, so comparing squares picks the same nearest member.
func distSq(a, b Color) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// ForTarget returns the built-in palette for a target application name.
// Unknown names get the generic fallback.
func ForTarget(name string) Palette {
	switch name {
	case "mspaint", "paint":
		return MSPaint()
	case "gartic", "gartic phone":
		return Gartic()
	default:
		return Generic()
	}
}

// MSPaint is the default MS Paint color box.
func MSPaint() Palette {
	return Palette{
		{0, 0, 0},       // black
		{127, 127, 127}, // gray
		{136, 0, 21},    // dark red
		{237, 28, 36},   // red
		{255, 127, 39},  // orange
		{255, 242, 0},   // yellow
		{34, 177, 76},   // green
		{0, 162, 232},   // blue
		{63, 72, 204},   // dark blue
		{163, 73, 164},  // purple
		{255, 255, 255}, // white
		{195, 195, 195}, // light gray
		{185, 122, 87},  // brown
		{255, 174, 201}, // pink
		{255, 201, 14},  // gold
		{239, 228, 176}, // light yellow
		{181, 230, 29},  // light green
		{153, 217, 234}, // light blue
		{112, 146, 190}, // medium blue
		{200, 191, 231}, // lavender
	}
}

// Gartic is the Gartic Phone drawing palette.
func Gartic() Palette {
	return Palette{
		{0, 0, 0},       // black
		{102, 102, 102}, // dark gray
		{170, 170, 170}, // light gray
		{255, 255, 255}, // white
		{124, 77, 54},   // brown
		{198, 120, 87},  // light brown
		{240, 156, 118}, // beige
		{242, 178, 55},  // orange
		{252, 215, 3},   // yellow
		{253, 253, 150}, // light yellow
		{108, 224, 134}, // light green
		{54, 180, 107},  // green
		{39, 127, 70},   // dark green
		{135, 242, 255}, // light blue
		{34, 177, 214},  // blue
		{28, 101, 140},  // dark blue
		{158, 114, 189}, // purple
		{120, 71, 135},  // dark purple
		{255, 110, 166}, // pink
		{255, 18, 64},   // red
	}
}

// Generic is the 9-color fallback for custom targets.
func Generic() Palette {
	return Palette{
		{0, 0, 0},       // black
		{127, 127, 127}, // gray
		{255, 0, 0},     // red
		{0, 255, 0},     // green
		{0, 0, 255},     // blue
		{255, 255, 0},   // yellow
		{0, 255, 255},   // cyan
		{255, 0, 255},   // magenta
		{255, 255, 255}, // white
	}
}
