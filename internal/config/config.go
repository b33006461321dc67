package config

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/0xdowz/auto-draw-bot/internal/palette"
)

// Drawing styles.
const (
	StylePixel   = "pixel"
	StyleOutline = "outline"
	StyleVector  = "vector"
)

// Environment variable names. Flags override these; these override the
// built-in defaults.
const (
	EnvTarget     = "AUTODRAW_TARGET"
	EnvStyle      = "AUTODRAW_STYLE"
	EnvResolution = "AUTODRAW_RESOLUTION"
	EnvSpeed      = "AUTODRAW_SPEED"
)

// Config holds everything a drawing run needs beyond the input image.
type Config struct {
	// Style selects the planner: pixel, outline, or vector.
	Style string

	// Target names the app whose window receives the strokes: mspaint,
	// gartic, or custom. "custom" draws wherever the canvas rectangle is
	// with the generic palette.
	Target string

	// Resolution scales the source image before quantization. 0.5 halves
	// each dimension.
	Resolution float64

	// Delay is the pause between consecutive pointer steps.
	Delay time.Duration

	// Skip is the background color the planners leave unpainted.
	Skip palette.Color

	// Canvas is the screen rectangle strokes are mapped into. A zero
	// rectangle means center a default-sized canvas on the screen.
	Canvas image.Rectangle

	// PalettePath optionally overrides the target's built-in palette
	// with one loaded from a JSON or CSV file.
	PalettePath string
}

// Default returns the configuration a bare invocation runs with, matching
// the MS Paint preset.
func Default() Config {
	return Config{
		Style:      StylePixel,
		Target:     "mspaint",
		Resolution: 1.0,
		Delay:      time.Millisecond,
		Skip:       palette.White,
	}
}

// FromEnv overlays environment variables onto c. Unset variables leave the
// field untouched; malformed values are ConfigErrors.
func FromEnv(c Config) (Config, error) {
	if v := os.Getenv(EnvTarget); v != "" {
		c.Target = v
	}
	if v := os.Getenv(EnvStyle); v != "" {
		c.Style = v
	}
	if raw := os.Getenv(EnvResolution); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c, &ConfigError{Field: EnvResolution, Reason: fmt.Sprintf("must be a number, got %q", raw)}
		}
		c.Resolution = v
	}
	if raw := os.Getenv(EnvSpeed); raw != "" {
		v, err := ParseSpeed(raw)
		if err != nil {
			return c, err
		}
		c.Delay = v
	}
	return c, nil
}

// ParseSpeed parses the inter-step delay: either a plain number of seconds
// ("0.001", the settings-file form) or a Go duration ("5ms").
func ParseSpeed(raw string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, &ConfigError{Field: "speed", Reason: fmt.Sprintf("want seconds or a duration, got %q", raw)}
	}
	return d, nil
}

// Validate checks field ranges. It returns the first problem found as a
// ConfigError.
func (c Config) Validate() error {
	switch c.Style {
	case StylePixel, StyleOutline, StyleVector:
	default:
		return &ConfigError{Field: "style", Reason: fmt.Sprintf("unknown style %q (want pixel, outline, or vector)", c.Style)}
	}
	switch c.Target {
	case "mspaint", "paint", "gartic", "gartic phone", "custom":
	default:
		return &ConfigError{Field: "target", Reason: fmt.Sprintf("unknown target %q (want mspaint, gartic, or custom)", c.Target)}
	}
	if c.Resolution <= 0 {
		return &ConfigError{Field: "resolution", Reason: "must be positive"}
	}
	if c.Delay <= 0 {
		return &ConfigError{Field: "speed", Reason: "must be positive"}
	}
	if c.Canvas != (image.Rectangle{}) && (c.Canvas.Dx() <= 0 || c.Canvas.Dy() <= 0) {
		return &ConfigError{Field: "canvas", Reason: "rectangle must have positive width and height"}
	}
	return nil
}

// ParseCanvas parses "x1,y1,x2,y2" into a rectangle.
func ParseCanvas(raw string) (image.Rectangle, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, &ConfigError{Field: "canvas", Reason: fmt.Sprintf("want x1,y1,x2,y2, got %q", raw)}
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, &ConfigError{Field: "canvas", Reason: fmt.Sprintf("bad coordinate %q", p)}
		}
		vals[i] = v
	}
	r := image.Rect(vals[0], vals[1], vals[2], vals[3])
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return image.Rectangle{}, &ConfigError{Field: "canvas", Reason: "rectangle must have positive width and height"}
	}
	return r, nil
}

// CenteredCanvas returns a rectangle of the given size centered on a
// screen of the given dimensions, used when no canvas is configured.
func CenteredCanvas(screenW, screenH, w, h int) image.Rectangle {
	if w > screenW {
		w = screenW
	}
	if h > screenH {
		h = screenH
	}
	x := (screenW - w) / 2
	y := (screenH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}
