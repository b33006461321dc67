package config

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/0xdowz/auto-draw-bot/internal/palette"
)

// Settings is the on-disk form of a Config plus learned swatch positions.
// The field names match the settings.json format earlier releases wrote,
// so existing files keep working.
type Settings struct {
	TargetApp      string           `json:"target_app"`
	Style          string           `json:"style"`
	Resolution     float64          `json:"resolution"`
	SpeedSeconds   float64          `json:"speed"`
	CanvasArea     []int            `json:"canvas_area,omitempty"`
	ColorPositions map[string][]int `json:"color_positions,omitempty"`
}

// LoadSettings reads path and overlays it onto base. A missing file is not
// an error: the base config is returned unchanged.
func LoadSettings(path string, base Config) (Config, map[palette.Color]image.Point, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return base, nil, nil
	}
	if err != nil {
		return base, nil, &ResourceError{Resource: path, Err: err}
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return base, nil, &ConfigError{Field: path, Reason: fmt.Sprintf("invalid settings file: %v", err)}
	}

	if s.TargetApp != "" {
		base.Target = s.TargetApp
	}
	if s.Style != "" {
		base.Style = s.Style
	}
	if s.Resolution > 0 {
		base.Resolution = s.Resolution
	}
	if s.SpeedSeconds > 0 {
		base.Delay = time.Duration(s.SpeedSeconds * float64(time.Second))
	}
	if len(s.CanvasArea) == 4 {
		base.Canvas = image.Rect(s.CanvasArea[0], s.CanvasArea[1], s.CanvasArea[2], s.CanvasArea[3])
	}

	positions := make(map[palette.Color]image.Point, len(s.ColorPositions))
	for key, xy := range s.ColorPositions {
		var c palette.Color
		if _, err := fmt.Sscanf(key, "%d,%d,%d", &c.R, &c.G, &c.B); err != nil {
			return base, nil, &ConfigError{Field: path, Reason: fmt.Sprintf("bad color key %q", key)}
		}
		if len(xy) != 2 {
			return base, nil, &ConfigError{Field: path, Reason: fmt.Sprintf("bad position for color %q", key)}
		}
		positions[c] = image.Pt(xy[0], xy[1])
	}
	if len(positions) == 0 {
		positions = nil
	}
	return base, positions, nil
}

// SaveSettings writes c and the swatch positions to path in the
// settings.json format.
func SaveSettings(path string, c Config, positions map[palette.Color]image.Point) error {
	s := Settings{
		TargetApp:    c.Target,
		Style:        c.Style,
		Resolution:   c.Resolution,
		SpeedSeconds: c.Delay.Seconds(),
	}
	if c.Canvas != (image.Rectangle{}) {
		s.CanvasArea = []int{c.Canvas.Min.X, c.Canvas.Min.Y, c.Canvas.Max.X, c.Canvas.Max.Y}
	}
	if len(positions) > 0 {
		s.ColorPositions = make(map[string][]int, len(positions))
		for col, pt := range positions {
			key := fmt.Sprintf("%d,%d,%d", col.R, col.G, col.B)
			s.ColorPositions[key] = []int{pt.X, pt.Y}
		}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &ResourceError{Resource: path, Err: err}
	}
	return nil
}
