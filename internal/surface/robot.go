package surface

import (
	"fmt"
	"image"
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/0xdowz/auto-draw-bot/internal/palette"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// RobotSurface drives the real OS pointer. Coordinates are absolute screen
// coordinates; Rect is the region of the target window the planners mapped
// the raster into.
type RobotSurface struct {
	Rect image.Rectangle

	// ColorPositions maps palette colors to the screen position of their
	// swatch in the target app. Colors without a known swatch keep the
	// previously selected color.
	ColorPositions map[palette.Color]image.Point

	// ClickPause is a short sleep after a swatch click so the target app
	// registers it before drawing resumes. Zero means 50ms.
	ClickPause time.Duration

	Logger Logger
}

func (s *RobotSurface) CanvasRect() image.Rectangle { return s.Rect }

func (s *RobotSurface) SelectColor(c palette.Color) error {
	pos, ok := s.ColorPositions[c]
	if !ok {
		if s.Logger != nil {
			s.Logger.Errorf("surface", "no swatch position for %s, keeping current color", c)
		}
		return nil
	}
	robotgo.Move(pos.X, pos.Y)
	robotgo.Click("left")
	pause := s.ClickPause
	if pause <= 0 {
		pause = 50 * time.Millisecond
	}
	time.Sleep(pause)
	return nil
}

func (s *RobotSurface) PointerDown(x, y int) error {
	robotgo.Move(x, y)
	if err := robotgo.Toggle("left", "down"); err != nil {
		return fmt.Errorf("press at (%d,%d): %w", x, y, err)
	}
	return nil
}

func (s *RobotSurface) PointerMove(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (s *RobotSurface) PointerUp(x, y int) error {
	robotgo.Move(x, y)
	if err := robotgo.Toggle("left", "up"); err != nil {
		return fmt.Errorf("release at (%d,%d): %w", x, y, err)
	}
	return nil
}

// PointerPosition reports the current pointer location. The fail-safe
// corner watcher polls this.
func PointerPosition() (int, int) { return robotgo.Location() }

// ScreenSize reports the primary display dimensions.
func ScreenSize() (int, int) { return robotgo.GetScreenSize() }
