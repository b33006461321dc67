// Package window locates and focuses the target application before a run.
package window

import (
	"fmt"
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/0xdowz/auto-draw-bot/internal/config"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// settleDelay gives the window manager time to raise and focus the window
// before strokes start landing on it.
const settleDelay = 500 * time.Millisecond

// Activate brings the first window whose process name matches name to the
// foreground. It returns a ResourceError when no such process exists.
func Activate(name string, log Logger) error {
	pids, err := robotgo.FindIds(name)
	if err != nil {
		return &config.ResourceError{Resource: "window " + name, Err: err}
	}
	if len(pids) == 0 {
		return &config.ResourceError{Resource: "window " + name, Err: fmt.Errorf("no running process matches %q", name)}
	}
	if err := robotgo.ActivePid(pids[0]); err != nil {
		return &config.ResourceError{Resource: "window " + name, Err: err}
	}
	if log != nil {
		log.Infof("window", "activated %s (pid %d)", name, pids[0])
	}
	time.Sleep(settleDelay)
	return nil
}
