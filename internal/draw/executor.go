package draw

import (
	"image"
	"time"

	"github.com/0xdowz/auto-draw-bot/internal/cancel"
	"github.com/0xdowz/auto-draw-bot/internal/palette"
	"github.com/0xdowz/auto-draw-bot/internal/plan"
)

// Surface is the target-surface collaborator: it owns the canvas
// rectangle, color selection, and the raw pointer primitives the executor
// replays segments through.
type Surface interface {
	CanvasRect() image.Rectangle
	SelectColor(c palette.Color) error
	PointerDown(x, y int) error
	PointerMove(x, y int) error
	PointerUp(x, y int) error
}

// Status is the terminal outcome of a drawing run. Cancelled is a normal
// outcome, not an error.
type Status int

const (
	StatusCompleted Status = iota
	StatusCancelled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result reports how a run ended. SegmentsDone counts fully drawn
// segments; a segment interrupted mid-stroke is not counted. Reason is set
// only for StatusFailed.
type Result struct {
	Status       Status
	SegmentsDone int
	Reason       error
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Executor replays a plan through a surface in real time. Cancellation is
// cooperative: the token is checked before every segment and during every
// inter-step delay, never preemptively.
type Executor struct {
	Surface Surface
	Delay   time.Duration
	Logger  Logger

	// Progress, when set, is called after each completed segment.
	Progress func(done int)

	// SettleDelay is an extra pause after a color change so the target
	// app registers the selection. Defaults to twice Delay, at least
	// 200ms, mirroring the original bot.
	SettleDelay time.Duration
}

// tokenPollSlice bounds cancellation latency during long delays.
const tokenPollSlice = 5 * time.Millisecond

// Run iterates the plan's segments in order and replays each as pointer
// down / move / up with the configured inter-step delay. It returns on the
// first cancellation or surface failure; an exhausted plan completes.
func (e *Executor) Run(p plan.Plan, token *cancel.Token) Result {
	var lastColor palette.Color
	haveColor := false

	for i, seg := range p {
		if token.Cancelled() {
			e.logf("cancelled after %d/%d segments", i, len(p))
			return Result{Status: StatusCancelled, SegmentsDone: i}
		}

		if !haveColor || seg.Color != lastColor {
			if err := e.Surface.SelectColor(seg.Color); err != nil {
				return Result{Status: StatusFailed, SegmentsDone: i, Reason: err}
			}
			lastColor = seg.Color
			haveColor = true
			if !e.pause(token, e.settle()) {
				return Result{Status: StatusCancelled, SegmentsDone: i}
			}
		}

		first := seg.Points[0]
		if err := e.Surface.PointerDown(first.X, first.Y); err != nil {
			return Result{Status: StatusFailed, SegmentsDone: i, Reason: err}
		}
		last := first
		for _, pt := range seg.Points[1:] {
			if !e.pause(token, e.Delay) {
				// Lift the pen before abandoning the stroke.
				_ = e.Surface.PointerUp(last.X, last.Y)
				e.logf("cancelled mid-segment after %d/%d segments", i, len(p))
				return Result{Status: StatusCancelled, SegmentsDone: i}
			}
			if err := e.Surface.PointerMove(pt.X, pt.Y); err != nil {
				_ = e.Surface.PointerUp(last.X, last.Y)
				return Result{Status: StatusFailed, SegmentsDone: i, Reason: err}
			}
			last = pt
		}
		if err := e.Surface.PointerUp(last.X, last.Y); err != nil {
			return Result{Status: StatusFailed, SegmentsDone: i, Reason: err}
		}

		if e.Progress != nil {
			e.Progress(i + 1)
		}
		if (i+1)%500 == 0 {
			e.logf("progress: %d/%d segments", i+1, len(p))
		}

		// The inter-step delay also paces single-point segments, so the
		// configured speed applies to dab-only plans too.
		if i+1 < len(p) && !e.pause(token, e.Delay) {
			e.logf("cancelled after %d/%d segments", i+1, len(p))
			return Result{Status: StatusCancelled, SegmentsDone: i + 1}
		}
	}

	return Result{Status: StatusCompleted, SegmentsDone: len(p)}
}

// pause sleeps for d in small slices, polling the token, and reports
// whether the run may continue.
func (e *Executor) pause(token *cancel.Token, d time.Duration) bool {
	for remaining := d; remaining > 0; remaining -= tokenPollSlice {
		if token.Cancelled() {
			return false
		}
		slice := remaining
		if slice > tokenPollSlice {
			slice = tokenPollSlice
		}
		time.Sleep(slice)
	}
	return !token.Cancelled()
}

func (e *Executor) settle() time.Duration {
	if e.SettleDelay > 0 {
		return e.SettleDelay
	}
	settle := 2 * e.Delay
	if settle < 200*time.Millisecond {
		settle = 200 * time.Millisecond
	}
	return settle
}

func (e *Executor) logf(format string, args ...interface{}) {
	if e.Logger != nil {
		e.Logger.Infof("draw", format, args...)
	}
}
