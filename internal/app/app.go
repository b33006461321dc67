package app

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/0xdowz/auto-draw-bot/internal/cancel"
	"github.com/0xdowz/auto-draw-bot/internal/config"
	"github.com/0xdowz/auto-draw-bot/internal/draw"
	"github.com/0xdowz/auto-draw-bot/internal/palette"
	"github.com/0xdowz/auto-draw-bot/internal/plan"
	"github.com/0xdowz/auto-draw-bot/internal/quantize"
	"github.com/0xdowz/auto-draw-bot/internal/state"
)

// App runs the drawing pipeline: quantize the source image, plan strokes,
// count down, replay them through the surface. One run at a time.
type App struct {
	Store   *state.Store
	Surface draw.Surface
	Token   *cancel.Token
	Monitor *cancel.Monitor
	Logger  Logger

	// Countdown is the grace period before strokes start, giving the user
	// time to focus the target window or bail out.
	Countdown time.Duration

	runMu sync.Mutex
}

func New(store *state.Store, surface draw.Surface, token *cancel.Token, monitor *cancel.Monitor) *App {
	return &App{Store: store, Surface: surface, Token: token, Monitor: monitor, Logger: NoopLogger{}}
}

// Run draws img according to cfg. The returned Result reports how the run
// ended; the error is non-nil only when the pipeline could not start.
func (app *App) Run(ctx context.Context, cfg config.Config, sourceName string, img image.Image) (draw.Result, error) {
	app.runMu.Lock()
	defer app.runMu.Unlock()

	run := state.RunInfo{
		ID:     uuid.NewString(),
		Source: sourceName,
		Style:  cfg.Style,
		Target: cfg.Target,
	}
	app.Store.StartRun(run)
	app.Logger.Infof("app", "run %s: %s style, source %s", run.ID, cfg.Style, sourceName)

	pal, err := app.paletteFor(cfg)
	if err != nil {
		app.Store.Fail(err)
		return draw.Result{Status: draw.StatusFailed, Reason: err}, err
	}

	app.Store.SetPhase(state.PLANNING)
	raster := quantize.Quantize(img, cfg.Resolution, pal)
	planner, err := app.plannerFor(cfg, raster)
	if err != nil {
		app.Store.Fail(err)
		return draw.Result{Status: draw.StatusFailed, Reason: err}, err
	}
	p := planner.Plan(raster)
	app.Logger.Infof("app", "run %s: %dx%d raster, %d segments, %d points",
		run.ID, raster.Width, raster.Height, len(p), p.TotalPoints())

	if app.Monitor != nil {
		if err := app.Monitor.Start(ctx); err != nil {
			app.Store.Fail(err)
			return draw.Result{Status: draw.StatusFailed, Reason: err}, err
		}
		defer app.Monitor.Stop()
	} else {
		app.Token.Reset()
	}

	if !app.countdown() {
		app.Store.SetPhase(state.CANCELLED)
		app.Logger.Infof("app", "run %s: cancelled during countdown", run.ID)
		return draw.Result{Status: draw.StatusCancelled}, nil
	}

	app.Store.SetPhase(state.DRAWING)
	executor := &draw.Executor{
		Surface: app.Surface,
		Delay:   cfg.Delay,
		Logger:  app.Logger,
		Progress: func(done int) {
			progress := state.Progress{SegmentsDone: done, SegmentsTotal: len(p)}
			if done <= len(p) && done > 0 {
				progress.Color = p[done-1].Color.String()
			}
			app.Store.UpdateProgress(progress)
		},
	}
	result := executor.Run(p, app.Token)

	switch result.Status {
	case draw.StatusCompleted:
		app.Store.SetPhase(state.DONE)
		app.Logger.Infof("app", "run %s: completed, %d segments", run.ID, result.SegmentsDone)
	case draw.StatusCancelled:
		app.Store.SetPhase(state.CANCELLED)
		app.Logger.Infof("app", "run %s: cancelled after %d segments", run.ID, result.SegmentsDone)
	case draw.StatusFailed:
		app.Store.Fail(result.Reason)
		app.Logger.Errorf("app", "run %s: failed after %d segments: %v", run.ID, result.SegmentsDone, result.Reason)
	}
	return result, nil
}

// countdown waits the configured grace period, ticking once a second. It
// reports false when the run was cancelled while waiting.
func (app *App) countdown() bool {
	if app.Countdown <= 0 {
		return !app.Token.Cancelled()
	}
	app.Store.SetPhase(state.COUNTDOWN)
	remaining := app.Countdown
	for remaining > 0 {
		if app.Token.Cancelled() {
			return false
		}
		app.Logger.Infof("app", "drawing starts in %v", remaining.Round(time.Second))
		step := time.Second
		if remaining < step {
			step = remaining
		}
		time.Sleep(step)
		remaining -= step
	}
	return !app.Token.Cancelled()
}

func (app *App) paletteFor(cfg config.Config) (palette.Palette, error) {
	if cfg.PalettePath != "" {
		pal, err := palette.Load(cfg.PalettePath)
		if err != nil {
			// An unusable palette is a configuration problem, same as an
			// unknown style: the operator pointed at a bad file.
			return nil, &config.ConfigError{Field: "palette", Reason: err.Error()}
		}
		return pal, nil
	}
	return palette.ForTarget(cfg.Target), nil
}

func (app *App) plannerFor(cfg config.Config, raster quantize.Raster) (plan.Planner, error) {
	canvas := plan.Canvas{Rect: app.Surface.CanvasRect(), Cols: raster.Width, Rows: raster.Height}
	switch cfg.Style {
	case config.StylePixel:
		return plan.PixelPlanner{Canvas: canvas, Skip: cfg.Skip}, nil
	case config.StyleOutline:
		return plan.OutlinePlanner{Canvas: canvas, Skip: cfg.Skip}, nil
	case config.StyleVector:
		return plan.VectorPlanner{Canvas: canvas, Skip: cfg.Skip}, nil
	default:
		return nil, fmt.Errorf("unknown style %q", cfg.Style)
	}
}
