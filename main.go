package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"strconv"
	"time"

	"github.com/0xdowz/auto-draw-bot/internal/app"
	"github.com/0xdowz/auto-draw-bot/internal/cancel"
	"github.com/0xdowz/auto-draw-bot/internal/config"
	"github.com/0xdowz/auto-draw-bot/internal/draw"
	"github.com/0xdowz/auto-draw-bot/internal/imgsrc"
	"github.com/0xdowz/auto-draw-bot/internal/palette"
	"github.com/0xdowz/auto-draw-bot/internal/state"
	"github.com/0xdowz/auto-draw-bot/internal/surface"
	"github.com/0xdowz/auto-draw-bot/internal/web"
	"github.com/0xdowz/auto-draw-bot/internal/window"
)

const (
	defaultCanvasW = 800
	defaultCanvasH = 600
)

func main() {
	os.Exit(run())
}

func run() int {
	defaults := config.Default()

	imagePath := flag.String("image", "", "source image: file path or http(s) URL")
	qrPayload := flag.String("qr", "", "draw a QR code encoding this text instead of an image")
	text := flag.String("text", "", "draw this text as a banner instead of an image")
	fontPath := flag.String("font", "", "TTF font file for -text")
	textSize := flag.Float64("text-size", 0, "font size in points for -text")
	target := flag.String("target", defaults.Target, "target app whose window receives the strokes; also configurable via "+config.EnvTarget)
	style := flag.String("style", defaults.Style, "drawing style: pixel, outline, or vector; also configurable via "+config.EnvStyle)
	resolution := flag.Float64("resolution", defaults.Resolution, "raster scale factor (>0); also configurable via "+config.EnvResolution)
	speed := flag.String("speed", strconv.FormatFloat(defaults.Delay.Seconds(), 'g', -1, 64),
		"pause between pointer steps, in seconds (\"0.001\") or as a duration (\"5ms\"); also configurable via "+config.EnvSpeed)
	palettePath := flag.String("palette", "", "JSON or CSV palette file overriding the target's built-in palette")
	skip := flag.String("skip", "255,255,255", "background color (r,g,b) left unpainted")
	canvas := flag.String("canvas", "", "canvas rectangle x1,y1,x2,y2 in screen coordinates; default centers on screen")
	dryRun := flag.String("dry-run", "", "render to this PNG file instead of driving the pointer")
	fbDevice := flag.String("fb", "", "framebuffer device for live dry-run preview, e.g. /dev/fb0")
	listen := flag.String("listen", "", "remote-control API listen address, e.g. :7878; also configurable via "+web.EnvListenAddr)
	countdown := flag.Duration("countdown", 5*time.Second, "grace period before strokes start")
	settingsPath := flag.String("settings", "settings.json", "settings file persisted between runs")
	saveSettings := flag.Bool("save-settings", false, "write the effective settings back to the settings file")
	flag.Bool("nogui", false, "accepted for compatibility with older releases; this build is CLI-only")
	debug := flag.Bool("debug", false, "enable debug logging to ./autodraw-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via AUTODRAW_STDIO_LOG")
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable on headless setups.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("AUTODRAW_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	// Local file logger when debug enabled
	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./autodraw-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	cfg, err := config.FromEnv(defaults)
	if err != nil {
		fmt.Println("config error:", err)
		return 2
	}
	cfg, colorPositions, err := config.LoadSettings(*settingsPath, cfg)
	if err != nil {
		// A broken settings file must not block a run that fully specifies
		// itself on the command line.
		fmt.Println("settings file ignored:", err)
		logger.Errorf("main", "settings file ignored: %v", err)
	}

	// Flags set on the command line win over environment and settings file.
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		if flagErr != nil {
			return
		}
		switch f.Name {
		case "target":
			cfg.Target = *target
		case "style":
			cfg.Style = *style
		case "resolution":
			cfg.Resolution = *resolution
		case "speed":
			d, err := config.ParseSpeed(*speed)
			if err != nil {
				flagErr = err
				return
			}
			cfg.Delay = d
		case "palette":
			cfg.PalettePath = *palettePath
		case "skip":
			var c palette.Color
			if _, err := fmt.Sscanf(*skip, "%d,%d,%d", &c.R, &c.G, &c.B); err != nil {
				flagErr = &config.ConfigError{Field: "skip", Reason: fmt.Sprintf("want r,g,b, got %q", *skip)}
				return
			}
			cfg.Skip = c
		case "canvas":
			rect, err := config.ParseCanvas(*canvas)
			if err != nil {
				flagErr = err
				return
			}
			cfg.Canvas = rect
		}
	})
	if flagErr != nil {
		fmt.Println("config error:", flagErr)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		return 2
	}

	// Context for lifecycle
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	sourceName, img, err := resolveSource(ctx, flag.Arg(0), *imagePath, *qrPayload, *text, *fontPath, *textSize)
	if err != nil {
		var ce *config.ConfigError
		if errors.As(err, &ce) {
			fmt.Println("config error:", err)
			return 2
		}
		fmt.Println("source error:", err)
		return 1
	}

	store := state.NewStore()
	token := cancel.NewToken()

	drySurface, drawSurface, err := buildSurface(cfg, *dryRun != "", *fbDevice, colorPositions, logger)
	if err != nil {
		fmt.Println("surface error:", err)
		return 1
	}
	if closer, ok := drawSurface.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	remote := cancel.NewRemoteTrigger()
	triggers := []cancel.Trigger{cancel.NewHotkeyTrigger(), remote}
	if *dryRun == "" {
		triggers = append(triggers, cancel.NewCornerTrigger(surface.PointerPosition, surface.ScreenSize))
	}
	monitor := cancel.NewMonitor(token, triggers...)
	monitor.Logger = logger

	var server web.Server = &web.NoopServer{}
	serverCfg, err := web.DefaultServerConfigFromEnv(*listen)
	if err != nil {
		fmt.Println("config error:", err)
		return 2
	}
	if serverCfg.ListenAddr != "" {
		httpServer := web.NewHTTPServer(serverCfg.ListenAddr)
		httpServer.Store = store
		httpServer.CancelFunc = remote.Fire
		httpServer.DevMode = serverCfg.DevMode
		server = httpServer
	}
	if err := server.Start(ctx); err != nil {
		fmt.Println("web server error:", err)
		return 1
	}
	defer server.Stop()

	a := app.New(store, drawSurface, token, monitor)
	a.Logger = logger
	a.Countdown = *countdown

	result, err := a.Run(ctx, cfg, sourceName, img)
	if err != nil {
		var ce *config.ConfigError
		if errors.As(err, &ce) {
			fmt.Println("config error:", err)
			return 2
		}
		fmt.Println("run error:", err)
		return 1
	}

	if *dryRun != "" && drySurface != nil {
		if err := drySurface.SavePNG(*dryRun); err != nil {
			fmt.Println("dry-run save error:", err)
			return 1
		}
		fmt.Println("dry-run image written to", *dryRun)
	}

	if *saveSettings {
		if err := config.SaveSettings(*settingsPath, cfg, colorPositions); err != nil {
			fmt.Println("settings save error:", err)
		}
	}

	switch result.Status {
	case draw.StatusCompleted:
		fmt.Printf("done: %d segments drawn\n", result.SegmentsDone)
		return 0
	case draw.StatusCancelled:
		fmt.Printf("cancelled after %d segments\n", result.SegmentsDone)
		return 0
	default:
		fmt.Println("drawing failed:", result.Reason)
		return 1
	}
}

// resolveSource picks exactly one of the image, QR, and text sources.
func resolveSource(ctx context.Context, positional, imagePath, qrPayload, text, fontPath string, textSize float64) (string, image.Image, error) {
	source := imagePath
	if source == "" {
		source = positional
	}

	provided := 0
	for _, s := range []string{source, qrPayload, text} {
		if s != "" {
			provided++
		}
	}
	if provided == 0 {
		return "", nil, &config.ConfigError{Field: "image", Reason: "no source given (pass an image path or URL, -qr, or -text)"}
	}
	if provided > 1 {
		return "", nil, &config.ConfigError{Field: "image", Reason: "pass only one of an image, -qr, or -text"}
	}

	switch {
	case qrPayload != "":
		img, err := imgsrc.QRCode(qrPayload, 0)
		return "qr", img, err
	case text != "":
		img, err := imgsrc.TextBanner(text, fontPath, textSize)
		return "text", img, err
	default:
		img, err := imgsrc.Load(ctx, source)
		return source, img, err
	}
}

// buildSurface returns the surface the executor draws through. In dry-run
// mode that is an offscreen image (optionally mirrored to a framebuffer);
// otherwise the real pointer, aimed at the activated target window.
func buildSurface(cfg config.Config, dryRun bool, fbDevice string, positions map[palette.Color]image.Point, logger app.Logger) (*surface.ImageSurface, draw.Surface, error) {
	rect := cfg.Canvas
	if dryRun {
		if rect == (image.Rectangle{}) {
			rect = image.Rect(0, 0, defaultCanvasW, defaultCanvasH)
		}
		img := surface.NewImageSurface(rect)
		if fbDevice != "" {
			preview, err := surface.NewFBPreview(img, fbDevice)
			if err != nil {
				return nil, nil, err
			}
			preview.Logger = logger
			return img, preview, nil
		}
		return img, img, nil
	}

	// Only local apps can be raised by process name; web targets like
	// gartic are expected to already be focused.
	if cfg.Target == "mspaint" || cfg.Target == "paint" {
		if err := window.Activate(cfg.Target, logger); err != nil {
			return nil, nil, err
		}
	}
	if rect == (image.Rectangle{}) {
		w, h := surface.ScreenSize()
		rect = config.CenteredCanvas(w, h, defaultCanvasW, defaultCanvasH)
	}
	return nil, &surface.RobotSurface{Rect: rect, ColorPositions: positions, Logger: logger}, nil
}
