package surface

import (
	"image/color"
	"time"

	fb "github.com/gonutz/framebuffer"

	"github.com/0xdowz/auto-draw-bot/internal/palette"
)

// FBPreview mirrors an ImageSurface onto the Linux framebuffer so headless
// boards can watch a dry run live. The blit is throttled; a final blit
// happens on Close.
type FBPreview struct {
	*ImageSurface
	dev      *fb.Device
	lastBlit time.Time
	Logger   Logger
}

// minBlitInterval keeps the full-screen blit off the hot path between
// pointer events.
const minBlitInterval = 100 * time.Millisecond

func NewFBPreview(img *ImageSurface, device string) (*FBPreview, error) {
	dev, err := fb.Open(device)
	if err != nil {
		return nil, err
	}
	return &FBPreview{ImageSurface: img, dev: dev}, nil
}

func (p *FBPreview) SelectColor(c palette.Color) error {
	if err := p.ImageSurface.SelectColor(c); err != nil {
		return err
	}
	p.blit(false)
	return nil
}

func (p *FBPreview) PointerUp(x, y int) error {
	if err := p.ImageSurface.PointerUp(x, y); err != nil {
		return err
	}
	p.blit(false)
	return nil
}

func (p *FBPreview) Close() error {
	p.blit(true)
	return p.dev.Close()
}

// blit scales the canvas onto the framebuffer with nearest-neighbor
// sampling.
func (p *FBPreview) blit(force bool) {
	if !force && time.Since(p.lastBlit) < minBlitInterval {
		return
	}
	p.lastBlit = time.Now()

	canvas := p.Image()
	cw, ch := canvas.Bounds().Dx(), canvas.Bounds().Dy()
	if cw == 0 || ch == 0 {
		return
	}
	bounds := p.dev.Bounds()
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	for y := 0; y < fbHeight; y++ {
		sy := canvas.Bounds().Min.Y + (y*ch)/fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := canvas.Bounds().Min.X + (x*cw)/fbWidth
			pixel := canvas.RGBAAt(sx, sy)
			p.dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
	if p.Logger != nil {
		p.Logger.Infof("fb", "preview frame blitted")
	}
}
