package imgsrc

import (
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/0xdowz/auto-draw-bot/internal/config"
)

const (
	defaultTextSizePt = 72
	textMarginPx      = 16
)

// TextBanner renders text as black-on-white image sized to fit it, for
// drawing words instead of pictures. fontPath names a TTF file; when empty
// a built-in bitmap face is used.
func TextBanner(text, fontPath string, sizePt float64) (image.Image, error) {
	if text == "" {
		return nil, nil
	}
	if sizePt <= 0 {
		sizePt = defaultTextSizePt
	}

	face, err := loadFace(fontPath, sizePt)
	if err != nil {
		return nil, err
	}

	drawer := &font.Drawer{Src: image.NewUniform(color.Black), Face: face}
	width := drawer.MeasureString(text).Ceil()
	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()

	img := image.NewRGBA(image.Rect(0, 0, width+2*textMarginPx, height+2*textMarginPx))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	drawer.Dst = img
	drawer.Dot = fixed.P(textMarginPx, textMarginPx+metrics.Ascent.Ceil())
	drawer.DrawString(text)
	return img, nil
}

func loadFace(fontPath string, sizePt float64) (font.Face, error) {
	if fontPath == "" {
		return basicfont.Face7x13, nil
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, &config.ResourceError{Resource: fontPath, Err: err}
	}
	tt, err := truetype.Parse(data)
	if err != nil {
		return nil, &config.ResourceError{Resource: fontPath, Err: err}
	}
	return truetype.NewFace(tt, &truetype.Options{Size: sizePt, DPI: 96, Hinting: font.HintingFull}), nil
}
