package imgsrc

import (
	"image"

	"github.com/skip2/go-qrcode"
)

const defaultQRSizePx = 256

// QRCode renders payload as a QR code image suitable for drawing. An empty
// payload returns (nil, nil) so callers can treat the source as absent.
func QRCode(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRSizePx
	}
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return code.Image(sizePx), nil
}
