package render

import (
	"bytes"
	"image"
	"image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/qrforge/qr-api/internal/errors"
	"github.com/qrforge/qr-api/qrgen"
)

// logoDivisor caps the overlay at a sixth of the symbol's shorter
// side, small enough that a high error correction level can still
// recover the covered modules.
const logoDivisor = 6

func decodeLogo(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.New(qrgen.ErrInvalidInput, "Invalid logo image file.")
	}
	return img, nil
}

// overlayLogo scales logo down to fit the center of dst and composites
// it over the symbol. dst is modified in place.
func overlayLogo(dst *image.RGBA, logo image.Image) {
	bounds := dst.Bounds()
	target := min(bounds.Dx(), bounds.Dy()) / logoDivisor
	if target < 1 {
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, target, target))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), logo, logo.Bounds(), xdraw.Over, nil)

	offX := bounds.Min.X + (bounds.Dx()-target)/2
	offY := bounds.Min.Y + (bounds.Dy()-target)/2
	rect := image.Rect(offX, offY, offX+target, offY+target)
	draw.Draw(dst, rect, scaled, scaled.Bounds().Min, draw.Over)
}
