package render

import (
	"image"
	"image/color"
	"image/draw"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/pkg/errors"

	"github.com/qrforge/qr-api/qrgen"
)

var recoveryLevels = map[qrgen.Level]qrcode.RecoveryLevel{
	qrgen.LevelL: qrcode.Low,
	qrgen.LevelM: qrcode.Medium,
	qrgen.LevelQ: qrcode.High,
	qrgen.LevelH: qrcode.Highest,
}

// encodeModules encodes data into the bare module grid (no quiet
// zone). The requested version is tried first; if the payload
// overflows it, the encoder re-fits to the smallest version that
// holds the data.
func encodeModules(data string, version int, level qrgen.Level) ([][]bool, error) {
	lv := recoveryLevels[level]

	q, err := qrcode.NewWithForcedVersion(data, version, lv)
	if err != nil {
		q, err = qrcode.New(data, lv)
	}
	if err != nil {
		return nil, errors.Wrap(err, "encode symbol")
	}

	q.DisableBorder = true
	return q.Bitmap(), nil
}

// paintRaster draws the module grid at boxSize pixels per module with
// a border-module quiet zone on each side.
func paintRaster(grid [][]bool, boxSize, border int, fg, bg color.Color) *image.RGBA {
	n := len(grid)
	side := (n + 2*border) * boxSize

	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	fill := image.NewUniform(fg)
	for y, row := range grid {
		for x, set := range row {
			if !set {
				continue
			}
			px := (x + border) * boxSize
			py := (y + border) * boxSize
			draw.Draw(img, image.Rect(px, py, px+boxSize, py+boxSize), fill, image.Point{}, draw.Src)
		}
	}
	return img
}

// flatten composites src over an opaque background, dropping any alpha
// so the result is safe for JPEG encoding.
func flatten(src image.Image, bg color.Color) *image.RGBA {
	bounds := src.Bounds()
	out := image.NewRGBA(bounds)
	opaque := color.RGBAModel.Convert(bg).(color.RGBA)
	opaque.A = 0xff
	draw.Draw(out, bounds, image.NewUniform(opaque), image.Point{}, draw.Src)
	draw.Draw(out, bounds, src, bounds.Min, draw.Over)
	return out
}
