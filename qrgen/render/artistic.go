package render

import (
	"bytes"
	"image/color"

	artqr "github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/pkg/errors"

	"github.com/qrforge/qr-api/qrgen"
)

var artisticLevels = map[qrgen.Level]artqr.EncodeOption{
	qrgen.LevelL: artqr.WithErrorCorrectionLevel(artqr.ErrorCorrectionLow),
	qrgen.LevelM: artqr.WithErrorCorrectionLevel(artqr.ErrorCorrectionMedium),
	qrgen.LevelQ: artqr.WithErrorCorrectionLevel(artqr.ErrorCorrectionQuart),
	qrgen.LevelH: artqr.WithErrorCorrectionLevel(artqr.ErrorCorrectionHighest),
}

type nopWriteCloser struct {
	*bytes.Buffer
}

func (nopWriteCloser) Close() error { return nil }

// artisticPNG renders through the standard image writer with the
// requested styling applied.
func artisticPNG(data string, scale, border int, dark, light color.Color, level qrgen.Level) ([]byte, error) {
	qrc, err := artqr.NewWith(data, artisticLevels[level])
	if err != nil {
		return nil, errors.Wrap(err, "encode artistic symbol")
	}

	var buf bytes.Buffer
	w := standard.NewWithWriter(nopWriteCloser{&buf},
		standard.WithQRWidth(uint8(scale)),
		standard.WithBorderWidth(border*scale),
		standard.WithFgColor(dark),
		standard.WithBgColor(light),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)
	if err := qrc.Save(w); err != nil {
		return nil, errors.Wrap(err, "render artistic symbol")
	}
	return buf.Bytes(), nil
}

// svgWriter adapts the artistic encoder's matrix output to the SVG
// serializer so vector output gets the same styling knobs.
type svgWriter struct {
	buf     *bytes.Buffer
	boxSize int
	border  int
	fg, bg  color.Color
}

func (w *svgWriter) Write(mat artqr.Matrix) error {
	grid := make([][]bool, mat.Height())
	for y := range grid {
		grid[y] = make([]bool, mat.Width())
	}
	mat.Iterate(artqr.IterDirection_ROW, func(x, y int, v artqr.QRValue) {
		grid[y][x] = v.IsSet()
	})
	_, err := w.buf.Write(paintSVG(grid, w.boxSize, w.border, w.fg, w.bg))
	return err
}

func (w *svgWriter) Close() error { return nil }

func artisticSVG(data string, scale, border int, dark, light color.Color, level qrgen.Level) ([]byte, error) {
	qrc, err := artqr.NewWith(data, artisticLevels[level])
	if err != nil {
		return nil, errors.Wrap(err, "encode artistic symbol")
	}

	var buf bytes.Buffer
	w := &svgWriter{buf: &buf, boxSize: scale, border: border, fg: dark, bg: light}
	if err := qrc.Save(w); err != nil {
		return nil, errors.Wrap(err, "render artistic symbol")
	}
	return buf.Bytes(), nil
}
