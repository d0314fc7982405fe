package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qrforge/qr-api/internal/errors"
	"github.com/qrforge/qr-api/qrgen"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		spec string
		want color.RGBA
	}{
		{"black", color.RGBA{0x00, 0x00, 0x00, 0xff}},
		{"White", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"  red  ", color.RGBA{0xff, 0x00, 0x00, 0xff}},
		{"#000", color.RGBA{0x00, 0x00, 0x00, 0xff}},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"#1a2b3c", color.RGBA{0x1a, 0x2b, 0x3c, 0xff}},
		{"#1A2B3C", color.RGBA{0x1a, 0x2b, 0x3c, 0xff}},
		{"#11223380", color.RGBA{0x11, 0x22, 0x33, 0x80}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseColor(tt.spec)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, spec := range []string{"", "notacolor", "#12", "#12345", "#gggggg", "123456"} {
		t.Run(spec, func(t *testing.T) {
			_, err := ParseColor(spec)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, qrgen.ErrInvalidInput))
		})
	}
}

func TestHexColorString(t *testing.T) {
	assert.Equal(t, "#000000", hexColor(color.RGBA{0x00, 0x00, 0x00, 0xff}))
	assert.Equal(t, "#ffa500", hexColor(color.RGBA{0xff, 0xa5, 0x00, 0xff}))
	assert.Equal(t, "#11223380", hexColor(color.NRGBA{0x11, 0x22, 0x33, 0x80}))
}
