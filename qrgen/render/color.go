package render

import (
	"image/color"
	"strings"

	"github.com/qrforge/qr-api/internal/errors"
	"github.com/qrforge/qr-api/qrgen"
)

// Named colors accepted in color specs, matching the names callers of
// this API have historically used.
var colorNames = map[string]color.RGBA{
	"black":   {0x00, 0x00, 0x00, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"red":     {0xff, 0x00, 0x00, 0xff},
	"green":   {0x00, 0x80, 0x00, 0xff},
	"lime":    {0x00, 0xff, 0x00, 0xff},
	"blue":    {0x00, 0x00, 0xff, 0xff},
	"yellow":  {0xff, 0xff, 0x00, 0xff},
	"cyan":    {0x00, 0xff, 0xff, 0xff},
	"magenta": {0xff, 0x00, 0xff, 0xff},
	"gray":    {0x80, 0x80, 0x80, 0xff},
	"grey":    {0x80, 0x80, 0x80, 0xff},
	"silver":  {0xc0, 0xc0, 0xc0, 0xff},
	"maroon":  {0x80, 0x00, 0x00, 0xff},
	"olive":   {0x80, 0x80, 0x00, 0xff},
	"navy":    {0x00, 0x00, 0x80, 0xff},
	"teal":    {0x00, 0x80, 0x80, 0xff},
	"purple":  {0x80, 0x00, 0x80, 0xff},
	"orange":  {0xff, 0xa5, 0x00, 0xff},
	"brown":   {0xa5, 0x2a, 0x2a, 0xff},
	"pink":    {0xff, 0xc0, 0xcb, 0xff},
}

// ParseColor resolves a color spec: a known name or a hex literal in
// #RGB, #RRGGBB or #RRGGBBAA form.
func ParseColor(spec string) (color.RGBA, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if c, ok := colorNames[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	return color.RGBA{}, errors.Newf(qrgen.ErrInvalidInput, "invalid color '%s'", spec)
}

func parseHexColor(s string) (color.RGBA, error) {
	hex := s[1:]
	switch len(hex) {
	case 3:
		r, okR := hexNibble(hex[0])
		g, okG := hexNibble(hex[1])
		b, okB := hexNibble(hex[2])
		if okR && okG && okB {
			return color.RGBA{r * 0x11, g * 0x11, b * 0x11, 0xff}, nil
		}
	case 6, 8:
		bytes := make([]uint8, len(hex)/2)
		ok := true
		for i := range bytes {
			hi, okHi := hexNibble(hex[2*i])
			lo, okLo := hexNibble(hex[2*i+1])
			if !okHi || !okLo {
				ok = false
				break
			}
			bytes[i] = hi<<4 | lo
		}
		if ok {
			c := color.RGBA{bytes[0], bytes[1], bytes[2], 0xff}
			if len(bytes) == 4 {
				c.A = bytes[3]
			}
			return c, nil
		}
	}
	return color.RGBA{}, errors.Newf(qrgen.ErrInvalidInput, "invalid color '%s'", s)
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
