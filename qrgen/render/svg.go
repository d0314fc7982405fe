package render

import (
	"fmt"
	"image/color"
	"strings"
)

// hexColor renders c as a CSS hex literal, keeping the alpha channel
// only when it is not fully opaque.
func hexColor(c color.Color) string {
	rgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	if rgba.A != 0xff {
		return fmt.Sprintf("#%02x%02x%02x%02x", rgba.R, rgba.G, rgba.B, rgba.A)
	}
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// paintSVG serializes the module grid as a standalone SVG document.
// Horizontal runs of dark modules are merged into single rects to keep
// the output compact.
func paintSVG(grid [][]bool, boxSize, border int, fg, bg color.Color) []byte {
	n := len(grid)
	side := (n + 2*border) * boxSize

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		side, side, side, side)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`+"\n", side, side, hexColor(bg))

	fill := hexColor(fg)
	for y, row := range grid {
		x := 0
		for x < n {
			if !row[x] {
				x++
				continue
			}
			run := x
			for run < n && row[run] {
				run++
			}
			px := (x + border) * boxSize
			py := (y + border) * boxSize
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
				px, py, (run-x)*boxSize, boxSize, fill)
			x = run
		}
	}
	b.WriteString("</svg>\n")
	return []byte(b.String())
}
