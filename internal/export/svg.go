package export

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// FrameToSVG renders the grid as one rect per horizontal run of equal
// colour, each cell scale units wide.
func FrameToSVG(f Frame, scale int) string {
	if scale < 1 {
		scale = 1
	}
	w, h := f.Width()*scale, f.Height()*scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">
`, w, h, w, h)

	for y := 0; y < f.Height(); y++ {
		x := 0
		for x < f.Width() {
			c := f.ColorAt(x, y)
			run := 1
			for x+run < f.Width() && f.ColorAt(x+run, y) == c {
				run++
			}
			fmt.Fprintf(&sb, "<rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" fill=\"%s\"/>\n",
				x*scale, y*scale, run*scale, scale, c.Hex())
			x += run
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws values as a polyline, for example the active count
// over a run. The vertical axis spans the data with a tenth of its range
// as margin on both sides; fewer than two values draw nothing.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := floats.Min(values), floats.Max(values)
	pad := (hi - lo) / 10
	if pad == 0 {
		pad = 1
	}
	lo, hi = lo-pad, hi+pad
	dx := float64(width) / float64(len(values)-1)
	yOf := func(v float64) float64 { return float64(height) * (hi - v) / (hi - lo) }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	cmd := "M"
	sb.WriteString(`<path fill="none" stroke="` + strokeColor + `" stroke-width="1.5" d="`)
	for i, v := range values {
		fmt.Fprintf(&sb, "%s%.1f,%.1f", cmd, float64(i)*dx, yOf(v))
		cmd = " L"
	}
	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}
