package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/predsim/internal/dynamo"
)

const (
	background    = "#0a0a0a"
	predatorColor = "#ff6b6b"
	preyColor     = "#5fd068"
)

type bounds struct {
	minX, maxX, minY, maxY float64
}

// padded widens the bounds by 10% on each side.
func (b bounds) padded() bounds {
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	return bounds{
		minX: b.minX - rangeX*0.1,
		maxX: b.maxX + rangeX*0.1,
		minY: b.minY - rangeY*0.1,
		maxY: b.maxY + rangeY*0.1,
	}
}

func (b bounds) project(x, y float64, width, height int) (float64, float64) {
	px := (x - b.minX) / (b.maxX - b.minX) * float64(width)
	py := float64(height) - (y-b.minY)/(b.maxY-b.minY)*float64(height)
	return px, py
}

func extent(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

func path(sb *strings.Builder, xs, ys []float64, b bounds, width, height int, stroke string) {
	fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
	for i := range xs {
		x, y := b.project(xs[i], ys[i], width, height)
		if i == 0 {
			fmt.Fprintf(sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")
}

func label(sb *strings.Builder, x, y int, fill, text string) {
	fmt.Fprintf(sb, `<text x="%d" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, x, y, fill, escape(text))
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return xmlEscaper.Replace(s) }

// PhaseSVG draws the orbit with prey on the X axis and predators on the Y
// axis. An empty string is returned for runs with fewer than two samples.
func PhaseSVG(ts *dynamo.TimeSeries, width, height int, strokeColor string) string {
	if ts.Len() < 2 {
		return ""
	}

	var b bounds
	b.minX, b.maxX = extent(ts.Prey.Values)
	b.minY, b.maxY = extent(ts.Predators.Values)
	b = b.padded()

	var sb strings.Builder
	header(&sb, width, height)
	path(&sb, ts.Prey.Values, ts.Predators.Values, b, width, height, strokeColor)
	label(&sb, 8, height-8, strokeColor, ts.Prey.Label+" →")
	label(&sb, 8, 16, strokeColor, "↑ "+ts.Predators.Label)
	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesSVG draws both populations against time on a shared scale.
func SeriesSVG(ts *dynamo.TimeSeries, width, height int) string {
	if ts.Len() < 2 {
		return ""
	}

	var b bounds
	b.minX, b.maxX = extent(ts.Times)
	predLo, predHi := extent(ts.Predators.Values)
	preyLo, preyHi := extent(ts.Prey.Values)
	b.minY, b.maxY = min(predLo, preyLo), max(predHi, preyHi)
	b = b.padded()

	var sb strings.Builder
	header(&sb, width, height)
	path(&sb, ts.Times, ts.Prey.Values, b, width, height, preyColor)
	path(&sb, ts.Times, ts.Predators.Values, b, width, height, predatorColor)
	label(&sb, 8, 16, preyColor, ts.Prey.Label)
	label(&sb, 8, 32, predatorColor, ts.Predators.Label)
	sb.WriteString("</svg>")
	return sb.String()
}
