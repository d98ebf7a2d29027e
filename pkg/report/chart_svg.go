package report

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
)

// WriteCiChartSVG renders a horizontal bar chart of Ci scores as SVG. Bars
// are ordered as given; ids and ci must be index-aligned.
func WriteCiChartSVG(w io.Writer, ids []string, ci []float64) error {
	if len(ids) != len(ci) {
		return fmt.Errorf("ids length %d does not match ci length %d", len(ids), len(ci))
	}
	if len(ids) == 0 {
		return fmt.Errorf("nothing to chart")
	}

	const (
		width     = 640
		barHeight = 24
		barGap    = 8
		labelW    = 160
		margin    = 16
	)
	height := margin*2 + len(ids)*(barHeight+barGap)
	barSpan := width - labelW - margin*2

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	for i := range ids {
		y := margin + i*(barHeight+barGap)
		barW := int(ci[i] * float64(barSpan))
		if barW < 1 {
			barW = 1
		}
		canvas.Text(margin, y+barHeight-8, ids[i], "font-family:monospace;font-size:12px;fill:black")
		canvas.Rect(labelW, y, barW, barHeight, "fill:steelblue")
		canvas.Text(labelW+barW+4, y+barHeight-8, fmt.Sprintf("%.4f", ci[i]), "font-family:monospace;font-size:11px;fill:black")
	}
	canvas.End()
	return nil
}
