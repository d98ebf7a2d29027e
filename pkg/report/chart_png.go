package report

import (
	"fmt"
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
)

// WriteCiChartPNG renders the same Ci bar chart as WriteCiChartSVG, but
// rasterized to PNG for report attachments.
func WriteCiChartPNG(w io.Writer, ids []string, ci []float64) error {
	if len(ids) != len(ci) {
		return fmt.Errorf("ids length %d does not match ci length %d", len(ids), len(ci))
	}
	if len(ids) == 0 {
		return fmt.Errorf("nothing to chart")
	}

	const (
		width     = 640
		barHeight = 24.0
		barGap    = 8.0
		labelW    = 160.0
		margin    = 16.0
	)
	height := int(margin*2 + float64(len(ids))*(barHeight+barGap))
	barSpan := float64(width) - labelW - margin*2

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for i := range ids {
		y := margin + float64(i)*(barHeight+barGap)
		barW := ci[i] * barSpan
		if barW < 1 {
			barW = 1
		}

		dc.SetRGB(0, 0, 0)
		dc.DrawString(ids[i], margin, y+barHeight-8)

		dc.SetRGB(0.27, 0.51, 0.71)
		dc.DrawRectangle(labelW, y, barW, barHeight)
		dc.Fill()

		dc.SetRGB(0, 0, 0)
		dc.DrawString(fmt.Sprintf("%.4f", ci[i]), labelW+barW+4, y+barHeight-8)
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	return nil
}
