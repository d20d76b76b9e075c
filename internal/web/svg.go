// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package web

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/russs95/airbuddy-online/internal/chart"
)

// RenderSVG turns a draw plan into an inline SVG element. The plan
// carries every pixel coordinate already; nothing here measures or
// scales.
func RenderSVG(plan *chart.DrawPlan) template.HTML {
	var b strings.Builder
	l := plan.Layout

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" role="img">`,
		px(l.Width), px(l.Height), px(l.Width), px(l.Height))
	b.WriteString("\n")
	fmt.Fprintf(&b, `<rect width="%s" height="%s" fill="#ffffff"/>`, px(l.Width), px(l.Height))
	b.WriteString("\n")

	if plan.Empty {
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" fill="#8a8a8a" font-size="14">no data in range</text>`,
			px(l.Width/2), px(l.Height/2))
		b.WriteString("\n</svg>")
		return template.HTML(b.String())
	}

	writeGrid(&b, plan)
	writeGapMarkers(&b, plan)
	writeSeries(&b, plan)
	writeAxisLabels(&b, plan)

	b.WriteString("</svg>")
	return template.HTML(b.String())
}

func writeGrid(b *strings.Builder, plan *chart.DrawPlan) {
	l := plan.Layout
	b.WriteString(`<g stroke="#e3e3e3" stroke-width="1">` + "\n")
	for _, yl := range plan.YLabels {
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s"/>`,
			px(l.PadLeft), px(yl.Y), px(l.Width-l.PadRight), px(yl.Y))
		b.WriteString("\n")
	}
	for _, xl := range plan.XLabels {
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s"/>`,
			px(xl.X), px(l.PadTop), px(xl.X), px(l.Height-l.PadBottom))
		b.WriteString("\n")
	}
	b.WriteString("</g>\n")
}

// writeGapMarkers draws a dashed vertical line where a series stopped
// reporting, so an outage reads as an outage and not as a flat line.
func writeGapMarkers(b *strings.Builder, plan *chart.DrawPlan) {
	if len(plan.GapMarkers) == 0 {
		return
	}
	l := plan.Layout
	b.WriteString(`<g stroke="#c9c9c9" stroke-width="1" stroke-dasharray="4 3">` + "\n")
	for _, gm := range plan.GapMarkers {
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s"/>`,
			px(gm.X), px(l.PadTop), px(gm.X), px(l.Height-l.PadBottom))
		b.WriteString("\n")
	}
	b.WriteString("</g>\n")
}

func writeSeries(b *strings.Builder, plan *chart.DrawPlan) {
	for _, s := range plan.Series {
		color := template.HTMLEscapeString(s.Color)
		fmt.Fprintf(b, `<g stroke="%s" stroke-width="%s" fill="none" stroke-linejoin="round" stroke-linecap="round">`,
			color, px(s.Width))
		b.WriteString("\n")
		for _, seg := range s.Segments {
			if len(seg.Points) == 1 {
				// An isolated reading still deserves ink.
				p := seg.Points[0]
				fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="2.5" fill="%s" stroke="none"/>`,
					px(p.X), px(p.Y), color)
				b.WriteString("\n")
				continue
			}
			b.WriteString(`<polyline points="`)
			for i, p := range seg.Points {
				if i > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(px(p.X))
				b.WriteByte(',')
				b.WriteString(px(p.Y))
			}
			b.WriteString(`"/>` + "\n")
		}
		b.WriteString("</g>\n")
	}
}

func writeAxisLabels(b *strings.Builder, plan *chart.DrawPlan) {
	l := plan.Layout
	b.WriteString(`<g fill="#555555" font-size="11" font-family="sans-serif">` + "\n")
	for _, yl := range plan.YLabels {
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="end" dominant-baseline="middle">%s</text>`,
			px(l.PadLeft-6), px(yl.Y), template.HTMLEscapeString(yl.Text))
		b.WriteString("\n")
	}
	for _, xl := range plan.XLabels {
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle">%s</text>`,
			px(xl.X), px(l.Height-l.PadBottom+16), template.HTMLEscapeString(xl.Text))
		b.WriteString("\n")
	}
	b.WriteString("</g>\n")
}

// px formats a pixel coordinate with one decimal, enough for crisp
// lines without bloating the markup.
func px(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}
