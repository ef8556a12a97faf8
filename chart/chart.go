// Package chart draws the category WACI breakdown as a stacked bar chart.
package chart

import (
	"fmt"
	"io"
	"math"

	"github.com/etnz/waci"
	"github.com/go-pdf/fpdf"
	log "github.com/sirupsen/logrus"
)

// Bar is one category of the chart.
type Bar struct {
	Label     string
	Portfolio float64
	Benchmark float64 // stacked on top of Portfolio
}

// Chart is a stacked bar chart: one bar per category, the benchmark value
// drawn on top of the portfolio value.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Bars   []Bar
}

// New returns the chart of a breakdown. Bars follow the breakdown categories,
// so benchmark-only categories are not drawn.
func New(b waci.Breakdown) *Chart {
	c := &Chart{
		Title:  "Category Group WACI Breakdown",
		XLabel: "Category Group",
		YLabel: "WACI",
		Bars:   make([]Bar, 0, len(b.Categories)),
	}
	for _, cat := range b.Categories {
		c.Bars = append(c.Bars, Bar{
			Label:     cat.Category,
			Portfolio: cat.PortfolioWACI.Float64(),
			Benchmark: cat.BenchmarkWACI.Float64(),
		})
	}
	return c
}

// page layout in mm, A4 landscape.
const (
	pageW, pageH = 297.0, 210.0
	plotLeft     = 30.0
	plotRight    = pageW - 20
	plotTop      = 30.0
	plotBottom   = pageH - 40
	barFill      = 0.6 // share of the slot width covered by a bar
)

var (
	portfolioColor = [3]int{31, 119, 180}
	benchmarkColor = [3]int{255, 127, 14}
)

// WritePDF draws the chart as a single page PDF into w.
func (c *Chart) WritePDF(w io.Writer) error {
	log.WithFields(log.Fields{"bars": len(c.Bars), "title": c.Title}).Debug("Drawing chart")

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	top := niceCeil(c.maxStack())
	step := top / 5
	y := func(v float64) float64 { return plotBottom - (plotBottom-plotTop)*v/top }

	// title and axis labels
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	centerText(pdf, c.Title, pageW/2, 18)
	pdf.SetFont("Helvetica", "", 10)
	centerText(pdf, c.XLabel, (plotLeft+plotRight)/2, pageH-12)
	pdf.TransformBegin()
	pdf.TransformRotate(90, 12, (plotTop+plotBottom)/2)
	centerText(pdf, c.YLabel, 12, (plotTop+plotBottom)/2)
	pdf.TransformEnd()

	// y grid and ticks
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetLineWidth(0.1)
	pdf.SetDrawColor(200, 200, 200)
	for v := 0.0; v <= top+step/2; v += step {
		pdf.Line(plotLeft, y(v), plotRight, y(v))
		label := formatTick(v)
		pdf.Text(plotLeft-2-pdf.GetStringWidth(label), y(v)+1, label)
	}

	// bars
	if n := len(c.Bars); n > 0 {
		slot := (plotRight - plotLeft) / float64(n)
		width := slot * barFill
		for i, b := range c.Bars {
			x := plotLeft + float64(i)*slot + (slot-width)/2
			p, bm := math.Max(b.Portfolio, 0), math.Max(b.Benchmark, 0)
			fill(pdf, portfolioColor)
			pdf.Rect(x, y(p), width, y(0)-y(p), "F")
			fill(pdf, benchmarkColor)
			pdf.Rect(x, y(p+bm), width, y(p)-y(p+bm), "F")
			pdf.SetTextColor(0, 0, 0)
			centerText(pdf, b.Label, x+width/2, plotBottom+6)
		}
	}

	// axes
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Line(plotLeft, plotBottom, plotRight, plotBottom)
	pdf.Line(plotLeft, plotTop, plotLeft, plotBottom)

	// legend
	pdf.SetFont("Helvetica", "", 9)
	for i, item := range []struct {
		name  string
		color [3]int
	}{{"Portfolio", portfolioColor}, {"Benchmark", benchmarkColor}} {
		ly := plotTop + 2 + float64(i)*6
		fill(pdf, item.color)
		pdf.Rect(plotRight-35, ly, 4, 4, "F")
		pdf.Text(plotRight-29, ly+3.5, item.name)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

// maxStack returns the highest stacked bar.
func (c *Chart) maxStack() float64 {
	var m float64
	for _, b := range c.Bars {
		m = math.Max(m, math.Max(b.Portfolio, 0)+math.Max(b.Benchmark, 0))
	}
	return m
}

// niceCeil rounds v up to 1, 2, 2.5 or 5 times a power of ten, so that a
// fifth of it is a readable tick step. It returns 1 for empty charts.
func niceCeil(v float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, f := range []float64{1, 2, 2.5, 5, 10} {
		if f*exp >= v {
			return f * exp
		}
	}
	return 10 * exp
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func fill(pdf *fpdf.Fpdf, c [3]int) { pdf.SetFillColor(c[0], c[1], c[2]) }

func centerText(pdf *fpdf.Fpdf, s string, x, y float64) {
	pdf.Text(x-pdf.GetStringWidth(s)/2, y, s)
}
