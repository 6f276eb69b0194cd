// Package chart renders a run's power history to an annotated PNG line
// chart: one series for the total draw plus one dashed series per rail,
// with the summary metrics overlaid as a text block.
package chart

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/piwatt/piwatt/internal/errors"
	"github.com/piwatt/piwatt/internal/stats"
)

// DefaultOutputPath is where the chart lands when no path is configured.
const DefaultOutputPath = "power_consumption.png"

const (
	chartWidth  = 1200
	chartHeight = 800

	annotationFontSize   = 10.0
	annotationLineHeight = 16
	annotationMargin     = 18
)

// Export writes the run's chart to path. Returns a HISTORY error when no
// sample was ever recorded (stopping before the first tick completes is a
// defined edge case, not a crash) and an EXPORT error when the path is
// unwritable or rendering fails.
func Export(h *stats.History, snap stats.Snapshot, path string) error {
	if h.Len() == 0 {
		return errors.New(errors.ErrHistory,
			"No samples were recorded, so there is nothing to chart",
			"Let the monitor run for at least one interval before stopping.")
	}

	if path == "" {
		path = DefaultOutputPath
	}

	graph := buildChart(h, snap)

	f, err := os.Create(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrExport,
			"Cannot write chart to "+path,
			"Choose a writable output path with --output.")
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return errors.WrapWithCode(err, errors.ErrExport,
			"Chart rendering failed", "")
	}

	return nil
}

// buildChart assembles the figure. Pure with respect to its inputs: the
// same history and snapshot always produce the same series data, which is
// what makes export idempotent.
func buildChart(h *stats.History, snap stats.Snapshot) chart.Chart {
	graph := chart.Chart{
		Title:  "Power Consumption Over Time",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name: "Time (s)",
		},
		YAxis: chart.YAxis{
			Name: "Power (W)",
		},
		Series: buildSeries(h),
	}

	if yr, ok := flatRange(h); ok {
		graph.YAxis.Range = yr
	}

	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
		metricsAnnotation(snap),
	}

	return graph
}

// buildSeries produces the total series plus one dashed series per rail.
func buildSeries(h *stats.History) []chart.Series {
	xs := h.ElapsedSeconds()
	totals := h.Totals()

	// A single-sample run still gets a visible (flat) line.
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		totals = append(totals, totals[0])
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Total",
			XValues: xs,
			YValues: totals,
			Style: chart.Style{
				StrokeWidth: 2.5,
				StrokeColor: chart.ColorBlue,
			},
		},
	}

	for _, rail := range h.Rails() {
		ys := h.RailSeries(rail)
		if len(ys) == 1 {
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    rail,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth:     1.0,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		})
	}

	return series
}

// flatRange widens the y-range when every plotted value is identical, which
// the renderer otherwise rejects as a zero data range.
func flatRange(h *stats.History) (*chart.ContinuousRange, bool) {
	totals := h.Totals()
	lo, hi := totals[0], totals[0]
	for _, v := range totals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	for _, rail := range h.Rails() {
		for _, v := range h.RailSeries(rail) {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	if lo != hi {
		return nil, false
	}
	return &chart.ContinuousRange{Min: lo - 0.5, Max: hi + 0.5}, true
}

// AnnotationLines formats the snapshot as the text block overlaid on the
// figure.
func AnnotationLines(snap stats.Snapshot) []string {
	return []string{
		fmt.Sprintf("Minimum Power: %.2f W", snap.Min),
		fmt.Sprintf("Maximum Power: %.2f W", snap.Max),
		fmt.Sprintf("Average Power: %.2f W", snap.Avg),
		fmt.Sprintf("Total Energy: %.2f J", snap.Energy),
		fmt.Sprintf("Peak Power at: %.2f s", snap.MaxAt.Seconds()),
		fmt.Sprintf("Most Consuming Rail: %s", snap.PeakRail),
	}
}

// metricsAnnotation draws the snapshot text block inside the plot area.
func metricsAnnotation(snap stats.Snapshot) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, _ chart.Style) {
		lines := AnnotationLines(snap)

		font, err := chart.GetDefaultFont()
		if err != nil {
			return
		}
		r.SetFont(font)
		r.SetFontSize(annotationFontSize)
		r.SetFontColor(drawing.ColorBlack)

		// Right-align the block against the plot edge.
		width := 0
		for _, line := range lines {
			if box := r.MeasureText(line); box.Width() > width {
				width = box.Width()
			}
		}

		x := canvasBox.Right - width - annotationMargin
		y := canvasBox.Top + annotationMargin + annotationLineHeight
		for _, line := range lines {
			r.Text(line, x, y)
			y += annotationLineHeight
		}
	}
}
