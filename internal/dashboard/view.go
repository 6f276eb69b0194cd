package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/piwatt/piwatt/internal/stats"
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.SampleCount() == 0 {
		b.WriteString(m.renderWaiting())
	} else {
		snap := m.Snapshot()
		b.WriteString(m.renderMetricsPanel(snap))

		mode := m.LayoutMode()
		if mode >= LayoutCompact {
			b.WriteString("\n")
			b.WriteString(m.renderRailPanel())
		}
		if mode >= LayoutFull {
			b.WriteString("\n")
			b.WriteString(m.renderSparklinePanel())
		}
	}

	if m.lastErr != "" {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render("⚠ telemetry unavailable: " + m.lastErr))
	}

	if m.ShowFooter() {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	return b.String()
}

// renderHeader renders the title bar with run summary stats.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("piwatt")

	elapsed := m.Elapsed().Truncate(time.Second)
	meta := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(fmt.Sprintf(" | %d samples | %s elapsed | every %s", m.SampleCount(), elapsed, m.interval))

	return HeaderStyle.Render(title + meta)
}

// renderWaiting renders the pre-first-sample state.
func (m Model) renderWaiting() string {
	return m.spin.View() + LabelStyle.Render(" waiting for first reading...")
}

// renderMetricsPanel renders the numeric summary panel.
func (m Model) renderMetricsPanel(snap stats.Snapshot) string {
	width := m.panelWidth()

	rows := []struct {
		label string
		value string
	}{
		{"Current", fmt.Sprintf("%.3f W", snap.Current)},
		{"Average", fmt.Sprintf("%.3f W", snap.Avg)},
		{"Min", fmt.Sprintf("%.3f W at %s", snap.Min, snap.MinAt.Truncate(time.Second))},
		{"Max", fmt.Sprintf("%.3f W at %s", snap.Max, snap.MaxAt.Truncate(time.Second))},
		{"Energy", fmt.Sprintf("%.1f J (%.4f Wh)", snap.Energy, snap.Energy/3600)},
		{"Top rail", snap.PeakRail},
	}

	var lines []string
	lines = append(lines, SectionHeader("Power", fmt.Sprintf("%.3f W", snap.Current), width))
	for _, row := range rows {
		content := LabelStyle.Render(fmt.Sprintf("%-9s", row.label)) + ValueStyle.Render(row.value)
		lines = append(lines, SectionContentLine(content, width))
	}
	lines = append(lines, SectionFooter(width))

	return strings.Join(lines, "\n")
}

// renderRailPanel renders one bar per rail, scaled against the hottest rail.
func (m Model) renderRailPanel() string {
	width := m.panelWidth()

	last, ok := m.agg.History().Last()
	if !ok {
		return ""
	}

	rails := make([]string, 0, len(last.Rails))
	for rail := range last.Rails {
		rails = append(rails, rail)
	}
	sort.Strings(rails)

	peak := 0.0
	for _, rail := range rails {
		if last.Rails[rail] > peak {
			peak = last.Rails[rail]
		}
	}

	// Longest rail name sets the label column so bars align.
	labelWidth := 0
	for _, rail := range rails {
		if len(rail) > labelWidth {
			labelWidth = len(rail)
		}
	}
	for _, rail := range last.Missing {
		if len(rail) > labelWidth {
			labelWidth = len(rail)
		}
	}

	barWidth := width - labelWidth - 16
	if barWidth < 5 {
		barWidth = 5
	}

	var lines []string
	lines = append(lines, SectionHeader("Rails", fmt.Sprintf("%d", len(rails)), width))
	for _, rail := range rails {
		watts := last.Rails[rail]
		content := LabelStyle.Render(fmt.Sprintf("%-*s ", labelWidth, rail)) +
			PowerBar(barWidth, watts, peak) +
			ValueStyle.Render(fmt.Sprintf(" %7.3f W", watts))
		lines = append(lines, SectionContentLine(content, width))
	}
	for _, rail := range last.Missing {
		content := LabelStyle.Render(fmt.Sprintf("%-*s ", labelWidth, rail)) +
			lipgloss.NewStyle().Foreground(ColorTextMuted).Render("no reading")
		lines = append(lines, SectionContentLine(content, width))
	}
	lines = append(lines, SectionFooter(width))

	return strings.Join(lines, "\n")
}

// renderSparklinePanel renders the total-power sparkline over the history.
func (m Model) renderSparklinePanel() string {
	width := m.panelWidth()

	totals := m.agg.History().Totals()
	if len(totals) == 0 {
		return ""
	}

	minVal, maxVal := findMinMax(totals)
	spark := RenderSparkline(totals, width-4, ColorGraph)

	var lines []string
	lines = append(lines, SectionHeader("History", fmt.Sprintf("%.2f–%.2f W", minVal, maxVal), width))
	lines = append(lines, SectionContentLine(spark, width))
	lines = append(lines, SectionFooter(width))

	return strings.Join(lines, "\n")
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	hints := []string{
		"q quit",
	}
	if m.duration > 0 {
		hints = append(hints, fmt.Sprintf("stops after %s", m.duration))
	}

	return FooterStyle.Render(strings.Join(hints, " | "))
}

// panelWidth returns the width used for all panels, clamped to something
// readable before the first WindowSizeMsg arrives.
func (m Model) panelWidth() int {
	width := m.width - 2
	if m.width == 0 {
		width = 72
	}
	if width < 30 {
		width = 30
	}
	if width > 110 {
		width = 110
	}
	return width
}
