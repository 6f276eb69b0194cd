package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/piwatt/piwatt/internal/pmic"
	"github.com/piwatt/piwatt/internal/stats"
)

// LayoutMode represents the responsive layout mode based on terminal size.
type LayoutMode int

const (
	// LayoutMinimal is for terminals < 60 columns: numeric panel only
	LayoutMinimal LayoutMode = iota
	// LayoutCompact is for terminals 60-100 columns: panel plus rail bars
	LayoutCompact
	// LayoutFull is for terminals 100+ columns: panel, bars and sparkline
	LayoutFull
)

// Width breakpoints for layout modes
const (
	BreakpointCompact = 60
	BreakpointFull    = 100
)

// HeightMinimal is the minimum terminal height for showing the footer.
const HeightMinimal = 16

// String returns a human-readable label for the layout mode.
func (l LayoutMode) String() string {
	switch l {
	case LayoutMinimal:
		return "minimal"
	case LayoutCompact:
		return "compact"
	case LayoutFull:
		return "full"
	default:
		return "unknown"
	}
}

// Model is the Bubble Tea model for the power dashboard. It owns the
// sampling cadence: each tick triggers one telemetry read, the result is
// folded into the aggregator, and only then is the next tick scheduled, so
// at most one read is in flight at any time.
type Model struct {
	source   pmic.Source
	agg      *stats.Aggregator
	interval time.Duration
	duration time.Duration // zero means run until interrupted
	rails    []string      // rail filter; empty keeps all

	width  int
	height int

	started  time.Time // time of the first sample
	lastRead time.Time
	lastErr  string // most recent read failure, cleared on success
	quitting bool

	spin spinner.Model
}

// tickMsg signals that the sampling interval has elapsed.
type tickMsg time.Time

// readMsg carries the result of one telemetry read.
type readMsg struct {
	readings []pmic.Reading
	err      error
	at       time.Time
}

// Options configures a dashboard model.
type Options struct {
	Interval time.Duration
	Duration time.Duration
	Rails    []string
}

// NewModel creates a dashboard model around a telemetry source and an
// aggregator. The aggregator is owned by the caller so the accumulated
// history outlives the TUI program.
func NewModel(source pmic.Source, agg *stats.Aggregator, opts Options) Model {
	interval := opts.Interval
	if interval <= 0 {
		interval = time.Second
	}

	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	return Model{
		source:   source,
		agg:      agg,
		interval: interval,
		duration: opts.Duration,
		rails:    opts.Rails,
		spin:     s,
	}
}

// Init triggers the first telemetry read immediately.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.readCmd(), m.spin.Tick)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case readMsg:
		m.lastRead = msg.at
		if m.started.IsZero() {
			m.started = msg.at
		}

		if msg.err != nil {
			m.lastErr = msg.err.Error()
			// A failed read still counts as a tick: every tracked rail
			// goes missing for this sample.
			m.agg.Record(msg.at, nil)
		} else {
			m.lastErr = ""
			m.agg.Record(msg.at, pmic.Filter(msg.readings, m.rails))
		}

		if m.duration > 0 && msg.at.Sub(m.started) >= m.duration {
			m.quitting = true
			return m, tea.Quit
		}

		return m, m.tickCmd()

	case tickMsg:
		return m, m.readCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// tickCmd schedules the next read after the sampling interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// readCmd runs one telemetry read. The source bounds the read with its own
// timeout, so this command always completes.
func (m Model) readCmd() tea.Cmd {
	return func() tea.Msg {
		readings, err := m.source.Read(context.Background())
		return readMsg{readings: readings, err: err, at: time.Now()}
	}
}

// Snapshot exposes the current aggregate statistics for rendering.
func (m Model) Snapshot() stats.Snapshot {
	return m.agg.Snapshot()
}

// SampleCount returns how many ticks have been recorded so far.
func (m Model) SampleCount() int {
	return m.agg.History().Len()
}

// Elapsed returns how long the run has been sampling.
func (m Model) Elapsed() time.Duration {
	if m.started.IsZero() {
		return 0
	}
	return m.lastRead.Sub(m.started)
}

// LayoutMode returns the current layout mode based on terminal width.
func (m Model) LayoutMode() LayoutMode {
	switch {
	case m.width >= BreakpointFull:
		return LayoutFull
	case m.width >= BreakpointCompact:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}

// ShowFooter returns true if the terminal is tall enough for the footer.
func (m Model) ShowFooter() bool {
	return m.height == 0 || m.height >= HeightMinimal
}
