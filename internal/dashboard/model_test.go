package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwatt/piwatt/internal/pmic"
	"github.com/piwatt/piwatt/internal/stats"
)

// fakeSource returns queued readings (or errors) in order, then repeats the
// last entry.
type fakeSource struct {
	readings [][]pmic.Reading
	errs     []error
	calls    int
}

func (f *fakeSource) Read(ctx context.Context) ([]pmic.Reading, error) {
	i := f.calls
	f.calls++
	if i >= len(f.readings) {
		i = len(f.readings) - 1
	}
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	return f.readings[i], nil
}

func readingsAt(at time.Time, rails map[string]float64) []pmic.Reading {
	var out []pmic.Reading
	for rail, watts := range rails {
		out = append(out, pmic.Reading{Rail: rail, Amps: 1, Volts: watts, Watts: watts, Time: at})
	}
	return out
}

func newTestModel(t *testing.T, opts Options) (Model, *stats.Aggregator) {
	t.Helper()
	if opts.Interval == 0 {
		opts.Interval = time.Second
	}
	agg := stats.NewAggregator(opts.Interval)
	src := &fakeSource{readings: [][]pmic.Reading{nil}}
	return NewModel(src, agg, opts), agg
}

func TestNewModelDefaults(t *testing.T) {
	agg := stats.NewAggregator(time.Second)
	m := NewModel(&fakeSource{}, agg, Options{})

	assert.Equal(t, time.Second, m.interval)
	assert.Zero(t, m.duration)
	assert.NotNil(t, m.agg)
}

func TestUpdateReadMsgRecordsSample(t *testing.T) {
	m, agg := newTestModel(t, Options{})

	at := time.Now()
	updated, cmd := m.Update(readMsg{
		readings: readingsAt(at, map[string]float64{"VDD_CORE": 2.5, "3V3_SYS": 1.5}),
		at:       at,
	})
	m = updated.(Model)

	require.Equal(t, 1, agg.History().Len())
	snap := agg.Snapshot()
	assert.InDelta(t, 4.0, snap.Current, 1e-9)
	assert.Empty(t, m.lastErr)

	// The next read is only scheduled after the result was applied.
	assert.NotNil(t, cmd)
}

func TestUpdateReadMsgFailureStillTicks(t *testing.T) {
	m, agg := newTestModel(t, Options{})

	at := time.Now()
	updated, _ := m.Update(readMsg{
		readings: readingsAt(at, map[string]float64{"VDD_CORE": 2.0}),
		at:       at,
	})
	m = updated.(Model)

	updated, cmd := m.Update(readMsg{
		err: errors.New("vcgencmd: command timed out"),
		at:  at.Add(time.Second),
	})
	m = updated.(Model)

	assert.NotNil(t, cmd)
	assert.Contains(t, m.lastErr, "timed out")

	// The failed tick is appended with every tracked rail missing.
	require.Equal(t, 2, agg.History().Len())
	last, ok := agg.History().Last()
	require.True(t, ok)
	assert.Empty(t, last.Rails)
	assert.Equal(t, []string{"VDD_CORE"}, last.Missing)

	// Recovery clears the warning.
	updated, _ = m.Update(readMsg{
		readings: readingsAt(at.Add(2*time.Second), map[string]float64{"VDD_CORE": 2.0}),
		at:       at.Add(2 * time.Second),
	})
	m = updated.(Model)
	assert.Empty(t, m.lastErr)
}

func TestUpdateRailFilter(t *testing.T) {
	m, agg := newTestModel(t, Options{Rails: []string{"VDD_CORE"}})

	at := time.Now()
	updated, _ := m.Update(readMsg{
		readings: readingsAt(at, map[string]float64{"VDD_CORE": 2.0, "3V3_SYS": 1.0}),
		at:       at,
	})
	_ = updated.(Model)

	last, ok := agg.History().Last()
	require.True(t, ok)
	assert.Empty(t, last.Missing)
	assert.Len(t, last.Rails, 1)
	assert.Contains(t, last.Rails, "VDD_CORE")
}

func TestUpdateDurationQuits(t *testing.T) {
	m, _ := newTestModel(t, Options{Duration: 2 * time.Second})

	at := time.Now()
	updated, cmd := m.Update(readMsg{readings: readingsAt(at, map[string]float64{"A": 1}), at: at})
	m = updated.(Model)
	assert.False(t, m.quitting)
	assert.NotNil(t, cmd)

	updated, cmd = m.Update(readMsg{
		readings: readingsAt(at.Add(2*time.Second), map[string]float64{"A": 1}),
		at:       at.Add(2 * time.Second),
	})
	m = updated.(Model)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdateQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c", "esc"} {
		t.Run(key, func(t *testing.T) {
			m, _ := newTestModel(t, Options{})

			var msg tea.KeyMsg
			switch key {
			case "ctrl+c":
				msg = tea.KeyMsg{Type: tea.KeyCtrlC}
			case "esc":
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			default:
				msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
			}

			updated, cmd := m.Update(msg)
			m = updated.(Model)
			assert.True(t, m.quitting)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
		})
	}
}

func TestUpdateTickTriggersRead(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	_, cmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd)

	msg := cmd()
	_, ok := msg.(readMsg)
	assert.True(t, ok)
}

func TestUpdateWindowSize(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{0, LayoutMinimal},
		{40, LayoutMinimal},
		{59, LayoutMinimal},
		{60, LayoutCompact},
		{99, LayoutCompact},
		{100, LayoutFull},
		{200, LayoutFull},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			m := Model{width: tt.width}
			assert.Equal(t, tt.want, m.LayoutMode())
		})
	}
}

func TestElapsed(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	assert.Zero(t, m.Elapsed())

	at := time.Now()
	updated, _ := m.Update(readMsg{readings: readingsAt(at, map[string]float64{"A": 1}), at: at})
	m = updated.(Model)

	updated, _ = m.Update(readMsg{
		readings: readingsAt(at.Add(3*time.Second), map[string]float64{"A": 1}),
		at:       at.Add(3 * time.Second),
	})
	m = updated.(Model)

	assert.Equal(t, 3*time.Second, m.Elapsed())
}
