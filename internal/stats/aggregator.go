package stats

import (
	"sort"
	"time"

	"github.com/piwatt/piwatt/internal/pmic"
)

// Aggregator turns per-tick readings into the run's history and keeps the
// summary snapshot incrementally up to date. It never fails: a tick with no
// readings at all still yields a (degenerate) sample, so transient telemetry
// gaps cannot kill the monitoring loop.
//
// Missing-rail policy: a tracked rail that produced no reading this tick is
// recorded in the sample's Missing set and excluded from the tick total.
// Zero-filling would drag the total down and skew min/avg, so absence is
// absence.
type Aggregator struct {
	interval time.Duration
	history  *History
	tracked  map[string]bool
	snap     Snapshot
	started  time.Time
}

// NewAggregator creates an aggregator for a run sampled at the given
// interval. The interval is only used as the energy fallback for the first
// tick, where no previous sample exists to integrate against.
func NewAggregator(interval time.Duration) *Aggregator {
	return &Aggregator{
		interval: interval,
		history:  NewHistory(),
		tracked:  make(map[string]bool),
	}
}

// Record ingests one tick's readings, appends the resulting sample to the
// history, and updates the snapshot. Readings may be empty.
func (a *Aggregator) Record(at time.Time, readings []pmic.Reading) Sample {
	if a.started.IsZero() {
		a.started = at
	}

	rails := make(map[string]float64, len(readings))
	total := 0.0
	for _, r := range readings {
		rails[r.Rail] = r.Watts
		total += r.Watts
	}

	var missing []string
	for rail := range a.tracked {
		if _, ok := rails[rail]; !ok {
			missing = append(missing, rail)
		}
	}
	sort.Strings(missing)

	for rail := range rails {
		a.tracked[rail] = true
	}

	var prev *Sample
	if last, ok := a.history.Last(); ok {
		prev = &last
	}

	sample := Sample{
		Index:   a.history.Len(),
		Time:    at,
		Elapsed: at.Sub(a.started),
		Rails:   rails,
		Missing: missing,
		Total:   total,
	}
	a.history.append(sample)

	a.updateSnapshot(sample, prev)

	return sample
}

// updateSnapshot applies the incremental metric updates for a new sample.
func (a *Aggregator) updateSnapshot(s Sample, prev *Sample) {
	n := s.Index + 1
	a.snap.Samples = n
	a.snap.Current = s.Total

	if prev == nil {
		a.snap.Min = s.Total
		a.snap.MinAt = s.Elapsed
		a.snap.Max = s.Total
		a.snap.MaxAt = s.Elapsed
		a.snap.Avg = s.Total
		a.snap.Energy = s.Total * a.interval.Seconds()
		a.snap.PeakRail = s.TopRail()
		return
	}

	// Strict improvement only: ties keep the earlier timestamp.
	if s.Total > a.snap.Max {
		a.snap.Max = s.Total
		a.snap.MaxAt = s.Elapsed
		a.snap.PeakRail = s.TopRail()
	}
	if s.Total < a.snap.Min {
		a.snap.Min = s.Total
		a.snap.MinAt = s.Elapsed
	}

	// Cumulative mean: avg_n = avg_{n-1} + (x_n - avg_{n-1}) / n
	a.snap.Avg += (s.Total - a.snap.Avg) / float64(n)

	// Trapezoidal energy over the actual inter-tick gap.
	dt := s.Time.Sub(prev.Time).Seconds()
	a.snap.Energy += (s.Total + prev.Total) / 2 * dt
}

// Snapshot returns the current summary metrics.
func (a *Aggregator) Snapshot() Snapshot {
	return a.snap
}

// History returns the run's history. Callers must treat it as read-only.
func (a *Aggregator) History() *History {
	return a.history
}

// Recompute derives a snapshot from scratch over a full history. It is the
// reference definition the incremental updates in Record must agree with,
// and exists so tests can hold the two together.
func Recompute(h *History, interval time.Duration) Snapshot {
	var snap Snapshot
	if h.Len() == 0 {
		return snap
	}

	sum := 0.0
	for i := 0; i < h.Len(); i++ {
		s := h.At(i)
		sum += s.Total

		if i == 0 {
			snap.Min = s.Total
			snap.MinAt = s.Elapsed
			snap.Max = s.Total
			snap.MaxAt = s.Elapsed
			snap.Energy = s.Total * interval.Seconds()
			snap.PeakRail = s.TopRail()
			continue
		}

		prev := h.At(i - 1)
		if s.Total > snap.Max {
			snap.Max = s.Total
			snap.MaxAt = s.Elapsed
			snap.PeakRail = s.TopRail()
		}
		if s.Total < snap.Min {
			snap.Min = s.Total
			snap.MinAt = s.Elapsed
		}
		snap.Energy += (s.Total + prev.Total) / 2 * s.Time.Sub(prev.Time).Seconds()
	}

	last, _ := h.Last()
	snap.Samples = h.Len()
	snap.Current = last.Total
	snap.Avg = sum / float64(h.Len())

	return snap
}
