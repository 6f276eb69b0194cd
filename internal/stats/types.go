package stats

import "time"

// Sample is the set of per-rail power values recorded at one tick, plus the
// derived total. Immutable after creation; the aggregator appends one per
// tick to the history.
type Sample struct {
	// Index is the tick number, starting at 0.
	Index int

	// Time is the wall-clock instant of the tick.
	Time time.Time

	// Elapsed is the offset from the first sample of the run.
	Elapsed time.Duration

	// Rails maps rail name to instantaneous watts for rails that were read
	// successfully this tick.
	Rails map[string]float64

	// Missing lists tracked rails that produced no reading this tick.
	// Missing rails are excluded from Total, not counted as zero.
	Missing []string

	// Total is the sum of the present rail values.
	Total float64
}

// TopRail returns the rail with the highest instantaneous value in the
// sample, breaking ties by rail name so the result is deterministic.
// Returns "" for a sample with no readings.
func (s Sample) TopRail() string {
	top := ""
	best := 0.0
	for rail, watts := range s.Rails {
		if top == "" || watts > best || (watts == best && rail < top) {
			top = rail
			best = watts
		}
	}
	return top
}

// Snapshot is the derived summary over the history as of the latest tick.
// It is always reconstructable from the history alone; the aggregator keeps
// it incrementally and Recompute pins the two together.
type Snapshot struct {
	// Samples is the number of ticks recorded.
	Samples int

	// Current is the latest tick's total in watts.
	Current float64

	// Min and Max are the running extremes of the tick totals. MinAt and
	// MaxAt are the elapsed offsets where they were first reached; ties
	// keep the earlier offset.
	Min   float64
	MinAt time.Duration
	Max   float64
	MaxAt time.Duration

	// Avg is the arithmetic mean of the tick totals.
	Avg float64

	// Energy is the cumulative energy in joules, integrated trapezoidally
	// over the tick totals.
	Energy float64

	// PeakRail is the top-consuming rail at the tick that set Max.
	PeakRail string
}
