package stats

import (
	"sort"
	"time"
)

// History is the ordered, append-only sequence of samples for one run.
// It is owned by the aggregator; renderers and the exporter get read-only
// access. It grows for the duration of the run, which is bounded by the run
// itself, so there is no eviction.
type History struct {
	samples []Sample
	rails   map[string]bool
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{
		rails: make(map[string]bool),
	}
}

// append adds a sample and registers any newly seen rails. Only the
// aggregator calls this.
func (h *History) append(s Sample) {
	h.samples = append(h.samples, s)
	for rail := range s.Rails {
		h.rails[rail] = true
	}
}

// Len returns the number of samples recorded.
func (h *History) Len() int {
	return len(h.samples)
}

// At returns the sample at tick index i.
func (h *History) At(i int) Sample {
	return h.samples[i]
}

// Last returns the most recent sample and whether one exists.
func (h *History) Last() (Sample, bool) {
	if len(h.samples) == 0 {
		return Sample{}, false
	}
	return h.samples[len(h.samples)-1], true
}

// Rails returns the sorted names of every rail seen during the run.
func (h *History) Rails() []string {
	if len(h.rails) == 0 {
		return nil
	}
	names := make([]string, 0, len(h.rails))
	for rail := range h.rails {
		names = append(names, rail)
	}
	sort.Strings(names)
	return names
}

// Totals returns the tick totals in tick order.
func (h *History) Totals() []float64 {
	if len(h.samples) == 0 {
		return nil
	}
	totals := make([]float64, len(h.samples))
	for i, s := range h.samples {
		totals[i] = s.Total
	}
	return totals
}

// ElapsedSeconds returns each tick's offset from the run start in seconds.
func (h *History) ElapsedSeconds() []float64 {
	if len(h.samples) == 0 {
		return nil
	}
	xs := make([]float64, len(h.samples))
	for i, s := range h.samples {
		xs[i] = s.Elapsed.Seconds()
	}
	return xs
}

// RailSeries returns one value per tick for the named rail. Ticks where the
// rail was missing yield zero; that zero-fill is a charting convenience
// only and never feeds back into the aggregate metrics.
func (h *History) RailSeries(rail string) []float64 {
	if len(h.samples) == 0 {
		return nil
	}
	series := make([]float64, len(h.samples))
	for i, s := range h.samples {
		series[i] = s.Rails[rail]
	}
	return series
}

// Duration returns the elapsed time covered by the history.
func (h *History) Duration() time.Duration {
	if len(h.samples) == 0 {
		return 0
	}
	return h.samples[len(h.samples)-1].Elapsed
}
