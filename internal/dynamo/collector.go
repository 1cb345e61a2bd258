package dynamo

// maxPrealloc bounds the samples reserved up front. Longer runs grow by
// append.
const maxPrealloc = 1 << 20

func preallocate(c Clock) int {
	return min(c.TotalSteps()-c.Steps()+1, maxPrealloc)
}

// Collect drives s until Advance reports the horizon and returns every
// recorded sample, starting with the state before the first step. Metrics
// are reset, observe each recorded sample, and their values are stored in
// the result.
func Collect(s *Simulator, labels Labels, metrics ...Metric) *TimeSeries {
	ts := newTimeSeries(labels, preallocate(s.Clock()))

	for _, m := range metrics {
		m.Reset()
	}

	record := func() {
		x, t := s.State(), s.Time()
		ts.append(t, x)
		for _, m := range metrics {
			m.Observe(x, t)
		}
	}

	record()
	for s.Advance() {
		record()
	}

	for _, m := range metrics {
		ts.Metrics[m.Name()] = m.Value()
	}
	return ts
}
