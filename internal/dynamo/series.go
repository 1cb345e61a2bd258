package dynamo

// Labels are display names for the two populations.
type Labels struct {
	Predator string
	Prey     string
}

// Series is one population's density over time.
type Series struct {
	Label  string
	Values []float64
}

// Sample is one recorded instant of a run.
type Sample struct {
	Time      float64
	Predators float64
	Prey      float64
}

// TimeSeries is the trajectory of a run. Index i of Times, Predators.Values
// and Prey.Values refers to the same instant; index 0 is the initial state.
type TimeSeries struct {
	Times     []float64
	Predators Series
	Prey      Series
	Metrics   map[string]float64
}

func newTimeSeries(labels Labels, capacity int) *TimeSeries {
	return &TimeSeries{
		Times:     make([]float64, 0, capacity),
		Predators: Series{Label: labels.Predator, Values: make([]float64, 0, capacity)},
		Prey:      Series{Label: labels.Prey, Values: make([]float64, 0, capacity)},
		Metrics:   make(map[string]float64),
	}
}

func (ts *TimeSeries) append(t float64, x State) {
	ts.Times = append(ts.Times, t)
	ts.Predators.Values = append(ts.Predators.Values, x.Predators)
	ts.Prey.Values = append(ts.Prey.Values, x.Prey)
}

// Len returns the number of samples.
func (ts *TimeSeries) Len() int { return len(ts.Times) }

func (ts *TimeSeries) At(i int) Sample {
	return Sample{Time: ts.Times[i], Predators: ts.Predators.Values[i], Prey: ts.Prey.Values[i]}
}

func (ts *TimeSeries) StateAt(i int) State {
	return State{Predators: ts.Predators.Values[i], Prey: ts.Prey.Values[i]}
}

// Final returns the last sample. The series is never empty once collected.
func (ts *TimeSeries) Final() Sample { return ts.At(ts.Len() - 1) }

func (ts *TimeSeries) Labels() Labels {
	return Labels{Predator: ts.Predators.Label, Prey: ts.Prey.Label}
}

// FromSamples rebuilds a TimeSeries from stored samples.
func FromSamples(labels Labels, samples []Sample) *TimeSeries {
	ts := newTimeSeries(labels, len(samples))
	for _, s := range samples {
		ts.append(s.Time, State{Predators: s.Predators, Prey: s.Prey})
	}
	return ts
}
