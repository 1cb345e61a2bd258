package metrics

import (
	"math"

	"github.com/san-kum/predsim/internal/dynamo"
)

// Selector picks one density out of a state.
type Selector func(x dynamo.State) float64

func Predators(x dynamo.State) float64 { return x.Predators }
func Prey(x dynamo.State) float64      { return x.Prey }

// Extremum tracks the largest (or smallest) observed value of a density.
type Extremum struct {
	name    string
	sel     Selector
	min     bool
	value   float64
	samples int
}

func NewPeak(name string, sel Selector) *Extremum {
	return &Extremum{name: name, sel: sel}
}

func NewTrough(name string, sel Selector) *Extremum {
	return &Extremum{name: name, sel: sel, min: true}
}

func (e *Extremum) Name() string { return e.name }

func (e *Extremum) Observe(x dynamo.State, t float64) {
	v := e.sel(x)
	switch {
	case e.samples == 0:
		e.value = v
	case e.min:
		e.value = math.Min(e.value, v)
	default:
		e.value = math.Max(e.value, v)
	}
	e.samples++
}

func (e *Extremum) Value() float64 { return e.value }

func (e *Extremum) Reset() {
	e.value = 0
	e.samples = 0
}

// Mean is the sample mean of a density over a run.
type Mean struct {
	name    string
	sel     Selector
	sum     float64
	samples int
}

func NewMean(name string, sel Selector) *Mean {
	return &Mean{name: name, sel: sel}
}

func (m *Mean) Name() string { return m.name }

func (m *Mean) Observe(x dynamo.State, t float64) {
	m.sum += m.sel(x)
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}
