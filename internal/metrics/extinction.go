package metrics

import (
	"math"

	"github.com/san-kum/predsim/internal/dynamo"
)

// Extinction records the first time either population hits zero. Value is
// NaN when both populations survive the run.
type Extinction struct {
	time    float64
	extinct bool
}

func NewExtinction() *Extinction {
	return &Extinction{}
}

func (e *Extinction) Name() string { return "extinction_time" }

func (e *Extinction) Observe(x dynamo.State, t float64) {
	if !e.extinct && x.Extinct() {
		e.extinct = true
		e.time = t
	}
}

func (e *Extinction) Value() float64 {
	if !e.extinct {
		return math.NaN()
	}
	return e.time
}

func (e *Extinction) Reset() {
	e.time = 0
	e.extinct = false
}
