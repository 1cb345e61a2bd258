package dynamo

import (
	"fmt"
	"math"
)

// State is a pair of population densities.
type State struct {
	Predators float64
	Prey      float64
}

// IsValid reports whether both densities are finite and non-negative.
func (s State) IsValid() bool {
	for _, v := range [2]float64{s.Predators, s.Prey} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}

// Extinct reports whether either population has died out.
func (s State) Extinct() bool {
	return s.Predators == 0 || s.Prey == 0
}

func (s State) String() string {
	return fmt.Sprintf("predators=%g prey=%g", s.Predators, s.Prey)
}

// System computes instantaneous rates of change for a state. The returned
// State holds dPredators/dt and dPrey/dt.
type System interface {
	Derive(x State) State
}

type Integrator interface {
	Step(dyn System, x State, dt float64) State
}

// Observer receives the post-step state of a simulator when tracing is on.
type Observer interface {
	OnStep(x State, t float64)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(x State, t float64)

func (f ObserverFunc) OnStep(x State, t float64) { f(x, t) }

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// Config holds the clock parameters and the trace flag for one run.
type Config struct {
	Dt      float64
	RunTime float64
	Trace   bool
}

func (c Config) Validate() error {
	if c.Dt <= 0 || math.IsNaN(c.Dt) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidStep, c.Dt)
	}
	if c.RunTime < 0 || math.IsNaN(c.RunTime) || math.IsInf(c.RunTime, 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidHorizon, c.RunTime)
	}
	return nil
}

// ValidateState checks an initial state before it is handed to a Simulator.
func ValidateState(x State) error {
	if !x.IsValid() {
		return fmt.Errorf("%w: %s", ErrNegativeDensity, x)
	}
	return nil
}
