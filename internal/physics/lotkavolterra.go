package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/predsim/internal/dynamo"
)

// Parameter names accepted by Coefficients.With and reported by GetParams.
const (
	ParamPreyGrowth        = "prey_growth_rate"
	ParamPredation         = "predation_rate"
	ParamPredatorGrowth    = "predator_growth_rate"
	ParamPredatorMortality = "predator_mortality_rate"
)

// Coefficients are the four Lotka-Volterra rate constants. The value is
// immutable; With returns a modified copy.
//
// Equations, with x predators and y prey:
//
//	dx/dt = PredatorGrowth*x*y - PredatorMortality*x
//	dy/dt = PreyGrowth*y - Predation*x*y
type Coefficients struct {
	PreyGrowth        float64
	Predation         float64
	PredatorGrowth    float64 // growth as a result of predation
	PredatorMortality float64
}

func NewCoefficients(preyGrowth, predation, predatorGrowth, predatorMortality float64) Coefficients {
	return Coefficients{
		PreyGrowth:        preyGrowth,
		Predation:         predation,
		PredatorGrowth:    predatorGrowth,
		PredatorMortality: predatorMortality,
	}
}

// Derive implements dynamo.System.
func (c Coefficients) Derive(s dynamo.State) dynamo.State {
	x, y := s.Predators, s.Prey
	return dynamo.State{
		Predators: c.PredatorGrowth*x*y - c.PredatorMortality*x,
		Prey:      c.PreyGrowth*y - c.Predation*x*y,
	}
}

// Invariant returns the first integral of the continuous system,
// V = PredatorGrowth*x - PredatorMortality*ln x + Predation*y - PreyGrowth*ln y.
// It is conserved along exact trajectories; ok is false when a density is
// zero and V is undefined.
func (c Coefficients) Invariant(s dynamo.State) (v float64, ok bool) {
	if s.Predators <= 0 || s.Prey <= 0 {
		return 0, false
	}
	v = c.PredatorGrowth*s.Predators - c.PredatorMortality*math.Log(s.Predators) +
		c.Predation*s.Prey - c.PreyGrowth*math.Log(s.Prey)
	return v, true
}

// Equilibrium returns the non-trivial fixed point of the system. ok is false
// when a coefficient it divides by is zero.
func (c Coefficients) Equilibrium() (dynamo.State, bool) {
	if c.PredatorGrowth == 0 || c.Predation == 0 {
		return dynamo.State{}, false
	}
	return dynamo.State{
		Predators: c.PreyGrowth / c.Predation,
		Prey:      c.PredatorMortality / c.PredatorGrowth,
	}, true
}

func (c Coefficients) Validate() error {
	for name, v := range c.GetParams() {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%g", dynamo.ErrParameterBounds, name, v)
		}
	}
	return nil
}

func (c Coefficients) GetParams() map[string]float64 {
	return map[string]float64{
		ParamPreyGrowth:        c.PreyGrowth,
		ParamPredation:         c.Predation,
		ParamPredatorGrowth:    c.PredatorGrowth,
		ParamPredatorMortality: c.PredatorMortality,
	}
}

// With returns a copy with the named coefficient replaced.
func (c Coefficients) With(name string, value float64) (Coefficients, error) {
	switch name {
	case ParamPreyGrowth:
		c.PreyGrowth = value
	case ParamPredation:
		c.Predation = value
	case ParamPredatorGrowth:
		c.PredatorGrowth = value
	case ParamPredatorMortality:
		c.PredatorMortality = value
	default:
		return c, fmt.Errorf("%w: %q (known: %v)", dynamo.ErrUnknownParam, name, ParamNames())
	}
	return c, nil
}

// ParamNames lists the coefficient names in sorted order.
func ParamNames() []string {
	names := make([]string, 0, 4)
	for name := range (Coefficients{}).GetParams() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
