package integrators

import "github.com/san-kum/predsim/internal/dynamo"

// Midpoint is the explicit midpoint method, a second-order Runge-Kutta
// scheme. Densities are floored at zero after every step.
type Midpoint struct{}

func NewMidpoint() *Midpoint {
	return &Midpoint{}
}

func (m *Midpoint) Step(dyn dynamo.System, x dynamo.State, dt float64) dynamo.State {
	halfDt := 0.5 * dt

	dx := dyn.Derive(x)
	mid := dynamo.State{
		Predators: x.Predators + halfDt*dx.Predators,
		Prey:      x.Prey + halfDt*dx.Prey,
	}

	dmid := dyn.Derive(mid)
	return dynamo.State{
		Predators: clamp(x.Predators + dt*dmid.Predators),
		Prey:      clamp(x.Prey + dt*dmid.Prey),
	}
}

// clamp floors negative densities to zero. NaN passes through unchanged.
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
