// Package dynamo provides the simulation engine for the two-species
// predator-prey model.
//
// The package defines the state, the fixed-step clock and the simulator
// that advances a population under a [System] using an [Integrator]:
//
//   - [State]: predator and prey densities
//   - [System]: rates of change of a state (dX/dt = f(X))
//   - [Integrator]: single-step numerical update
//   - [Clock]: elapsed time against a horizon
//   - [Simulator]: owns state and clock, advances one step at a time
//   - [Collect]: drives a simulator to completion into a [TimeSeries]
//
// # Example
//
//	coeffs := physics.DefaultCoefficients()
//	s := dynamo.New(coeffs, integrators.NewMidpoint(), dynamo.State{Predators: 1, Prey: 3}, cfg)
//	ts := dynamo.Collect(s, dynamo.Labels{Predator: "Lynx", Prey: "Hare"})
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Parameter sweeps build one
// independent simulator per run; instances never share state.
package dynamo
