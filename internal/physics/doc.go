// Package physics provides the Lotka-Volterra predator-prey model.
//
// [Coefficients] implements [dynamo.System]: it maps a population state to
// its instantaneous rates of change. It also exposes the system's conserved
// quantity ([Coefficients.Invariant]) and its coexistence equilibrium.
//
// # Conserved Quantity
//
// The continuous system conserves V along every trajectory, so drift in V
// measures integration error:
//
//	v0, _ := coeffs.Invariant(x0)
//	v1, _ := coeffs.Invariant(x1)
//	drift := math.Abs(v1-v0) / math.Abs(v0)
package physics
