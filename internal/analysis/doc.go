// Package analysis inspects finished predator-prey runs.
//
//   - [PhasePortrait]: the run in the (prey, predators) plane, with an ASCII renderer
//   - [FFT], [PowerSpectrum], [DominantPeriod]: spectral view of one population
//   - [Peaks], [Period], [Summarize]: cycle statistics from local maxima
//   - [AmplitudeDiagram]: peak densities as one coefficient is swept
//
// # Cycle length
//
// Classic Lotka-Volterra runs are closed orbits, so both populations share
// a period and the predator peaks trail the prey peaks:
//
//	sum := analysis.Summarize(ts)
//	fmt.Println(sum.Prey.Period, sum.PhaseLag)
package analysis
