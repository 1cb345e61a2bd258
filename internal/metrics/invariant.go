package metrics

import (
	"math"

	"github.com/san-kum/predsim/internal/dynamo"
	"github.com/san-kum/predsim/internal/physics"
)

// InvariantDrift is the largest relative deviation of the Lotka-Volterra
// first integral from its initial value. States where the integral is
// undefined (a density at zero) are skipped.
type InvariantDrift struct {
	coeffs   physics.Coefficients
	initial  float64
	started  bool
	maxDrift float64
}

func NewInvariantDrift(coeffs physics.Coefficients) *InvariantDrift {
	return &InvariantDrift{coeffs: coeffs}
}

func (d *InvariantDrift) Name() string { return "invariant_drift" }

func (d *InvariantDrift) Observe(x dynamo.State, t float64) {
	v, ok := d.coeffs.Invariant(x)
	if !ok {
		return
	}
	if !d.started {
		d.initial = v
		d.started = true
		return
	}
	if d.initial != 0 {
		d.maxDrift = math.Max(d.maxDrift, math.Abs(v-d.initial)/math.Abs(d.initial))
	}
}

func (d *InvariantDrift) Value() float64 { return d.maxDrift }

func (d *InvariantDrift) Reset() {
	d.initial = 0
	d.started = false
	d.maxDrift = 0
}

// Defaults returns the metric set recorded for every stored run.
func Defaults(coeffs physics.Coefficients) []dynamo.Metric {
	return []dynamo.Metric{
		NewPeak("peak_predators", Predators),
		NewPeak("peak_prey", Prey),
		NewTrough("min_predators", Predators),
		NewTrough("min_prey", Prey),
		NewMean("mean_predators", Predators),
		NewMean("mean_prey", Prey),
		NewExtinction(),
		NewInvariantDrift(coeffs),
	}
}
