package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/predsim/internal/config"
	"github.com/san-kum/predsim/internal/dynamo"
	"github.com/san-kum/predsim/internal/experiment"
)

// Objective scores a finished run; lower is better.
type Objective func(ts *dynamo.TimeSeries) float64

// MetricObjective minimises a named metric. Runs where the metric is NaN
// or missing score +Inf.
func MetricObjective(name string) Objective {
	return func(ts *dynamo.TimeSeries) float64 {
		v, ok := ts.Metrics[name]
		if !ok || math.IsNaN(v) {
			return math.Inf(1)
		}
		return v
	}
}

// FitObjective is the mean squared error against an observed trajectory
// over both populations, compared sample by sample on the shorter of the
// two series.
func FitObjective(target *dynamo.TimeSeries) Objective {
	return func(ts *dynamo.TimeSeries) float64 {
		n := min(ts.Len(), target.Len())
		if n == 0 {
			return math.Inf(1)
		}
		sum := 0.0
		for i := 0; i < n; i++ {
			dp := ts.Predators.Values[i] - target.Predators.Values[i]
			dq := ts.Prey.Values[i] - target.Prey.Values[i]
			sum += dp*dp + dq*dq
		}
		return sum / float64(2*n)
	}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// NewGridSearch searches the cartesian product of ranges. Parameter names
// are anything config.Config.SetParam accepts.
func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%d parameters but %d ranges", len(params), len(ranges))
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

type Result struct {
	Params    map[string]float64
	Score     float64
	Evaluated int
}

// Search runs base once per grid point and returns the point with the
// lowest score. Ties keep the first point found.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, objective Objective) (*Result, error) {
	res := &Result{Score: math.Inf(1)}
	if err := g.searchRecursive(ctx, 0, make(map[string]float64), base, objective, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	objective Objective,
	res *Result,
) error {
	if depth == len(g.paramNames) {
		if err := ctx.Err(); err != nil {
			return err
		}

		cfg := base.Clone()
		cfg.Trace = false
		for _, name := range g.paramNames {
			if err := cfg.SetParam(name, current[name]); err != nil {
				return err
			}
		}

		exp, err := experiment.New(cfg)
		if err != nil {
			return err
		}

		score := objective(exp.WithDefaultMetrics().Run())
		res.Evaluated++
		if score < res.Score || res.Params == nil {
			res.Score = score
			res.Params = make(map[string]float64, len(current))
			for k, v := range current {
				res.Params[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[paramName] = val
		if err := g.searchRecursive(ctx, depth+1, current, base, objective, res); err != nil {
			return err
		}
	}
	return nil
}
