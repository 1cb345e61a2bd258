package automation

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/predsim/internal/config"
	"github.com/san-kum/predsim/internal/dynamo"
	"github.com/san-kum/predsim/internal/experiment"
)

// ParameterSweep runs Base once per evenly spaced value of Param. Param is
// a coefficient name or "predators"/"prey" for the initial densities.
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	Min      float64
	Max      float64
	NumSteps int
	// Workers bounds concurrent runs; zero means GOMAXPROCS.
	Workers int
}

type SweepResult struct {
	ParamValue float64
	Final      dynamo.Sample
	Metrics    map[string]float64
}

func (s *ParameterSweep) values() []float64 {
	if s.NumSteps <= 1 {
		return []float64{s.Min}
	}
	step := (s.Max - s.Min) / float64(s.NumSteps-1)
	vals := make([]float64, s.NumSteps)
	for i := range vals {
		vals[i] = s.Min + float64(i)*step
	}
	return vals
}

func workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// RunSweep runs every point on its own simulator in parallel. Results are
// ordered by parameter value; the first failing point cancels the rest.
func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *zap.Logger) ([]SweepResult, error) {
	if sweep.Base == nil {
		return nil, fmt.Errorf("sweep has no base configuration")
	}

	vals := sweep.values()
	results := make([]SweepResult, len(vals))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(sweep.Workers))

	for i, v := range vals {
		i, v := i, v
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			cfg := sweep.Base.Clone()
			cfg.Trace = false
			if err := cfg.SetParam(sweep.Param, v); err != nil {
				return err
			}

			exp, err := experiment.New(cfg)
			if err != nil {
				return fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
			}

			ts := exp.WithDefaultMetrics().Run()
			results[i] = SweepResult{ParamValue: v, Final: ts.Final(), Metrics: ts.Metrics}

			logger.Debug("sweep point done",
				zap.String("param", sweep.Param),
				zap.Float64("value", v),
				zap.Int("samples", ts.Len()),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("sweep complete", zap.String("param", sweep.Param), zap.Int("points", len(results)))
	return results, nil
}
