package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/predsim/internal/config"
	"github.com/san-kum/predsim/internal/dynamo"
	"github.com/san-kum/predsim/internal/experiment"
)

const DefaultCollapseThreshold = 1e-6

// MonteCarloConfig perturbs the initial densities of Base. Each density is
// scaled by a uniform factor in [1-Perturbation, 1+Perturbation].
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	// Seed zero seeds from the clock.
	Seed int64
	// Threshold is the density below which a population counts as
	// collapsed at the end of a trial.
	Threshold float64
	Workers   int
}

type MonteCarloResult struct {
	TrialID        int
	InitState      dynamo.State
	FinalState     dynamo.State
	ExtinctionTime float64
	Collapsed      bool
}

// perturbedStates draws every trial's start up front so a seed fixes the
// whole experiment regardless of scheduling.
func perturbedStates(cfg *MonteCarloConfig) []dynamo.State {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	base := cfg.Base.InitState.State()
	states := make([]dynamo.State, cfg.NumTrials)
	for i := range states {
		states[i] = dynamo.State{
			Predators: math.Max(0, base.Predators*(1+(rng.Float64()-0.5)*2*cfg.Perturbation)),
			Prey:      math.Max(0, base.Prey*(1+(rng.Float64()-0.5)*2*cfg.Perturbation)),
		}
	}
	return states
}

func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, logger *zap.Logger) ([]MonteCarloResult, error) {
	if cfg.Base == nil {
		return nil, fmt.Errorf("monte carlo has no base configuration")
	}
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultCollapseThreshold
	}

	starts := perturbedStates(cfg)
	results := make([]MonteCarloResult, len(starts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(cfg.Workers))

	for i, x0 := range starts {
		i, x0 := i, x0
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			trial := cfg.Base.Clone()
			trial.Trace = false
			trial.InitState = config.InitStateConfig{Predators: x0.Predators, Prey: x0.Prey}

			exp, err := experiment.New(trial)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}

			ts := exp.WithDefaultMetrics().Run()
			final := ts.StateAt(ts.Len() - 1)
			results[i] = MonteCarloResult{
				TrialID:        i,
				InitState:      x0,
				FinalState:     final,
				ExtinctionTime: ts.Metrics["extinction_time"],
				Collapsed:      final.Predators < threshold || final.Prey < threshold,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	survived, collapsed := MonteCarloStats(results)
	logger.Info("monte carlo complete",
		zap.Int("trials", len(results)),
		zap.Int("survived", survived),
		zap.Int("collapsed", collapsed),
	)
	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) (survived int, collapsed int) {
	for _, r := range results {
		if r.Collapsed {
			collapsed++
		} else {
			survived++
		}
	}
	return
}
