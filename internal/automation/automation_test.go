package automation

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/san-kum/predsim/internal/config"
	"github.com/san-kum/predsim/internal/dynamo"
	"github.com/san-kum/predsim/internal/experiment"
	"github.com/san-kum/predsim/internal/physics"
)

const scenarioYAML = `name: demo
description: two short runs
steps:
  - name: classic
    run_time: 1
    dt: 0.01
  - name: hares
    preset: lynx-hare
    run_time: 0.5
    dt: 0.1
    params:
      prey: 40
    save_as: hares
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func shortConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Dt = 0.01
	cfg.RunTime = 1
	return cfg
}

func TestLoadAndRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)
	assert.Equal(t, "demo", sc.Name)
	require.Len(t, sc.Steps, 2)

	results, err := RunScenario(context.Background(), sc, nil, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "classic", results[0].Name)
	assert.Equal(t, 101, results[0].Series.Len())

	hares := results[1]
	assert.Equal(t, "hares", hares.SaveAs)
	assert.Equal(t, 6, hares.Series.Len())
	assert.Equal(t, dynamo.Labels{Predator: "Lynx", Prey: "Hare"}, hares.Series.Labels())
	assert.Equal(t, 40.0, hares.Series.Prey.Values[0])
	assert.Contains(t, hares.Series.Metrics, "peak_prey")
}

func TestRunScenarioErrors(t *testing.T) {
	tests := []struct {
		name string
		step ScenarioStep
	}{
		{"unknown preset", ScenarioStep{Preset: "nope"}},
		{"unknown param", ScenarioStep{Params: map[string]float64{"nope": 1}}},
		{"invalid dt", ScenarioStep{Dt: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := &Scenario{Steps: []ScenarioStep{tt.step}}
			results, err := RunScenario(context.Background(), sc, nil, zap.NewNop())
			assert.Error(t, err)
			assert.Empty(t, results)
		})
	}
}

func TestRunScenarioCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sc := &Scenario{Steps: []ScenarioStep{{RunTime: 1}}}
	_, err := RunScenario(ctx, sc, nil, zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadScenarioInvalid(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, "steps: [unclosed"))
	assert.Error(t, err)

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunSweepOrderedResults(t *testing.T) {
	sweep := &ParameterSweep{
		Base:     shortConfig(),
		Param:    physics.ParamPreyGrowth,
		Min:      0.3,
		Max:      0.7,
		NumSteps: 5,
		Workers:  3,
	}

	results, err := RunSweep(context.Background(), sweep, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, results, 5)

	for i, r := range results {
		assert.InDelta(t, 0.3+0.1*float64(i), r.ParamValue, 1e-12)
		assert.InDelta(t, 1.0, r.Final.Time, 1e-12)
		assert.Contains(t, r.Metrics, "invariant_drift")
	}
	// faster prey growth leaves more prey after the same time
	for i := 1; i < len(results); i++ {
		assert.Greater(t, results[i].Final.Prey, results[i-1].Final.Prey)
	}
}

func TestRunSweepMatchesSingleRun(t *testing.T) {
	sweep := &ParameterSweep{Base: shortConfig(), Param: "prey", Min: 3, Max: 3, NumSteps: 1}

	results, err := RunSweep(context.Background(), sweep, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, results, 1)

	exp, err := experiment.New(shortConfig())
	require.NoError(t, err)
	ts := exp.Run()
	assert.Equal(t, ts.Final(), results[0].Final)
}

func TestRunSweepErrors(t *testing.T) {
	_, err := RunSweep(context.Background(), &ParameterSweep{Param: "prey"}, zap.NewNop())
	assert.Error(t, err)

	_, err = RunSweep(context.Background(), &ParameterSweep{Base: shortConfig(), Param: "nope", NumSteps: 3}, zap.NewNop())
	assert.ErrorIs(t, err, dynamo.ErrUnknownParam)

	_, err = RunSweep(context.Background(), &ParameterSweep{Base: shortConfig(), Param: "prey", Min: -1, Max: 1, NumSteps: 3}, zap.NewNop())
	assert.ErrorIs(t, err, dynamo.ErrNegativeDensity)
}

func TestRunMonteCarloDeterministic(t *testing.T) {
	mc := &MonteCarloConfig{Base: shortConfig(), Perturbation: 0.2, NumTrials: 8, Seed: 42, Workers: 4}

	first, err := RunMonteCarlo(context.Background(), mc, zap.NewNop())
	require.NoError(t, err)
	second, err := RunMonteCarlo(context.Background(), mc, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, first, 8)
	for i := range first {
		assert.Equal(t, i, first[i].TrialID)
		assert.Equal(t, first[i].InitState, second[i].InitState)
		assert.Equal(t, first[i].FinalState, second[i].FinalState)
		assert.InDelta(t, 1, first[i].InitState.Predators, 0.2+1e-12)
		assert.InDelta(t, 3, first[i].InitState.Prey, 0.6+1e-12)
		assert.True(t, math.IsNaN(first[i].ExtinctionTime))
	}

	survived, collapsed := MonteCarloStats(first)
	assert.Equal(t, 8, survived)
	assert.Zero(t, collapsed)
}

func TestRunMonteCarloCollapse(t *testing.T) {
	base := shortConfig()
	base.Coefficients.PredatorGrowth = 0
	base.Coefficients.PredatorMortality = 2
	base.RunTime = 10

	results, err := RunMonteCarlo(context.Background(), &MonteCarloConfig{Base: base, Perturbation: 0.1, NumTrials: 4, Seed: 7}, zap.NewNop())
	require.NoError(t, err)

	survived, collapsed := MonteCarloStats(results)
	assert.Zero(t, survived)
	assert.Equal(t, 4, collapsed)
}

func TestRunMonteCarloNoBase(t *testing.T) {
	_, err := RunMonteCarlo(context.Background(), &MonteCarloConfig{NumTrials: 1}, zap.NewNop())
	assert.Error(t, err)
}
