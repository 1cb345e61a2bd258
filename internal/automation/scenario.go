package automation

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/predsim/internal/config"
	"github.com/san-kum/predsim/internal/dynamo"
	"github.com/san-kum/predsim/internal/experiment"
)

// Scenario is a scripted list of runs read from yaml.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (classic when empty) and applies
// overrides. Zero Dt or RunTime keeps the preset value.
type ScenarioStep struct {
	Name    string             `yaml:"name"`
	Preset  string             `yaml:"preset"`
	Params  map[string]float64 `yaml:"params"`
	Dt      float64            `yaml:"dt"`
	RunTime float64            `yaml:"run_time"`
	Trace   bool               `yaml:"trace"`
	SaveAs  string             `yaml:"save_as"`
}

type StepResult struct {
	Name   string
	SaveAs string
	Config *config.Config
	Series *dynamo.TimeSeries
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// Config resolves the step into a full run configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	preset := s.Preset
	if preset == "" {
		preset = "classic"
	}
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset %q", preset)
	}

	for name, v := range s.Params {
		if err := cfg.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.RunTime != 0 {
		cfg.RunTime = s.RunTime
	}
	cfg.Trace = s.Trace
	return cfg, nil
}

// RunScenario executes the steps in order. Each step gets its own
// simulator; tracer, when non-nil, receives the steps that enable tracing.
func RunScenario(ctx context.Context, scenario *Scenario, tracer dynamo.Observer, logger *zap.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		logger.Info("running scenario step",
			zap.String("scenario", scenario.Name),
			zap.String("step", name),
			zap.Int("index", i+1),
			zap.Int("total", len(scenario.Steps)),
		)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp, err := experiment.New(cfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		exp.SetTracer(tracer)

		results = append(results, StepResult{
			Name:   name,
			SaveAs: step.SaveAs,
			Config: cfg,
			Series: exp.WithDefaultMetrics().Run(),
		})
	}

	return results, nil
}
