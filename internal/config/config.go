package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/predsim/internal/dynamo"
	"github.com/san-kum/predsim/internal/physics"
)

const (
	DefaultPredators         = 1.0
	DefaultPrey              = 3.0
	DefaultPreyGrowth        = 0.5
	DefaultPredation         = 0.2
	DefaultPredatorGrowth    = 0.1
	DefaultPredatorMortality = 0.2
	DefaultDt                = 0.001
	DefaultRunTime           = 50.0
	DefaultPredatorLabel     = "Predators"
	DefaultPreyLabel         = "Prey"
)

type Config struct {
	Coefficients CoefficientsConfig `yaml:"coefficients" json:"coefficients"`
	InitState    InitStateConfig    `yaml:"init_state" json:"init_state"`
	Dt           float64            `yaml:"dt" json:"dt"`
	RunTime      float64            `yaml:"run_time" json:"run_time"`
	Labels       LabelsConfig       `yaml:"labels" json:"labels"`
	Trace        bool               `yaml:"trace" json:"trace"`
}

type CoefficientsConfig struct {
	PreyGrowth        float64 `yaml:"prey_growth_rate" json:"prey_growth_rate"`
	Predation         float64 `yaml:"predation_rate" json:"predation_rate"`
	PredatorGrowth    float64 `yaml:"predator_growth_rate" json:"predator_growth_rate"`
	PredatorMortality float64 `yaml:"predator_mortality_rate" json:"predator_mortality_rate"`
}

type InitStateConfig struct {
	Predators float64 `yaml:"predators" json:"predators"`
	Prey      float64 `yaml:"prey" json:"prey"`
}

type LabelsConfig struct {
	Predator string `yaml:"predator" json:"predator"`
	Prey     string `yaml:"prey" json:"prey"`
}

func DefaultConfig() *Config {
	return &Config{
		Coefficients: CoefficientsConfig{
			PreyGrowth:        DefaultPreyGrowth,
			Predation:         DefaultPredation,
			PredatorGrowth:    DefaultPredatorGrowth,
			PredatorMortality: DefaultPredatorMortality,
		},
		InitState: InitStateConfig{
			Predators: DefaultPredators,
			Prey:      DefaultPrey,
		},
		Dt:      DefaultDt,
		RunTime: DefaultRunTime,
		Labels: LabelsConfig{
			Predator: DefaultPredatorLabel,
			Prey:     DefaultPreyLabel,
		},
	}
}

// Load reads a yaml file over the defaults; fields absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a yaml file over a copy of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the engine does not defend against.
func (c *Config) Validate() error {
	if err := c.SimConfig().Validate(); err != nil {
		return err
	}
	if err := dynamo.ValidateState(c.InitState.State()); err != nil {
		return err
	}
	return c.Coefficients.Model().Validate()
}

func (c CoefficientsConfig) Model() physics.Coefficients {
	return physics.NewCoefficients(c.PreyGrowth, c.Predation, c.PredatorGrowth, c.PredatorMortality)
}

func (s InitStateConfig) State() dynamo.State {
	return dynamo.State{Predators: s.Predators, Prey: s.Prey}
}

func (c *Config) SimConfig() dynamo.Config {
	return dynamo.Config{Dt: c.Dt, RunTime: c.RunTime, Trace: c.Trace}
}

func (c *Config) GetLabels() dynamo.Labels {
	return dynamo.Labels{Predator: c.Labels.Predator, Prey: c.Labels.Prey}
}

// SetParam updates a coefficient or initial density by name.
func (c *Config) SetParam(name string, value float64) error {
	switch name {
	case "predators":
		c.InitState.Predators = value
		return nil
	case "prey":
		c.InitState.Prey = value
		return nil
	}
	coeffs, err := c.Coefficients.Model().With(name, value)
	if err != nil {
		return err
	}
	c.Coefficients = CoefficientsConfig{
		PreyGrowth:        coeffs.PreyGrowth,
		Predation:         coeffs.Predation,
		PredatorGrowth:    coeffs.PredatorGrowth,
		PredatorMortality: coeffs.PredatorMortality,
	}
	return nil
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
