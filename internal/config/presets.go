package config

import "sort"

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"lynx-hare": {
		Coefficients: CoefficientsConfig{PreyGrowth: 0.55, Predation: 0.028, PredatorGrowth: 0.024, PredatorMortality: 0.8},
		InitState:    InitStateConfig{Predators: 4, Prey: 30},
		Dt:           0.001,
		RunTime:      80,
		Labels:       LabelsConfig{Predator: "Lynx", Prey: "Hare"},
	},
	"predator-crash": {
		Coefficients: CoefficientsConfig{PreyGrowth: 0.5, Predation: 0.2, PredatorGrowth: 0.01, PredatorMortality: 0.9},
		InitState:    InitStateConfig{Predators: 2, Prey: 3},
		Dt:           0.001,
		RunTime:      30,
		Labels:       LabelsConfig{Predator: DefaultPredatorLabel, Prey: DefaultPreyLabel},
	},
	"prey-only": {
		Coefficients: CoefficientsConfig{PreyGrowth: 0.3},
		InitState:    InitStateConfig{Predators: 1, Prey: 3},
		Dt:           0.01,
		RunTime:      10,
		Labels:       LabelsConfig{Predator: DefaultPredatorLabel, Prey: DefaultPreyLabel},
	},
	"coarse": {
		Coefficients: CoefficientsConfig{PreyGrowth: 0.5, Predation: 0.2, PredatorGrowth: 0.1, PredatorMortality: 0.2},
		InitState:    InitStateConfig{Predators: 1, Prey: 3},
		Dt:           0.1,
		RunTime:      50,
		Labels:       LabelsConfig{Predator: DefaultPredatorLabel, Prey: DefaultPreyLabel},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
