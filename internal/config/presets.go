package config

import "sort"

// Presets holds named fluid setups per model.
var Presets = map[string]map[string]FluidConfig{
	"perfect_gas": {
		"air": {
			Model: "perfect_gas",
			Args:  []string{"name=air", "cp=1004.5", "R=287.05"},
		},
		"nitrogen": {
			Model: "perfect_gas",
			Args:  []string{"name=nitrogen", "cp=1040", "R=296.8"},
		},
		"helium": {
			Model: "perfect_gas",
			Args:  []string{"name=helium", "cp=5193", "R=2077.1", "T_min=5"},
		},
		"co2": {
			Model: "perfect_gas",
			Args:  []string{"name=co2", "cp=844", "R=188.9", "T_min=220"},
		},
	},
	"stiffened_gas": {
		"water": {
			Model: "stiffened_gas",
			Args:  []string{"name=water"},
		},
		"water_vapor": {
			Model: "stiffened_gas",
			Args:  []string{"name=water_vapor", "gamma=1.43", "p_inf=0", "cv=1040", "q=2030e3", "q_prime=-23e3", "T_min=273.15", "T_max=1000"},
		},
	},
}

// GetPreset returns a copy of the preset, or nil when it does not exist.
func GetPreset(model, preset string) *FluidConfig {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	fc, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	fc.Args = append([]string(nil), fc.Args...)
	return &fc
}

// FindPreset looks a preset up by name across all models.
func FindPreset(preset string) *FluidConfig {
	for _, model := range Models() {
		if fc := GetPreset(model, preset); fc != nil {
			return fc
		}
	}
	return nil
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Models lists the models that have presets.
func Models() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
