// Package scenario applies externally-supplied scenario profiles to an
// evaluation: per-indicator value multipliers and weight multipliers. The
// multiplier tables are business-rule data, not algorithm, so they live in
// configuration rather than code.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is one scenario's adjustment table.
type Profile struct {
	// ID identifies the scenario.
	ID string `yaml:"scenario_id" json:"scenario_id"`
	// Type is a free-form scenario category.
	Type string `yaml:"scenario_type" json:"scenario_type"`
	// ValueMultipliers scale raw indicator values before normalization.
	ValueMultipliers map[string]float64 `yaml:"value_multipliers" json:"value_multipliers"`
	// WeightMultipliers scale global weights; the weight vector is
	// renormalized afterwards so it still sums to 1.0.
	WeightMultipliers map[string]float64 `yaml:"weight_multipliers" json:"weight_multipliers"`
}

// Validate checks that all multipliers are positive.
func (p *Profile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("scenario profile missing scenario_id")
	}
	for id, m := range p.ValueMultipliers {
		if m <= 0 {
			return fmt.Errorf("scenario %s: value multiplier for %s must be positive, got %g", p.ID, id, m)
		}
	}
	for id, m := range p.WeightMultipliers {
		if m <= 0 {
			return fmt.Errorf("scenario %s: weight multiplier for %s must be positive, got %g", p.ID, id, m)
		}
	}
	return nil
}

// ApplyValues returns a copy of the indicator values with this scenario's
// value multipliers applied. Indicators without a multiplier pass through.
func (p *Profile) ApplyValues(values map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(values))
	for id, v := range values {
		if m, ok := p.ValueMultipliers[id]; ok {
			v *= m
		}
		out[id] = v
	}
	return out
}

// ApplyWeights returns a copy of the global weights with this scenario's
// weight multipliers applied and the vector renormalized to sum 1.0.
func (p *Profile) ApplyWeights(weights map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(weights))
	var total float64
	for id, w := range weights {
		if m, ok := p.WeightMultipliers[id]; ok {
			w *= m
		}
		out[id] = w
		total += w
	}
	if total == 0 {
		return out
	}
	for id := range out {
		out[id] /= total
	}
	return out
}

// LoadProfile reads a scenario profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse scenario profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
