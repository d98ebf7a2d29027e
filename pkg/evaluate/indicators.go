// Package evaluate orchestrates the scoring pipeline: solved global weights
// plus per-candidate indicator values (quantitative and defuzzified
// qualitative) feed one ranking call over the whole batch.
package evaluate

import (
	"fmt"

	"github.com/tetrad-labs/mcda/pkg/topsis"
)

// Indicator describes one leaf criterion of the evaluation hierarchy.
type Indicator struct {
	// ID is the leaf identifier, matching the composed global weight keys.
	ID string `yaml:"id" json:"id"`
	// Name is a human-readable label.
	Name string `yaml:"name" json:"name"`
	// Type tags the indicator as benefit or cost.
	Type topsis.IndicatorType `yaml:"type" json:"type"`
	// Baseline is the reference value used for single-candidate evaluation.
	Baseline float64 `yaml:"baseline" json:"baseline"`
	// Qualitative marks indicators scored by linguistic assessment instead
	// of measurement.
	Qualitative bool `yaml:"qualitative" json:"qualitative"`
}

// IndicatorSet is an ordered collection of leaf indicators. Row vectors and
// weight vectors are index-aligned with this order.
type IndicatorSet struct {
	Indicators []Indicator `yaml:"indicators" json:"indicators"`
}

// Validate checks the set is usable for ranking: at least two indicators,
// unique IDs and valid types.
func (s *IndicatorSet) Validate() error {
	if len(s.Indicators) < 2 {
		return fmt.Errorf("need at least 2 indicators, got %d", len(s.Indicators))
	}
	seen := make(map[string]bool, len(s.Indicators))
	for _, ind := range s.Indicators {
		if ind.ID == "" {
			return fmt.Errorf("indicator with empty id")
		}
		if seen[ind.ID] {
			return fmt.Errorf("duplicate indicator id %q", ind.ID)
		}
		seen[ind.ID] = true
		if ind.Type != topsis.Benefit && ind.Type != topsis.Cost {
			return fmt.Errorf("indicator %s: invalid type %q", ind.ID, ind.Type)
		}
	}
	return nil
}

// Order returns the indicator IDs in set order.
func (s *IndicatorSet) Order() []string {
	order := make([]string, len(s.Indicators))
	for i, ind := range s.Indicators {
		order[i] = ind.ID
	}
	return order
}

// Types returns the indicator types in set order.
func (s *IndicatorSet) Types() []topsis.IndicatorType {
	types := make([]topsis.IndicatorType, len(s.Indicators))
	for i, ind := range s.Indicators {
		types[i] = ind.Type
	}
	return types
}

// BaselineRow returns the baseline values in set order.
func (s *IndicatorSet) BaselineRow() []float64 {
	row := make([]float64, len(s.Indicators))
	for i, ind := range s.Indicators {
		row[i] = ind.Baseline
	}
	return row
}

// WeightVector aligns a global weight map with the set order. Every
// indicator must have a weight.
func (s *IndicatorSet) WeightVector(weights map[string]float64) ([]float64, error) {
	vector := make([]float64, len(s.Indicators))
	for i, ind := range s.Indicators {
		w, ok := weights[ind.ID]
		if !ok {
			return nil, fmt.Errorf("no weight for indicator %s", ind.ID)
		}
		vector[i] = w
	}
	return vector, nil
}
