package configsource

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tetrad-labs/mcda/pkg/fce"
)

// scaleFile is the on-disk form of a fuzzy scale.
type scaleFile struct {
	FuzzyScale map[string]float64 `yaml:"fuzzy_scale"`
}

// LoadScale reads a fuzzy scale from a YAML file and validates that every
// linguistic term is present with an in-range value.
func LoadScale(path string) (fce.Scale, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fuzzy scale: %w", err)
	}

	var file scaleFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse fuzzy scale %s: %w", path, err)
	}
	if len(file.FuzzyScale) == 0 {
		return nil, fmt.Errorf("fuzzy scale %s: missing fuzzy_scale section", path)
	}

	scale := make(fce.Scale, len(file.FuzzyScale))
	for term, value := range file.FuzzyScale {
		scale[fce.Term(term)] = value
	}
	if err := scale.Validate(); err != nil {
		return nil, fmt.Errorf("fuzzy scale %s: %w", path, err)
	}
	return scale, nil
}
