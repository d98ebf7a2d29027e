// Package configsource loads judgment matrices, indicator hierarchies,
// fuzzy scales and scenario profiles from YAML files. It is the
// judgment-matrix and decision-data source collaborator; the scoring
// packages never touch the filesystem themselves.
package configsource

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tetrad-labs/mcda/pkg/ahp"
	"github.com/tetrad-labs/mcda/pkg/evaluate"
)

// MatrixFile is the on-disk form of a judgment matrix.
type MatrixFile struct {
	// MatrixID identifies the matrix; required.
	MatrixID string `yaml:"matrix_id"`
	// Dimension optionally declares the expected size; when present it must
	// match the matrix.
	Dimension int `yaml:"dimension"`
	// Matrix holds the pairwise comparison rows.
	Matrix [][]float64 `yaml:"matrix"`
}

// LoadMatrix reads one judgment matrix from a YAML file and checks its
// declared dimension. Structural validation is the solver's job; this only
// guards the file format.
func LoadMatrix(path string) (ahp.JudgmentMatrix, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read judgment matrix: %w", err)
	}

	var file MatrixFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, "", fmt.Errorf("parse judgment matrix %s: %w", path, err)
	}
	if file.MatrixID == "" {
		return nil, "", fmt.Errorf("judgment matrix %s: missing matrix_id", path)
	}
	if len(file.Matrix) == 0 {
		return nil, "", fmt.Errorf("judgment matrix %s: missing matrix", path)
	}

	n := len(file.Matrix)
	for i, row := range file.Matrix {
		if len(row) != n {
			return nil, "", fmt.Errorf("judgment matrix %s: row %d has %d columns for %d rows", path, i, len(row), n)
		}
	}
	if file.Dimension != 0 && file.Dimension != n {
		return nil, "", fmt.Errorf("judgment matrix %s: dimension mismatch, declared %d got %d", path, file.Dimension, n)
	}

	return ahp.JudgmentMatrix(file.Matrix), file.MatrixID, nil
}

// HierarchyFile is the on-disk form of the evaluation hierarchy: the
// top-level matrix file plus one matrix file and leaf list per branch.
type HierarchyFile struct {
	// TopMatrix is the path (relative to the hierarchy file) of the
	// top-level judgment matrix.
	TopMatrix string `yaml:"top_matrix"`
	// Branches declares the second-level matrices in top-matrix row order.
	Branches []BranchFile `yaml:"branches"`
}

// BranchFile declares one branch's matrix file and leaf indicator IDs.
type BranchFile struct {
	ID      string   `yaml:"id"`
	Matrix  string   `yaml:"matrix"`
	LeafIDs []string `yaml:"leaf_ids"`
}

// LoadHierarchy reads a hierarchy file and the judgment matrices it points
// at, returning the top-level matrix and the branch list ready for
// composition. A branch whose matrix file fails to load is returned with a
// nil matrix; the composer will drop it and record the error, preserving
// branch-granular partial failure.
func LoadHierarchy(path string) (ahp.JudgmentMatrix, []ahp.Branch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read hierarchy: %w", err)
	}

	var file HierarchyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, nil, fmt.Errorf("parse hierarchy %s: %w", path, err)
	}
	if file.TopMatrix == "" {
		return nil, nil, fmt.Errorf("hierarchy %s: missing top_matrix", path)
	}
	if len(file.Branches) == 0 {
		return nil, nil, fmt.Errorf("hierarchy %s: no branches", path)
	}

	dir := filepath.Dir(path)
	top, _, err := LoadMatrix(filepath.Join(dir, file.TopMatrix))
	if err != nil {
		return nil, nil, fmt.Errorf("hierarchy %s: top matrix: %w", path, err)
	}

	branches := make([]ahp.Branch, 0, len(file.Branches))
	for _, b := range file.Branches {
		branch := ahp.Branch{ID: b.ID, LeafIDs: b.LeafIDs}
		matrix, _, err := LoadMatrix(filepath.Join(dir, b.Matrix))
		if err == nil {
			branch.Matrix = matrix
		}
		// A load failure leaves Matrix nil; composition drops the branch
		// and surfaces the error instead of aborting the hierarchy.
		branches = append(branches, branch)
	}
	return top, branches, nil
}

// LoadIndicatorSet reads the indicator set (leaf definitions, benefit/cost
// tags, baselines) from a YAML file.
func LoadIndicatorSet(path string) (*evaluate.IndicatorSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read indicator set: %w", err)
	}
	var set evaluate.IndicatorSet
	if err := yaml.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("parse indicator set %s: %w", path, err)
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("indicator set %s: %w", path, err)
	}
	return &set, nil
}
