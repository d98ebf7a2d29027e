package topsis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ciDenominatorEpsilon is the threshold below which the closeness
// denominator D+ + D- is treated as zero.
const ciDenominatorEpsilon = 1e-15

// weightSumTolerance bounds the allowed deviation of the weight sum from 1.0.
const weightSumTolerance = 1e-6

// DataValidationError reports invalid ranking input: matrix shape or sign
// violations, a malformed weight vector or bad indicator types.
type DataValidationError struct {
	Reason string
}

func (e *DataValidationError) Error() string {
	return "invalid ranking input: " + e.Reason
}

// Options configures ranking.
type Options struct {
	// ValidateInput enables input validation before computation.
	// Default: true
	ValidateInput bool
	// Logger receives diagnostic messages. Default: discard
	Logger func(msg string)
}

// DefaultOptions returns the standard ranking configuration.
func DefaultOptions() Options {
	return Options{ValidateInput: true, Logger: func(string) {}}
}

// ResultValidation is the post-computation self-check. Violations here are
// non-fatal; callers must inspect it explicitly.
type ResultValidation struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// Result holds a complete ranking.
type Result struct {
	// Ci holds the relative closeness coefficients in [0, 1], index-aligned
	// with the decision matrix rows. Higher is better.
	Ci []float64 `json:"ci"`
	// Rankings assigns each alternative a distinct position 1..m by
	// descending Ci. Ties go to the earlier row index.
	Rankings []int `json:"rankings"`
	// PIS and NIS are the per-indicator ideal and anti-ideal vectors.
	PIS []float64 `json:"pis"`
	NIS []float64 `json:"nis"`
	// DPlus and DMinus are each alternative's Euclidean distances to PIS
	// and NIS.
	DPlus  []float64 `json:"d_plus"`
	DMinus []float64 `json:"d_minus"`
	// Normalized and Weighted are the intermediate matrices.
	Normalized [][]float64 `json:"normalized_matrix"`
	Weighted   [][]float64 `json:"weighted_matrix"`
	// Validation is the post-computation self-check.
	Validation ResultValidation `json:"validation"`
}

// Rank scores and ranks the alternatives of a decision matrix:
// vector-normalize, apply weights column-wise, locate PIS/NIS, measure each
// alternative's distances to both, and rank by relative closeness
// Ci = D- / (D+ + D-).
//
// When the denominator for an alternative falls below 1e-15 (typically all
// alternatives identical), its Ci is 0.5 by convention. The whole matrix is
// required at once: PIS/NIS and the distances are global over the batch.
func Rank(matrix [][]float64, weights []float64, types []IndicatorType, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = func(string) {}
	}

	if opts.ValidateInput {
		if err := validateInput(matrix, weights, types); err != nil {
			return nil, err
		}
	}

	rows, cols, err := shape(matrix)
	if err != nil {
		return nil, &DataValidationError{Reason: err.Error()}
	}

	normalized, err := VectorNormalize(matrix, AxisColumns)
	if err != nil {
		return nil, fmt.Errorf("normalize decision matrix: %w", err)
	}

	weighted := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		weighted[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			weighted[i][j] = normalized[i][j] * weights[j]
		}
	}

	pis, nis, err := IdealSolutions(weighted, types)
	if err != nil {
		return nil, err
	}

	dPlus := make([]float64, rows)
	dMinus := make([]float64, rows)
	ci := make([]float64, rows)
	for i := 0; i < rows; i++ {
		dPlus[i] = floats.Distance(weighted[i], pis, 2)
		dMinus[i] = floats.Distance(weighted[i], nis, 2)
		denom := dPlus[i] + dMinus[i]
		if denom < ciDenominatorEpsilon {
			// Degenerate: the alternative is equidistant from both ideals.
			ci[i] = 0.5
			continue
		}
		ci[i] = dMinus[i] / denom
	}

	rankings := rankByCloseness(ci)

	result := &Result{
		Ci:         ci,
		Rankings:   rankings,
		PIS:        pis,
		NIS:        nis,
		DPlus:      dPlus,
		DMinus:     dMinus,
		Normalized: normalized,
		Weighted:   weighted,
		Validation: validateResult(ci, rankings, dPlus, dMinus),
	}
	if !result.Validation.Valid {
		opts.Logger(fmt.Sprintf("ranking self-check failed: %v", result.Validation.Errors))
	}
	return result, nil
}

// rankByCloseness assigns positions 1..m by descending Ci. The sort is
// stable over the original row order, so an exact Ci tie gives the earlier
// row the better rank. This positional tie-break is load-bearing for
// reproducibility; do not switch to shared ranking.
func rankByCloseness(ci []float64) []int {
	order := make([]int, len(ci))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ci[order[a]] > ci[order[b]]
	})

	rankings := make([]int, len(ci))
	for pos, idx := range order {
		rankings[idx] = pos + 1
	}
	return rankings
}

func validateInput(matrix [][]float64, weights []float64, types []IndicatorType) error {
	rows, cols, err := shape(matrix)
	if err != nil {
		return &DataValidationError{Reason: err.Error()}
	}
	if rows < 2 {
		return &DataValidationError{Reason: "need at least 2 alternatives for ranking"}
	}
	if cols < 2 {
		return &DataValidationError{Reason: "need at least 2 indicators for evaluation"}
	}
	for i := range matrix {
		for j := range matrix[i] {
			if matrix[i][j] < 0 {
				return &DataValidationError{Reason: fmt.Sprintf("negative value at [%d][%d]", i, j)}
			}
		}
	}
	if len(weights) != cols {
		return &DataValidationError{Reason: fmt.Sprintf("weights length %d must match %d indicators", len(weights), cols)}
	}
	for j, w := range weights {
		if w <= 0 {
			return &DataValidationError{Reason: fmt.Sprintf("weight %d must be positive, got %g", j, w)}
		}
	}
	if sum := floats.Sum(weights); math.Abs(sum-1.0) > weightSumTolerance {
		return &DataValidationError{Reason: fmt.Sprintf("weights must sum to 1.0, got %.6f", sum)}
	}
	if len(types) != cols {
		return &DataValidationError{Reason: fmt.Sprintf("indicator types length %d must match %d indicators", len(types), cols)}
	}
	for _, t := range types {
		if t != Benefit && t != Cost {
			return &DataValidationError{Reason: fmt.Sprintf("invalid indicator type %q", t)}
		}
	}
	return nil
}

// validateResult runs the post-computation self-check: Ci bounds, ranking
// completeness and Ci/ranking consistency as errors; degenerate geometry as
// warnings.
func validateResult(ci []float64, rankings []int, dPlus, dMinus []float64) ResultValidation {
	v := ResultValidation{Valid: true}

	for _, c := range ci {
		if c < 0 || c > 1 {
			v.Errors = append(v.Errors, fmt.Sprintf("Ci values must be in [0,1], got %.6f", c))
			v.Valid = false
			break
		}
	}

	seen := make(map[int]bool, len(rankings))
	complete := true
	for _, r := range rankings {
		if r < 1 || r > len(rankings) || seen[r] {
			complete = false
			break
		}
		seen[r] = true
	}
	if !complete {
		v.Errors = append(v.Errors, fmt.Sprintf("rankings must be a permutation of 1..%d", len(rankings)))
		v.Valid = false
	}

	for i := range ci {
		for j := range ci {
			if ci[i] > ci[j] && rankings[i] >= rankings[j] {
				v.Errors = append(v.Errors, "rankings do not match Ci ordering")
				v.Valid = false
				break
			}
		}
		if !v.Valid {
			break
		}
	}

	for i := range dPlus {
		if dPlus[i] <= 0 || dMinus[i] <= 0 {
			v.Warnings = append(v.Warnings, "some distances to ideal solutions are zero")
			break
		}
	}

	if len(ci) > 1 {
		sorted := append([]float64(nil), ci...)
		sort.Float64s(sorted)
		minDiff := math.Inf(1)
		for i := 1; i < len(sorted); i++ {
			if d := sorted[i] - sorted[i-1]; d < minDiff {
				minDiff = d
			}
		}
		if minDiff < 0.05 {
			v.Warnings = append(v.Warnings, fmt.Sprintf("some Ci scores are very close (min difference %.4f)", minDiff))
		}
	}
	return v
}
