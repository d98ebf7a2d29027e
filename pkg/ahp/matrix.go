package ahp

import (
	"fmt"
	"math"
)

// DefaultTolerance is the numerical tolerance used for structural checks on
// judgment matrices (unit diagonal, reciprocal property).
const DefaultTolerance = 1e-6

// JudgmentMatrix is a square matrix of pairwise comparisons. Entry [i][j]
// expresses how much more important criterion i is than criterion j; a valid
// matrix is positive, has a unit diagonal and satisfies the reciprocal
// property m[i][j]*m[j][i] == 1.
//
// Matrices are treated as immutable once validated; callers that need to
// modify one should work on a Clone.
type JudgmentMatrix [][]float64

// Clone returns a deep copy of the matrix.
func (m JudgmentMatrix) Clone() JudgmentMatrix {
	out := make(JudgmentMatrix, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}

// Dim returns the number of rows. It does not check squareness.
func (m JudgmentMatrix) Dim() int { return len(m) }

// ValidationReport is the structured result of judgment-matrix validation.
// Each field reports one structural property; IsValid is the conjunction.
type ValidationReport struct {
	IsSquare           bool     `json:"is_square"`
	PositiveElements   bool     `json:"positive_elements"`
	DiagonalOnes       bool     `json:"diagonal_ones"`
	ReciprocalProperty bool     `json:"reciprocal_property"`
	IsValid            bool     `json:"is_valid"`
	Errors             []string `json:"errors,omitempty"`
}

// ReciprocalOnly reports whether the reciprocal property is the only failed
// check. The solver forgives exactly this failure when consistency
// validation is disabled.
func (r ValidationReport) ReciprocalOnly() bool {
	return r.IsSquare && r.PositiveElements && r.DiagonalOnes && !r.ReciprocalProperty
}

// ValidateMatrix checks the structural properties of a judgment matrix:
// squareness, strictly positive entries, a unit diagonal and the reciprocal
// property, all within tolerance. It returns a report and never an error;
// callers decide whether a failed report is fatal.
func ValidateMatrix(m JudgmentMatrix, tolerance float64) ValidationReport {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	var report ValidationReport

	n := len(m)
	for _, row := range m {
		if len(row) != n {
			report.Errors = append(report.Errors, fmt.Sprintf("matrix must be square, row has %d columns for %d rows", len(row), n))
			return report
		}
	}
	report.IsSquare = true

	report.PositiveElements = true
	for i := range m {
		for j := range m[i] {
			if m[i][j] <= 0 {
				report.PositiveElements = false
			}
		}
	}
	if !report.PositiveElements {
		report.Errors = append(report.Errors, "all matrix elements must be positive")
	}

	report.DiagonalOnes = true
	for i := range m {
		if math.Abs(m[i][i]-1.0) > tolerance {
			report.DiagonalOnes = false
		}
	}
	if !report.DiagonalOnes {
		report.Errors = append(report.Errors, "diagonal elements must be 1.0")
	}

	report.ReciprocalProperty = true
	for i := range m {
		for j := range m[i] {
			if math.Abs(m[i][j]*m[j][i]-1.0) > tolerance {
				report.ReciprocalProperty = false
			}
		}
	}
	if !report.ReciprocalProperty {
		report.Errors = append(report.Errors, "matrix must satisfy reciprocal property m[i][j] = 1/m[j][i]")
	}

	report.IsValid = report.IsSquare && report.PositiveElements &&
		report.DiagonalOnes && report.ReciprocalProperty
	return report
}

// finite reports whether every entry of the matrix is a finite number.
func (m JudgmentMatrix) finite() bool {
	for i := range m {
		for j := range m[i] {
			if math.IsNaN(m[i][j]) || math.IsInf(m[i][j], 0) {
				return false
			}
		}
	}
	return true
}
