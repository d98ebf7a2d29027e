// Package topsis ranks alternatives by relative closeness to an ideal point
// versus an anti-ideal point in normalized, weighted criterion space.
package topsis

import (
	"fmt"
	"math"
)

// Axis selects the direction of normalization.
type Axis int

const (
	// AxisColumns normalizes each indicator column. This is the standard
	// axis for decision matrices (alternatives × indicators).
	AxisColumns Axis = 0
	// AxisRows normalizes each alternative row.
	AxisRows Axis = 1
)

// normEpsilon substitutes near-zero entries before computing norms. Large
// enough to avoid division by zero, small enough not to perturb
// well-conditioned data.
const normEpsilon = 1e-12

// VectorNormalize applies Euclidean (vector) normalization along the given
// axis: each entry is divided by the L2 norm of its column (or row). Entries
// with magnitude below 1e-12 are replaced by 1e-12 before norms are taken.
// A residual zero norm is an error.
func VectorNormalize(matrix [][]float64, axis Axis) ([][]float64, error) {
	rows, cols, err := shape(matrix)
	if err != nil {
		return nil, err
	}

	work := cloneMatrix(matrix)
	for i := range work {
		for j := range work[i] {
			if math.Abs(work[i][j]) < normEpsilon {
				work[i][j] = normEpsilon
			}
		}
	}

	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}

	switch axis {
	case AxisColumns:
		for j := 0; j < cols; j++ {
			var sq float64
			for i := 0; i < rows; i++ {
				sq += work[i][j] * work[i][j]
			}
			norm := math.Sqrt(sq)
			if norm == 0 {
				return nil, fmt.Errorf("zero norm in column %d", j)
			}
			for i := 0; i < rows; i++ {
				out[i][j] = work[i][j] / norm
			}
		}
	case AxisRows:
		for i := 0; i < rows; i++ {
			var sq float64
			for j := 0; j < cols; j++ {
				sq += work[i][j] * work[i][j]
			}
			norm := math.Sqrt(sq)
			if norm == 0 {
				return nil, fmt.Errorf("zero norm in row %d", i)
			}
			for j := 0; j < cols; j++ {
				out[i][j] = work[i][j] / norm
			}
		}
	default:
		return nil, fmt.Errorf("invalid axis %d", axis)
	}
	return out, nil
}

// MinMaxNormalize rescales each column (or row) to [0, 1]. Constant columns
// map to the neutral value 0.5.
func MinMaxNormalize(matrix [][]float64, axis Axis) ([][]float64, error) {
	rows, cols, err := shape(matrix)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}

	normalizeSpan := func(get func(k int) float64, set func(k int, v float64), n int) {
		min, max := get(0), get(0)
		for k := 1; k < n; k++ {
			v := get(k)
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		span := max - min
		for k := 0; k < n; k++ {
			if span == 0 {
				set(k, 0.5)
				continue
			}
			set(k, (get(k)-min)/span)
		}
	}

	switch axis {
	case AxisColumns:
		for j := 0; j < cols; j++ {
			j := j
			normalizeSpan(
				func(i int) float64 { return matrix[i][j] },
				func(i int, v float64) { out[i][j] = v },
				rows)
		}
	case AxisRows:
		for i := 0; i < rows; i++ {
			i := i
			normalizeSpan(
				func(j int) float64 { return matrix[i][j] },
				func(j int, v float64) { out[i][j] = v },
				cols)
		}
	default:
		return nil, fmt.Errorf("invalid axis %d", axis)
	}
	return out, nil
}

// ZScoreNormalize standardizes each column (or row) to zero mean and unit
// variance. Constant spans map to 0.
func ZScoreNormalize(matrix [][]float64, axis Axis) ([][]float64, error) {
	rows, cols, err := shape(matrix)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}

	standardize := func(get func(k int) float64, set func(k int, v float64), n int) {
		var mean float64
		for k := 0; k < n; k++ {
			mean += get(k)
		}
		mean /= float64(n)
		var variance float64
		for k := 0; k < n; k++ {
			d := get(k) - mean
			variance += d * d
		}
		std := math.Sqrt(variance / float64(n))
		for k := 0; k < n; k++ {
			if std == 0 {
				set(k, 0)
				continue
			}
			set(k, (get(k)-mean)/std)
		}
	}

	switch axis {
	case AxisColumns:
		for j := 0; j < cols; j++ {
			j := j
			standardize(
				func(i int) float64 { return matrix[i][j] },
				func(i int, v float64) { out[i][j] = v },
				rows)
		}
	case AxisRows:
		for i := 0; i < rows; i++ {
			i := i
			standardize(
				func(j int) float64 { return matrix[i][j] },
				func(j int, v float64) { out[i][j] = v },
				cols)
		}
	default:
		return nil, fmt.Errorf("invalid axis %d", axis)
	}
	return out, nil
}

// shape validates that the matrix is rectangular with at least one row and
// column and returns its dimensions.
func shape(matrix [][]float64) (rows, cols int, err error) {
	rows = len(matrix)
	if rows == 0 {
		return 0, 0, fmt.Errorf("matrix cannot be empty")
	}
	cols = len(matrix[0])
	if cols == 0 {
		return 0, 0, fmt.Errorf("matrix cannot have empty rows")
	}
	for i, row := range matrix {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("ragged matrix: row %d has %d columns, want %d", i, len(row), cols)
		}
	}
	return rows, cols, nil
}

func cloneMatrix(matrix [][]float64) [][]float64 {
	out := make([][]float64, len(matrix))
	for i, row := range matrix {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}
