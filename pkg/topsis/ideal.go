package topsis

import "fmt"

// IndicatorType tags a column as benefit (higher is better) or cost (lower
// is better).
type IndicatorType string

const (
	// Benefit marks an indicator where larger values are preferable.
	Benefit IndicatorType = "benefit"
	// Cost marks an indicator where smaller values are preferable.
	Cost IndicatorType = "cost"
)

// IdealSolutions identifies the positive and negative ideal solutions of a
// weighted normalized matrix: per column, PIS takes the max and NIS the min
// for benefit indicators, swapped for cost indicators.
func IdealSolutions(weighted [][]float64, types []IndicatorType) (pis, nis []float64, err error) {
	rows, cols, err := shape(weighted)
	if err != nil {
		return nil, nil, err
	}
	if len(types) != cols {
		return nil, nil, &DataValidationError{Reason: fmt.Sprintf("indicator types length %d must match %d columns", len(types), cols)}
	}
	for _, t := range types {
		if t != Benefit && t != Cost {
			return nil, nil, &DataValidationError{Reason: fmt.Sprintf("invalid indicator type %q, must be %q or %q", t, Benefit, Cost)}
		}
	}

	pis = make([]float64, cols)
	nis = make([]float64, cols)
	for j := 0; j < cols; j++ {
		max, min := weighted[0][j], weighted[0][j]
		for i := 1; i < rows; i++ {
			v := weighted[i][j]
			if v > max {
				max = v
			}
			if v < min {
				min = v
			}
		}
		if types[j] == Benefit {
			pis[j], nis[j] = max, min
		} else {
			pis[j], nis[j] = min, max
		}
	}
	return pis, nis, nil
}
