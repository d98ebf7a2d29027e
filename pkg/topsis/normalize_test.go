package topsis

import (
	"math"
	"testing"
)

func TestVectorNormalize_UnitColumnNorms(t *testing.T) {
	matrix := [][]float64{
		{1, 2, 3, 4},
		{2, 1.5, 2.5, 3.5},
		{1.5, 2.5, 2, 4.5},
		{3, 1, 3.5, 2},
	}

	out, err := VectorNormalize(matrix, AxisColumns)
	if err != nil {
		t.Fatalf("VectorNormalize() error = %v", err)
	}

	for j := range matrix[0] {
		var sq float64
		for i := range out {
			sq += out[i][j] * out[i][j]
		}
		if math.Abs(math.Sqrt(sq)-1.0) > 1e-10 {
			t.Errorf("column %d norm = %v, want 1.0", j, math.Sqrt(sq))
		}
	}

	// Input untouched.
	if matrix[0][0] != 1 {
		t.Errorf("input matrix was mutated")
	}
}

func TestVectorNormalize_RowAxis(t *testing.T) {
	matrix := [][]float64{{3, 4}, {6, 8}}
	out, err := VectorNormalize(matrix, AxisRows)
	if err != nil {
		t.Fatalf("VectorNormalize() error = %v", err)
	}
	for i := range out {
		var sq float64
		for _, v := range out[i] {
			sq += v * v
		}
		if math.Abs(math.Sqrt(sq)-1.0) > 1e-10 {
			t.Errorf("row %d norm = %v, want 1.0", i, math.Sqrt(sq))
		}
	}
	// Both rows point the same direction, so they normalize identically.
	if math.Abs(out[0][0]-out[1][0]) > 1e-12 {
		t.Errorf("parallel rows normalized differently: %v vs %v", out[0], out[1])
	}
}

func TestVectorNormalize_ZeroColumn(t *testing.T) {
	matrix := [][]float64{
		{0, 2},
		{0, 3},
	}
	out, err := VectorNormalize(matrix, AxisColumns)
	if err != nil {
		t.Fatalf("VectorNormalize() error = %v", err)
	}
	// Zero entries are substituted with a small epsilon, so an all-zero
	// column normalizes to equal shares instead of failing.
	want := 1.0 / math.Sqrt(2)
	for i := range out {
		if math.Abs(out[i][0]-want) > 1e-10 {
			t.Errorf("out[%d][0] = %v, want %v", i, out[i][0], want)
		}
	}
}

func TestVectorNormalize_Errors(t *testing.T) {
	if _, err := VectorNormalize(nil, AxisColumns); err == nil {
		t.Errorf("error = nil for empty matrix")
	}
	if _, err := VectorNormalize([][]float64{{1, 2}, {3}}, AxisColumns); err == nil {
		t.Errorf("error = nil for ragged matrix")
	}
	if _, err := VectorNormalize([][]float64{{1}}, Axis(9)); err == nil {
		t.Errorf("error = nil for invalid axis")
	}
}

func TestMinMaxNormalize(t *testing.T) {
	matrix := [][]float64{
		{10, 5},
		{20, 5},
		{30, 5},
	}
	out, err := MinMaxNormalize(matrix, AxisColumns)
	if err != nil {
		t.Fatalf("MinMaxNormalize() error = %v", err)
	}
	want := [][]float64{{0, 0.5}, {0.5, 0.5}, {1, 0.5}}
	for i := range want {
		for j := range want[i] {
			if math.Abs(out[i][j]-want[i][j]) > 1e-12 {
				t.Errorf("out[%d][%d] = %v, want %v", i, j, out[i][j], want[i][j])
			}
		}
	}
}

func TestZScoreNormalize(t *testing.T) {
	matrix := [][]float64{
		{1, 7},
		{2, 7},
		{3, 7},
	}
	out, err := ZScoreNormalize(matrix, AxisColumns)
	if err != nil {
		t.Fatalf("ZScoreNormalize() error = %v", err)
	}

	// First column standardizes to zero mean and unit variance.
	var mean float64
	for i := range out {
		mean += out[i][0]
	}
	mean /= float64(len(out))
	if math.Abs(mean) > 1e-12 {
		t.Errorf("standardized mean = %v, want 0", mean)
	}
	var variance float64
	for i := range out {
		variance += out[i][0] * out[i][0]
	}
	variance /= float64(len(out))
	if math.Abs(variance-1.0) > 1e-12 {
		t.Errorf("standardized variance = %v, want 1", variance)
	}

	// Constant columns map to 0.
	for i := range out {
		if out[i][1] != 0 {
			t.Errorf("out[%d][1] = %v, want 0 for constant column", i, out[i][1])
		}
	}
}

func TestIdealSolutions(t *testing.T) {
	weighted := [][]float64{
		{0.1, 0.4},
		{0.3, 0.2},
	}
	pis, nis, err := IdealSolutions(weighted, []IndicatorType{Benefit, Cost})
	if err != nil {
		t.Fatalf("IdealSolutions() error = %v", err)
	}
	if pis[0] != 0.3 || pis[1] != 0.2 {
		t.Errorf("PIS = %v, want [0.3 0.2]", pis)
	}
	if nis[0] != 0.1 || nis[1] != 0.4 {
		t.Errorf("NIS = %v, want [0.1 0.4]", nis)
	}

	if _, _, err := IdealSolutions(weighted, []IndicatorType{Benefit}); err == nil {
		t.Errorf("error = nil for mismatched type count")
	}
}
