package ahp

import (
	"context"
	"fmt"
	"math"
)

// Branch pairs a top-level criterion with the judgment matrix and leaf
// identifiers of its second-level indicators. LeafIDs must be index-aligned
// with the matrix.
type Branch struct {
	// ID names the top-level criterion (e.g. "C3").
	ID string
	// LeafIDs name the second-level indicators (e.g. "C3_1", "C3_2", "C3_3").
	LeafIDs []string
	// Matrix is the branch's pairwise comparison matrix.
	Matrix JudgmentMatrix
}

// ComposeResult is the outcome of hierarchical weight composition.
type ComposeResult struct {
	// Global maps each leaf indicator to its renormalized global weight.
	// The values sum to 1.0 over the leaves of all successful branches.
	Global map[string]float64 `json:"global"`
	// TopWeights are the solved top-level weights, index-aligned with the
	// branch list.
	TopWeights []float64 `json:"top_weights"`
	// BranchWeights holds each successful branch's second-level weights.
	BranchWeights map[string][]float64 `json:"branch_weights"`
	// BranchReports holds each successful branch's consistency result.
	BranchReports map[string]*WeightResult `json:"branch_reports,omitempty"`
	// Errors records branches that failed to solve. Composition continues
	// without their leaves; callers must inspect this list.
	Errors []string `json:"errors,omitempty"`
}

// Compose combines one top-level weight vector with per-branch second-level
// weight vectors into a flat global weight map: each leaf weight is the
// product of its top-level weight and its second-level weight, and the full
// map is renormalized to sum 1.0.
//
// A branch that fails to solve is dropped and recorded in Errors; the
// remaining branches still compose. A top-level failure is fatal.
func Compose(ctx context.Context, top JudgmentMatrix, branches []Branch, opts SolveOptions) (*ComposeResult, error) {
	if len(branches) == 0 {
		return nil, fmt.Errorf("no branches to compose")
	}
	if top.Dim() != len(branches) {
		return nil, fmt.Errorf("top-level matrix dimension %d does not match %d branches", top.Dim(), len(branches))
	}

	topResult, err := Solve(ctx, top, opts)
	if err != nil {
		return nil, fmt.Errorf("top-level weight solve: %w", err)
	}

	result := &ComposeResult{
		Global:        make(map[string]float64),
		TopWeights:    topResult.Weights,
		BranchWeights: make(map[string][]float64),
		BranchReports: make(map[string]*WeightResult),
	}

	for i, branch := range branches {
		if len(branch.LeafIDs) != branch.Matrix.Dim() {
			result.Errors = append(result.Errors,
				fmt.Sprintf("branch %s: %d leaf ids for %dx%d matrix", branch.ID, len(branch.LeafIDs), branch.Matrix.Dim(), branch.Matrix.Dim()))
			continue
		}

		branchResult, err := Solve(ctx, branch.Matrix, opts)
		if err != nil {
			// Partial failure at branch granularity: drop this branch's
			// leaves and keep composing the rest.
			result.Errors = append(result.Errors, fmt.Sprintf("branch %s: %v", branch.ID, err))
			continue
		}

		result.BranchWeights[branch.ID] = branchResult.Weights
		result.BranchReports[branch.ID] = branchResult
		for j, leaf := range branch.LeafIDs {
			result.Global[leaf] = topResult.Weights[i] * branchResult.Weights[j]
		}
	}

	if len(result.Global) == 0 {
		return nil, fmt.Errorf("all branches failed to compose: %v", result.Errors)
	}

	var total float64
	for _, w := range result.Global {
		total += w
	}
	for leaf := range result.Global {
		result.Global[leaf] /= total
	}
	return result, nil
}

// CheckWeightSum reports whether the weight map sums to 1.0 within
// WeightSumTolerance.
func CheckWeightSum(weights map[string]float64) bool {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	return math.Abs(sum-1.0) <= WeightSumTolerance
}
