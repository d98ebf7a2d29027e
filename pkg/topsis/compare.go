package topsis

import "fmt"

// AlternativeView is one alternative's slice of a ranking result.
type AlternativeView struct {
	Index  int     `json:"index"`
	Ci     float64 `json:"ci"`
	Rank   int     `json:"rank"`
	DPlus  float64 `json:"d_plus"`
	DMinus float64 `json:"d_minus"`
}

// Comparison is a head-to-head view of two ranked alternatives.
type Comparison struct {
	// Winner is 1 or 2 for a decisive comparison, 0 for an exact Ci tie.
	Winner int             `json:"winner"`
	First  AlternativeView `json:"first"`
	Second AlternativeView `json:"second"`
	CiDiff float64         `json:"ci_diff"`
	// RankDiff is second's rank minus first's; positive means first ranks
	// better.
	RankDiff int `json:"rank_diff"`
}

// Compare extracts a head-to-head comparison of two alternatives from a
// ranking result.
func Compare(result *Result, i, j int) (*Comparison, error) {
	if result == nil {
		return nil, fmt.Errorf("nil ranking result")
	}
	m := len(result.Ci)
	if i < 0 || i >= m || j < 0 || j >= m {
		return nil, fmt.Errorf("alternative index out of range [0,%d)", m)
	}

	view := func(k int) AlternativeView {
		return AlternativeView{
			Index:  k,
			Ci:     result.Ci[k],
			Rank:   result.Rankings[k],
			DPlus:  result.DPlus[k],
			DMinus: result.DMinus[k],
		}
	}

	c := &Comparison{
		First:    view(i),
		Second:   view(j),
		CiDiff:   result.Ci[i] - result.Ci[j],
		RankDiff: result.Rankings[j] - result.Rankings[i],
	}
	switch {
	case result.Ci[i] > result.Ci[j]:
		c.Winner = 1
	case result.Ci[j] > result.Ci[i]:
		c.Winner = 2
	}
	return c, nil
}
