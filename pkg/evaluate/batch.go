package evaluate

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tetrad-labs/mcda/pkg/topsis"
)

// CandidateResult is one candidate's slice of a batch evaluation.
type CandidateResult struct {
	CandidateID string             `json:"candidate_id"`
	Ci          float64            `json:"ci"`
	Rank        int                `json:"rank"`
	Values      map[string]float64 `json:"values"`
	Normalized  []float64          `json:"normalized"`
	Weighted    []float64          `json:"weighted"`
}

// BatchResult holds a full batch evaluation with rankings across all
// candidates.
type BatchResult struct {
	Results []CandidateResult `json:"results"`
	// Best is the candidate holding rank 1.
	Best string `json:"best"`
	// Matrix is the assembled decision matrix (candidates × indicators).
	Matrix [][]float64 `json:"decision_matrix"`
	// Ranking is the underlying ranking result for the whole batch.
	Ranking *topsis.Result `json:"ranking"`
	// EvaluatedAt stamps the evaluation.
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// Batch scores a set of candidates against each other. Row building (value
// merge, defuzzification, scenario adjustment) runs per candidate and is
// parallelized; the ranking itself is one global call over the whole
// decision matrix — PIS/NIS and the distances are only meaningful across the
// full batch, so it is never sharded.
func Batch(ctx context.Context, cands []Candidate, set *IndicatorSet, weights map[string]float64, opts Options) (*BatchResult, error) {
	opts = withDefaults(opts)
	if len(cands) < 2 {
		return nil, fmt.Errorf("need at least 2 candidates for batch evaluation, got %d", len(cands))
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("indicator set: %w", err)
	}
	seen := make(map[string]bool, len(cands))
	for _, c := range cands {
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate candidate id %q", c.ID)
		}
		seen[c.ID] = true
	}

	adjustedWeights := weights
	if opts.Scenario != nil {
		adjustedWeights = opts.Scenario.ApplyWeights(weights)
	}
	weightVector, err := set.WeightVector(adjustedWeights)
	if err != nil {
		return nil, err
	}

	order := set.Order()
	matrix := make([][]float64, len(cands))
	valuesByCand := make([]map[string]float64, len(cands))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Parallelism > 0 {
		g.SetLimit(opts.Parallelism)
	}
	for i, cand := range cands {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			values, err := buildValues(cand, set, opts)
			if err != nil {
				return err
			}
			row := make([]float64, len(order))
			for j, id := range order {
				row[j] = values[id]
			}
			matrix[i] = row
			valuesByCand[i] = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranking, err := topsis.Rank(matrix, weightVector, set.Types(), opts.Rank)
	if err != nil {
		return nil, fmt.Errorf("rank batch: %w", err)
	}

	batch := &BatchResult{
		Matrix:      matrix,
		Ranking:     ranking,
		EvaluatedAt: time.Now().UTC(),
	}
	for i, cand := range cands {
		batch.Results = append(batch.Results, CandidateResult{
			CandidateID: cand.ID,
			Ci:          ranking.Ci[i],
			Rank:        ranking.Rankings[i],
			Values:      valuesByCand[i],
			Normalized:  ranking.Normalized[i],
			Weighted:    ranking.Weighted[i],
		})
		if ranking.Rankings[i] == 1 {
			batch.Best = cand.ID
		}
	}

	opts.Recorder.Record("batch_ranking",
		map[string]any{"candidates": len(cands), "indicators": len(order)},
		map[string]any{"best": batch.Best, "ci": ranking.Ci})
	return batch, nil
}
