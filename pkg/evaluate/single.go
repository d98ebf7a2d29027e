package evaluate

import (
	"context"
	"fmt"
	"time"

	"github.com/tetrad-labs/mcda/pkg/fce"
	"github.com/tetrad-labs/mcda/pkg/scenario"
	"github.com/tetrad-labs/mcda/pkg/topsis"
)

// Candidate is one alternative to score: quantitative values and linguistic
// assessments keyed by indicator ID.
type Candidate struct {
	ID string `json:"id"`
	// Values holds measured indicator values.
	Values map[string]float64 `json:"values"`
	// Assessments holds linguistic rating counts for qualitative
	// indicators; they are defuzzified and override any measured value.
	Assessments map[string]fce.AssessmentCount `json:"assessments,omitempty"`
}

// Recorder is the audit collaborator the pipeline calls at each stage. The
// pipeline only calls it; implementations live with the caller.
type Recorder interface {
	Record(stage string, input, output map[string]any)
}

type nopRecorder struct{}

func (nopRecorder) Record(string, map[string]any, map[string]any) {}

// Options configures the evaluation pipeline.
type Options struct {
	// Scale is the fuzzy scale for qualitative indicators.
	// Default: fce.DefaultScale()
	Scale fce.Scale
	// Scenario optionally adjusts values and weights before ranking.
	Scenario *scenario.Profile
	// Recorder receives an audit entry per pipeline stage. Default: discard
	Recorder Recorder
	// FCE configures defuzzification.
	FCE fce.Options
	// Rank configures the ranking call.
	Rank topsis.Options
	// Parallelism bounds concurrent row building in Batch. Zero means one
	// goroutine per candidate.
	Parallelism int
}

// DefaultOptions returns the standard pipeline configuration.
func DefaultOptions() Options {
	return Options{
		Scale:    fce.DefaultScale(),
		Recorder: nopRecorder{},
		FCE:      fce.DefaultOptions(),
		Rank:     topsis.DefaultOptions(),
	}
}

// Evaluation is the outcome of scoring one candidate against the baseline.
type Evaluation struct {
	CandidateID string `json:"candidate_id"`
	// Ci is the candidate's relative closeness score in [0, 1].
	Ci float64 `json:"ci"`
	// Rank is always 1 for a single-candidate evaluation; the baseline
	// comparison lives in BaselineCi and BetterThanBaseline.
	Rank       int     `json:"rank"`
	BaselineCi float64 `json:"baseline_ci"`
	// BetterThanBaseline is true when the candidate out-ranked the baseline
	// row.
	BetterThanBaseline bool `json:"better_than_baseline"`
	// Values are the merged (quantitative + defuzzified) indicator values
	// keyed by indicator ID, after any scenario adjustment.
	Values map[string]float64 `json:"values"`
	// Normalized and Weighted are the candidate's rows of the intermediate
	// matrices.
	Normalized []float64 `json:"normalized"`
	Weighted   []float64 `json:"weighted"`
	// Validation is the ranking self-check.
	Validation topsis.ResultValidation `json:"validation"`
	// EvaluatedAt stamps the evaluation.
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// Single scores one candidate against the indicator set's baseline row: the
// candidate's merged values and the baseline form a two-row decision matrix
// for one ranking call. The reported rank is pinned to 1; the baseline
// comparison is carried in the result instead.
func Single(ctx context.Context, cand Candidate, set *IndicatorSet, weights map[string]float64, opts Options) (*Evaluation, error) {
	opts = withDefaults(opts)
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("indicator set: %w", err)
	}

	values, err := buildValues(cand, set, opts)
	if err != nil {
		return nil, err
	}

	adjustedWeights := weights
	baseline := set.BaselineRow()
	if opts.Scenario != nil {
		adjustedWeights = opts.Scenario.ApplyWeights(weights)
		baselineMap := make(map[string]float64, len(set.Indicators))
		for i, ind := range set.Indicators {
			baselineMap[ind.ID] = baseline[i]
		}
		baselineMap = opts.Scenario.ApplyValues(baselineMap)
		for i, ind := range set.Indicators {
			baseline[i] = baselineMap[ind.ID]
		}
		opts.Recorder.Record("scenario_adjustment",
			map[string]any{"scenario": opts.Scenario.ID},
			map[string]any{"weights": adjustedWeights})
	}

	weightVector, err := set.WeightVector(adjustedWeights)
	if err != nil {
		return nil, err
	}

	row := make([]float64, len(set.Indicators))
	for i, ind := range set.Indicators {
		row[i] = values[ind.ID]
	}

	matrix := [][]float64{baseline, row}
	result, err := topsis.Rank(matrix, weightVector, set.Types(), opts.Rank)
	if err != nil {
		return nil, fmt.Errorf("rank candidate %s: %w", cand.ID, err)
	}

	opts.Recorder.Record("ranking",
		map[string]any{"candidate": cand.ID, "indicators": len(set.Indicators)},
		map[string]any{"ci": result.Ci[1], "baseline_ci": result.Ci[0]})

	return &Evaluation{
		CandidateID:        cand.ID,
		Ci:                 result.Ci[1],
		Rank:               1,
		BaselineCi:         result.Ci[0],
		BetterThanBaseline: result.Rankings[1] == 1,
		Values:             values,
		Normalized:         result.Normalized[1],
		Weighted:           result.Weighted[1],
		Validation:         result.Validation,
		EvaluatedAt:        time.Now().UTC(),
	}, nil
}

// buildValues merges a candidate's quantitative values with defuzzified
// qualitative assessments and applies any scenario value multipliers.
func buildValues(cand Candidate, set *IndicatorSet, opts Options) (map[string]float64, error) {
	values := make(map[string]float64, len(set.Indicators))
	for _, ind := range set.Indicators {
		if counts, ok := cand.Assessments[ind.ID]; ok && ind.Qualitative {
			result, err := fce.Evaluate(counts, opts.Scale, opts.FCE)
			if err != nil {
				return nil, fmt.Errorf("defuzzify %s for candidate %s: %w", ind.ID, cand.ID, err)
			}
			values[ind.ID] = result.Score
			continue
		}
		v, ok := cand.Values[ind.ID]
		if !ok {
			return nil, fmt.Errorf("candidate %s missing value for indicator %s", cand.ID, ind.ID)
		}
		values[ind.ID] = v
	}

	if opts.Scenario != nil {
		values = opts.Scenario.ApplyValues(values)
	}

	opts.Recorder.Record("indicator_values",
		map[string]any{"candidate": cand.ID},
		map[string]any{"values": values})
	return values, nil
}

func withDefaults(opts Options) Options {
	if opts.Scale == nil {
		opts.Scale = fce.DefaultScale()
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	return opts
}
