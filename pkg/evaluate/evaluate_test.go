package evaluate

import (
	"context"
	"testing"

	"github.com/tetrad-labs/mcda/pkg/audit"
	"github.com/tetrad-labs/mcda/pkg/fce"
	"github.com/tetrad-labs/mcda/pkg/scenario"
	"github.com/tetrad-labs/mcda/pkg/topsis"
)

func testSet() *IndicatorSet {
	return &IndicatorSet{Indicators: []Indicator{
		{ID: "throughput", Name: "Throughput", Type: topsis.Benefit, Baseline: 100},
		{ID: "latency", Name: "Latency", Type: topsis.Cost, Baseline: 50},
		{ID: "cost", Name: "Unit cost", Type: topsis.Cost, Baseline: 10},
		{ID: "usability", Name: "Usability", Type: topsis.Benefit, Baseline: 0.6, Qualitative: true},
	}}
}

func testWeights() map[string]float64 {
	return map[string]float64{
		"throughput": 0.4,
		"latency":    0.3,
		"cost":       0.2,
		"usability":  0.1,
	}
}

func TestSingle_BetterThanBaseline(t *testing.T) {
	cand := Candidate{
		ID:     "cand-1",
		Values: map[string]float64{"throughput": 200, "latency": 20, "cost": 5},
		Assessments: map[string]fce.AssessmentCount{
			"usability": {fce.TermHigh: 3, fce.TermBest: 2},
		},
	}

	eval, err := Single(context.Background(), cand, testSet(), testWeights(), DefaultOptions())
	if err != nil {
		t.Fatalf("Single() error = %v", err)
	}

	if !eval.BetterThanBaseline {
		t.Errorf("BetterThanBaseline = false for a candidate dominating the baseline")
	}
	if eval.Ci <= eval.BaselineCi {
		t.Errorf("Ci = %v not above BaselineCi = %v", eval.Ci, eval.BaselineCi)
	}
	if eval.Rank != 1 {
		t.Errorf("Rank = %d, want 1", eval.Rank)
	}
	// 3*0.75 + 2*1.00 over 5 assessments.
	if eval.Values["usability"] != 0.85 {
		t.Errorf("defuzzified usability = %v, want 0.85", eval.Values["usability"])
	}
}

func TestSingle_WorseThanBaseline(t *testing.T) {
	cand := Candidate{
		ID:     "cand-2",
		Values: map[string]float64{"throughput": 50, "latency": 100, "cost": 20},
		Assessments: map[string]fce.AssessmentCount{
			"usability": {fce.TermWorst: 4},
		},
	}

	eval, err := Single(context.Background(), cand, testSet(), testWeights(), DefaultOptions())
	if err != nil {
		t.Fatalf("Single() error = %v", err)
	}
	if eval.BetterThanBaseline {
		t.Errorf("BetterThanBaseline = true for a candidate dominated by the baseline")
	}
}

func TestSingle_MissingValue(t *testing.T) {
	cand := Candidate{
		ID:     "cand-3",
		Values: map[string]float64{"throughput": 120},
	}
	if _, err := Single(context.Background(), cand, testSet(), testWeights(), DefaultOptions()); err == nil {
		t.Fatalf("Single() error = nil for candidate missing indicator values")
	}
}

func TestSingle_RecordsAuditTrail(t *testing.T) {
	trail := audit.NewTrail()
	opts := DefaultOptions()
	opts.Recorder = trail

	cand := Candidate{
		ID:     "cand-4",
		Values: map[string]float64{"throughput": 150, "latency": 30, "cost": 8, "usability": 0.7},
	}
	if _, err := Single(context.Background(), cand, testSet(), testWeights(), opts); err != nil {
		t.Fatalf("Single() error = %v", err)
	}

	if trail.Len() == 0 {
		t.Fatalf("audit trail is empty")
	}
	stages := make(map[string]bool)
	for _, e := range trail.Entries() {
		stages[e.Stage] = true
	}
	for _, want := range []string{"indicator_values", "ranking"} {
		if !stages[want] {
			t.Errorf("audit trail missing stage %q, got %v", want, stages)
		}
	}
}

func TestSingle_ScenarioAdjustsWeights(t *testing.T) {
	profile := &scenario.Profile{
		ID:                "latency-critical",
		Type:              "emergency",
		WeightMultipliers: map[string]float64{"latency": 3},
	}
	opts := DefaultOptions()
	opts.Scenario = profile

	// Better throughput but much worse latency than the baseline.
	cand := Candidate{
		ID:     "cand-5",
		Values: map[string]float64{"throughput": 130, "latency": 200, "cost": 10, "usability": 0.6},
	}

	plain, err := Single(context.Background(), cand, testSet(), testWeights(), DefaultOptions())
	if err != nil {
		t.Fatalf("Single() error = %v", err)
	}
	weighted, err := Single(context.Background(), cand, testSet(), testWeights(), opts)
	if err != nil {
		t.Fatalf("Single() with scenario error = %v", err)
	}
	if weighted.Ci >= plain.Ci {
		t.Errorf("Ci = %v with tripled latency weight, want below %v", weighted.Ci, plain.Ci)
	}
}

func TestBatch_Ranking(t *testing.T) {
	cands := []Candidate{
		{ID: "weak", Values: map[string]float64{"throughput": 80, "latency": 90, "cost": 15, "usability": 0.3}},
		{ID: "strong", Values: map[string]float64{"throughput": 220, "latency": 15, "cost": 4, "usability": 0.9}},
		{ID: "middle", Values: map[string]float64{"throughput": 120, "latency": 45, "cost": 9, "usability": 0.6}},
	}

	batch, err := Batch(context.Background(), cands, testSet(), testWeights(), DefaultOptions())
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}

	if batch.Best != "strong" {
		t.Errorf("Best = %q, want %q", batch.Best, "strong")
	}
	if len(batch.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(batch.Results))
	}
	seen := make(map[int]bool)
	for _, r := range batch.Results {
		if r.Rank < 1 || r.Rank > 3 || seen[r.Rank] {
			t.Fatalf("ranks are not a permutation: %+v", batch.Results)
		}
		seen[r.Rank] = true
	}
}

func TestBatch_Deterministic(t *testing.T) {
	cands := []Candidate{
		{ID: "a", Values: map[string]float64{"throughput": 100, "latency": 50, "cost": 10, "usability": 0.5}},
		{ID: "b", Values: map[string]float64{"throughput": 140, "latency": 40, "cost": 12, "usability": 0.7}},
		{ID: "c", Values: map[string]float64{"throughput": 90, "latency": 70, "cost": 7, "usability": 0.4}},
		{ID: "d", Values: map[string]float64{"throughput": 160, "latency": 60, "cost": 14, "usability": 0.8}},
	}
	opts := DefaultOptions()
	opts.Parallelism = 2

	first, err := Batch(context.Background(), cands, testSet(), testWeights(), opts)
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}
	for run := 0; run < 5; run++ {
		again, err := Batch(context.Background(), cands, testSet(), testWeights(), opts)
		if err != nil {
			t.Fatalf("Batch() error = %v", err)
		}
		for i := range first.Results {
			if again.Results[i].Rank != first.Results[i].Rank || again.Results[i].Ci != first.Results[i].Ci {
				t.Fatalf("run %d: results differ from first run", run)
			}
		}
	}
}

func TestBatch_Errors(t *testing.T) {
	one := []Candidate{{ID: "only", Values: map[string]float64{"throughput": 1, "latency": 1, "cost": 1, "usability": 1}}}
	if _, err := Batch(context.Background(), one, testSet(), testWeights(), DefaultOptions()); err == nil {
		t.Errorf("Batch() error = nil for a single candidate")
	}

	dup := []Candidate{
		{ID: "x", Values: map[string]float64{"throughput": 1, "latency": 1, "cost": 1, "usability": 1}},
		{ID: "x", Values: map[string]float64{"throughput": 2, "latency": 2, "cost": 2, "usability": 2}},
	}
	if _, err := Batch(context.Background(), dup, testSet(), testWeights(), DefaultOptions()); err == nil {
		t.Errorf("Batch() error = nil for duplicate candidate ids")
	}
}

func TestIndicatorSet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		set     IndicatorSet
		wantErr bool
	}{
		{"valid", *testSet(), false},
		{"too few", IndicatorSet{Indicators: []Indicator{{ID: "a", Type: topsis.Benefit}}}, true},
		{"duplicate id", IndicatorSet{Indicators: []Indicator{
			{ID: "a", Type: topsis.Benefit}, {ID: "a", Type: topsis.Cost},
		}}, true},
		{"empty id", IndicatorSet{Indicators: []Indicator{
			{ID: "", Type: topsis.Benefit}, {ID: "b", Type: topsis.Cost},
		}}, true},
		{"bad type", IndicatorSet{Indicators: []Indicator{
			{ID: "a", Type: "maybe"}, {ID: "b", Type: topsis.Cost},
		}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.set.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIndicatorSet_WeightVector(t *testing.T) {
	set := testSet()
	vector, err := set.WeightVector(testWeights())
	if err != nil {
		t.Fatalf("WeightVector() error = %v", err)
	}
	if len(vector) != 4 || vector[0] != 0.4 || vector[3] != 0.1 {
		t.Errorf("WeightVector() = %v", vector)
	}

	if _, err := set.WeightVector(map[string]float64{"throughput": 1}); err == nil {
		t.Errorf("WeightVector() error = nil for missing weights")
	}
}
