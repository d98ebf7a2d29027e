// Package fitness is the optimizer boundary: it adapts the evaluation
// pipeline into a fitness function a metaheuristic search loop can call
// without ever aborting on a bad candidate. The search mechanics themselves
// live outside this module.
package fitness

import (
	"context"
	"fmt"
	"log"

	"github.com/tetrad-labs/mcda/pkg/evaluate"
)

// Floor is the fitness substituted when the pipeline rejects a candidate:
// very low, but finite and positive so selection pressure still works.
const Floor = 1e-6

// Func scores one candidate in [0, 1]. It never returns an error; invalid
// candidates score Floor.
type Func func(ctx context.Context, cand evaluate.Candidate) float64

// Options configures the fitness adapter.
type Options struct {
	// Pipeline configures the underlying evaluation.
	Pipeline evaluate.Options
	// Logger receives a message when a candidate is floored. Default:
	// stdlib log
	Logger func(msg string)
}

// New builds a fitness function over an indicator set and already-solved
// global weights. Each call evaluates one candidate against the baseline and
// returns its Ci score; any pipeline error converts to Floor.
func New(set *evaluate.IndicatorSet, weights map[string]float64, opts Options) (Func, error) {
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("indicator set: %w", err)
	}
	if _, err := set.WeightVector(weights); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = func(msg string) { log.Print(msg) }
	}

	return func(ctx context.Context, cand evaluate.Candidate) float64 {
		eval, err := evaluate.Single(ctx, cand, set, weights, opts.Pipeline)
		if err != nil {
			logger(fmt.Sprintf("fitness: candidate %s floored: %v", cand.ID, err))
			return Floor
		}
		return eval.Ci
	}, nil
}
