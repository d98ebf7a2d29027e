package ahp

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// WeightSumTolerance is the tolerance applied when checking that a weight
// vector sums to 1.0.
const WeightSumTolerance = 1e-6

// randomIndex holds Saaty's Random Index values for n = 1..10. Larger
// matrices fall back to randomIndexDefault; that flat default is a known
// approximation kept for behavioral parity with earlier releases.
var randomIndex = [...]float64{0, 0.00, 0.00, 0.58, 0.90, 1.12, 1.24, 1.32, 1.41, 1.45, 1.49}

const randomIndexDefault = 1.59

// RandomIndex returns the Random Index for an n-dimensional matrix.
func RandomIndex(n int) float64 {
	if n >= 1 && n < len(randomIndex) {
		return randomIndex[n]
	}
	return randomIndexDefault
}

// SolveOptions configures weight derivation.
type SolveOptions struct {
	// ValidateConsistency rejects matrices whose consistency ratio is at or
	// above CRThreshold. When false, a reciprocal-property violation is also
	// tolerated; every other structural failure still rejects.
	// Default: true
	ValidateConsistency bool
	// CRThreshold is the maximum acceptable consistency ratio.
	// Default: 0.1
	CRThreshold float64
	// Tolerance is the numerical tolerance for structural checks.
	// Default: 1e-6
	Tolerance float64
	// MaxDim caps the matrix dimension. Eigen-decomposition is O(n³) and the
	// matrix may come from external configuration, so an upper fence keeps a
	// malformed input from monopolizing the process. Default: 64
	MaxDim int
	// Logger receives diagnostic messages. Default: discard
	Logger func(msg string)
}

// DefaultSolveOptions returns the standard solver configuration.
func DefaultSolveOptions() SolveOptions {
	return SolveOptions{
		ValidateConsistency: true,
		CRThreshold:         0.1,
		Tolerance:           DefaultTolerance,
		MaxDim:              64,
		Logger:              func(string) {},
	}
}

// WeightResult holds the derived weight vector and its consistency report.
type WeightResult struct {
	// Weights is the normalized principal eigenvector; non-negative,
	// index-aligned with the matrix, summing to 1.0.
	Weights []float64 `json:"weights"`
	// LambdaMax is the eigenvalue of largest real part.
	LambdaMax float64 `json:"lambda_max"`
	// CI is the consistency index (lambda_max - n) / (n - 1).
	CI float64 `json:"ci"`
	// CR is the consistency ratio CI / RI(n).
	CR float64 `json:"cr"`
	// RI is the Random Index used for CR.
	RI float64 `json:"ri"`
	// Valid is true when CR is below the configured threshold.
	Valid bool `json:"valid"`
	// Validation is the structural report for the input matrix.
	Validation ValidationReport `json:"validation"`
}

// Solve derives a normalized weight vector from a judgment matrix using the
// eigenvalue method: the eigenvector of the eigenvalue with largest real
// part, taken by absolute value and renormalized to sum 1.0.
//
// Structural failures return *StructuralError and a consistency ratio at or
// above the threshold returns *ConsistencyError (when consistency validation
// is enabled). The context bounds the factorization; a cancelled or expired
// context aborts with its error.
func Solve(ctx context.Context, m JudgmentMatrix, opts SolveOptions) (*WeightResult, error) {
	if opts.CRThreshold == 0 {
		opts.CRThreshold = 0.1
	}
	if opts.Tolerance == 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.MaxDim == 0 {
		opts.MaxDim = 64
	}
	if opts.Logger == nil {
		opts.Logger = func(string) {}
	}

	n := m.Dim()
	if n == 0 {
		return nil, &StructuralError{Reason: "empty matrix"}
	}
	if n > opts.MaxDim {
		return nil, &StructuralError{Reason: fmt.Sprintf("matrix dimension %d exceeds limit %d", n, opts.MaxDim)}
	}
	if !m.finite() {
		return nil, &StructuralError{Reason: "matrix contains non-finite values"}
	}

	validation := ValidateMatrix(m, opts.Tolerance)
	if !validation.IsValid {
		if !opts.ValidateConsistency && validation.ReciprocalOnly() {
			// Reciprocal violations alone are forgiven when consistency
			// validation is off. All other structural failures still reject.
			opts.Logger(fmt.Sprintf("tolerating reciprocal-property violation (consistency validation disabled): %v", validation.Errors))
		} else {
			return nil, &StructuralError{Report: &validation}
		}
	}

	lambdaMax, vector, err := principalEigen(ctx, m)
	if err != nil {
		return nil, err
	}

	// The eigenvector sign is arbitrary; take magnitudes before normalizing.
	var sum float64
	for i, v := range vector {
		vector[i] = math.Abs(v)
		sum += vector[i]
	}
	if sum == 0 {
		return nil, &StructuralError{Reason: "degenerate principal eigenvector"}
	}
	for i := range vector {
		vector[i] /= sum
	}

	var ci, cr float64
	ri := RandomIndex(n)
	if n > 1 {
		ci = (lambdaMax - float64(n)) / float64(n-1)
		if ri > 0 {
			cr = ci / ri
		}
	}

	result := &WeightResult{
		Weights:    vector,
		LambdaMax:  lambdaMax,
		CI:         ci,
		CR:         cr,
		RI:         ri,
		Valid:      true,
		Validation: validation,
	}

	if opts.ValidateConsistency && cr >= opts.CRThreshold {
		result.Valid = false
		return nil, &ConsistencyError{CR: cr, Threshold: opts.CRThreshold}
	}
	return result, nil
}

// principalEigen computes the eigenvalue of largest real part and its
// eigenvector (real parts). The factorization runs on its own goroutine so
// the caller's context can bound the O(n³) cost.
func principalEigen(ctx context.Context, m JudgmentMatrix) (float64, []float64, error) {
	n := m.Dim()
	data := make([]float64, 0, n*n)
	for i := range m {
		data = append(data, m[i]...)
	}
	dense := mat.NewDense(n, n, data)

	type eigenOut struct {
		lambda float64
		vector []float64
		err    error
	}
	ch := make(chan eigenOut, 1)

	go func() {
		var eig mat.Eigen
		if ok := eig.Factorize(dense, mat.EigenRight); !ok {
			ch <- eigenOut{err: &StructuralError{Reason: "eigen factorization failed"}}
			return
		}

		values := eig.Values(nil)
		best := 0
		for i := range values {
			if real(values[i]) > real(values[best]) {
				best = i
			}
		}

		var vectors mat.CDense
		eig.VectorsTo(&vectors)
		vector := make([]float64, n)
		for i := 0; i < n; i++ {
			vector[i] = real(vectors.At(i, best))
		}
		ch <- eigenOut{lambda: real(values[best]), vector: vector}
	}()

	select {
	case out := <-ch:
		return out.lambda, out.vector, out.err
	case <-ctx.Done():
		return 0, nil, ctx.Err()
	}
}
