package fce

import (
	"fmt"
	"math"
)

// DefaultMembershipTolerance is the tolerance for the membership-sum check.
const DefaultMembershipTolerance = 0.001

// AssessmentCount maps linguistic terms to the number of assessors who
// chose each grade. Missing terms count as zero.
type AssessmentCount map[Term]int

// Total returns the number of assessments across all terms.
func (a AssessmentCount) Total() int {
	var total int
	for _, term := range Terms() {
		total += a[term]
	}
	return total
}

// MembershipError reports a membership vector whose sum deviates from 1.0
// beyond tolerance. With integer counts this cannot happen; it guards
// against misuse with pre-normalized non-integer inputs.
type MembershipError struct {
	Sum       float64
	Tolerance float64
}

func (e *MembershipError) Error() string {
	return fmt.Sprintf("membership degrees sum to %.6f, expected 1.0 ± %g", e.Sum, e.Tolerance)
}

// Options configures defuzzification.
type Options struct {
	// ValidateMembership enables the membership-sum check. Default: true
	ValidateMembership bool
	// Tolerance for the membership-sum check. Default: 0.001
	Tolerance float64
}

// DefaultOptions returns the standard evaluation configuration.
func DefaultOptions() Options {
	return Options{ValidateMembership: true, Tolerance: DefaultMembershipTolerance}
}

// Result holds a defuzzified assessment.
type Result struct {
	// Membership is the normalized count per term, aligned with Terms().
	// Sums to 1.0.
	Membership []float64 `json:"membership_vector"`
	// Score is the defuzzified value: the dot product of Membership and the
	// scale anchors. Bounded by the scale's min and max.
	Score float64 `json:"fuzzy_score"`
	// Total is the number of assessments.
	Total int `json:"total_count"`
	// Valid reports the membership-sum check.
	Valid bool `json:"valid"`
	// Distribution echoes the input counts per term.
	Distribution map[Term]int `json:"distribution"`
}

// Evaluate converts linguistic assessment counts into a numeric score. The
// counts are normalized by their total into a membership vector, which is
// defuzzified against the scale's anchors by weighted average.
func Evaluate(counts AssessmentCount, scale Scale, opts Options) (*Result, error) {
	if opts.Tolerance == 0 {
		opts.Tolerance = DefaultMembershipTolerance
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("assessment counts cannot be empty")
	}
	if len(scale) == 0 {
		return nil, fmt.Errorf("fuzzy scale cannot be empty")
	}

	terms := Terms()
	distribution := make(map[Term]int, len(terms))
	for _, term := range terms {
		count := counts[term]
		if count < 0 {
			return nil, fmt.Errorf("negative count for term %q: %d", term, count)
		}
		distribution[term] = count
	}

	total := counts.Total()
	if total == 0 {
		return nil, fmt.Errorf("total assessment count cannot be zero")
	}

	membership := make([]float64, len(terms))
	var score, sum float64
	for i, term := range terms {
		membership[i] = float64(distribution[term]) / float64(total)
		score += membership[i] * scale[term]
		sum += membership[i]
	}

	valid := math.Abs(sum-1.0) <= opts.Tolerance
	if opts.ValidateMembership && !valid {
		return nil, &MembershipError{Sum: sum, Tolerance: opts.Tolerance}
	}

	return &Result{
		Membership:   membership,
		Score:        score,
		Total:        total,
		Valid:        valid,
		Distribution: distribution,
	}, nil
}

// Aggregate sums assessments from multiple panels and evaluates the combined
// counts.
func Aggregate(panels []AssessmentCount, scale Scale, opts Options) (*Result, error) {
	if len(panels) == 0 {
		return nil, fmt.Errorf("no assessments to aggregate")
	}

	combined := make(AssessmentCount, 4)
	for _, panel := range panels {
		for _, term := range Terms() {
			count := panel[term]
			if count < 0 {
				return nil, fmt.Errorf("negative count for term %q: %d", term, count)
			}
			combined[term] += count
		}
	}
	return Evaluate(combined, scale, opts)
}

// Confidence summarizes how concentrated a membership vector is.
type Confidence struct {
	// Value is 1 minus the normalized entropy: 1.0 when all assessments
	// agree on one term, 0.0 when they are spread evenly.
	Value float64 `json:"confidence"`
	// Entropy is the Shannon entropy of the membership vector.
	Entropy float64 `json:"entropy"`
	// MostLikely is the term with the largest membership.
	MostLikely Term `json:"most_likely_term"`
	// MaxMembership is that term's membership degree.
	MaxMembership float64 `json:"max_membership"`
}

// AssessConfidence computes an entropy-based confidence metric for a
// membership vector aligned with Terms().
func AssessConfidence(membership []float64) (*Confidence, error) {
	terms := Terms()
	if len(membership) != len(terms) {
		return nil, fmt.Errorf("membership vector length %d, want %d", len(membership), len(terms))
	}

	var entropy float64
	best := 0
	for i, m := range membership {
		entropy -= m * math.Log(m+1e-10)
		if m > membership[best] {
			best = i
		}
	}
	maxEntropy := math.Log(float64(len(terms)))

	return &Confidence{
		Value:         1.0 - entropy/maxEntropy,
		Entropy:       entropy,
		MostLikely:    terms[best],
		MaxMembership: membership[best],
	}, nil
}
