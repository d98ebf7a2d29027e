// Package fce converts counts of linguistic ratings into numeric scores by
// fuzzy comprehensive evaluation: counts over a fixed four-term scale are
// normalized into a membership vector and defuzzified against the scale's
// numeric anchors.
package fce

import "fmt"

// Term is one grade on the fixed linguistic scale.
type Term string

// The four linguistic terms, ordered worst to best.
const (
	TermWorst Term = "worst"
	TermLow   Term = "low"
	TermHigh  Term = "high"
	TermBest  Term = "best"
)

// Terms returns the scale terms in their fixed worst-to-best order. The
// membership vector is index-aligned with this slice.
func Terms() []Term {
	return []Term{TermWorst, TermLow, TermHigh, TermBest}
}

// Scale maps each linguistic term to a numeric anchor in [0, 1].
type Scale map[Term]float64

// DefaultScale returns the standard evenly-spaced anchors.
func DefaultScale() Scale {
	return Scale{TermWorst: 0.25, TermLow: 0.50, TermHigh: 0.75, TermBest: 1.00}
}

// Validate checks that every term is present with a value in [0, 1].
func (s Scale) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("fuzzy scale cannot be empty")
	}
	for _, term := range Terms() {
		v, ok := s[term]
		if !ok {
			return fmt.Errorf("missing linguistic term %q in fuzzy scale", term)
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("fuzzy value for %q out of range [0,1]: %g", term, v)
		}
	}
	return nil
}

// Bounds returns the smallest and largest anchor values. A defuzzified score
// always falls inside these bounds.
func (s Scale) Bounds() (min, max float64) {
	first := true
	for _, term := range Terms() {
		v := s[term]
		if first {
			min, max = v, v
			first = false
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
