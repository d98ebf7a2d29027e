package ahp

import "fmt"

// StructuralError reports a judgment matrix that failed structural
// validation (shape, sign, diagonal or reciprocal property) or contained
// non-finite values.
type StructuralError struct {
	Reason string
	Report *ValidationReport
}

func (e *StructuralError) Error() string {
	if e.Report != nil && len(e.Report.Errors) > 0 {
		return fmt.Sprintf("invalid judgment matrix: %v", e.Report.Errors)
	}
	return fmt.Sprintf("invalid judgment matrix: %s", e.Reason)
}

// ConsistencyError reports a consistency ratio at or above the configured
// threshold. The derived weights are considered unreliable.
type ConsistencyError struct {
	CR        float64
	Threshold float64
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency ratio %.4f exceeds threshold %g", e.CR, e.Threshold)
}
