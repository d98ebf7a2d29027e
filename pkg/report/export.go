package report

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// ExportJSON writes any result type (Evaluation, BatchResult, WeightResult)
// as indented JSON.
func ExportJSON(w io.Writer, result any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("export result: %w", err)
	}
	return nil
}
