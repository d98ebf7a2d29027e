// Package report renders evaluation results: a terminal ranking table, JSON
// export and Ci bar charts in SVG and PNG.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tetrad-labs/mcda/pkg/evaluate"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("246"))
	bestStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// RenderRanking formats a batch result as a terminal ranking table, best
// first.
func RenderRanking(batch *evaluate.BatchResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Evaluation Ranking"))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-4s %-24s %10s", "Rank", "Candidate", "Ci")))
	b.WriteString("\n")

	results := append([]evaluate.CandidateResult(nil), batch.Results...)
	sort.Slice(results, func(i, j int) bool { return results[i].Rank < results[j].Rank })

	for _, r := range results {
		line := fmt.Sprintf("%-4d %-24s %10.4f", r.Rank, r.CandidateID, r.Ci)
		if r.Rank == 1 {
			line = bestStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if v := batch.Ranking.Validation; len(v.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range v.Warnings {
			b.WriteString(warnStyle.Render("warning: " + w))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderEvaluation formats a single-candidate evaluation.
func RenderEvaluation(eval *evaluate.Evaluation) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Evaluation: " + eval.CandidateID))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Ci score:     %.4f\n", eval.Ci))
	b.WriteString(fmt.Sprintf("Baseline Ci:  %.4f\n", eval.BaselineCi))
	verdict := "worse than baseline"
	if eval.BetterThanBaseline {
		verdict = "better than baseline"
	}
	b.WriteString(fmt.Sprintf("Verdict:      %s\n", verdict))
	if !eval.Validation.Valid {
		b.WriteString(warnStyle.Render(fmt.Sprintf("self-check failed: %v", eval.Validation.Errors)))
		b.WriteString("\n")
	}
	return b.String()
}
