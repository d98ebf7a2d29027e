package configsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tetrad-labs/mcda/pkg/ahp"
	"github.com/tetrad-labs/mcda/pkg/fce"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMatrix(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "top.yaml", `matrix_id: top-level
dimension: 3
matrix:
  - [1, 2, 1]
  - [0.5, 1, 0.5]
  - [1, 2, 1]
`)

	matrix, id, err := LoadMatrix(path)
	if err != nil {
		t.Fatalf("LoadMatrix() error = %v", err)
	}
	if id != "top-level" {
		t.Errorf("id = %q, want %q", id, "top-level")
	}
	if matrix.Dim() != 3 || matrix[1][0] != 0.5 {
		t.Errorf("matrix = %v", matrix)
	}
}

func TestLoadMatrix_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data string
	}{
		{"missing id", "matrix:\n  - [1, 2]\n  - [0.5, 1]\n"},
		{"missing matrix", "matrix_id: m1\n"},
		{"ragged", "matrix_id: m1\nmatrix:\n  - [1, 2]\n  - [0.5]\n"},
		{"dimension mismatch", "matrix_id: m1\ndimension: 3\nmatrix:\n  - [1, 2]\n  - [0.5, 1]\n"},
		{"not yaml", "{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad-"+tt.name+".yaml", tt.data)
			if _, _, err := LoadMatrix(path); err == nil {
				t.Errorf("LoadMatrix() error = nil")
			}
		})
	}

	if _, _, err := LoadMatrix(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Errorf("LoadMatrix() error = nil for missing file")
	}
}

func TestLoadHierarchy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.yaml", `matrix_id: top
matrix:
  - [1, 2]
  - [0.5, 1]
`)
	writeFile(t, dir, "branch-a.yaml", `matrix_id: branch-a
matrix:
  - [1, 3]
  - [0.3333333333, 1]
`)
	path := writeFile(t, dir, "hierarchy.yaml", `top_matrix: top.yaml
branches:
  - id: CA
    matrix: branch-a.yaml
    leaf_ids: [CA_1, CA_2]
  - id: CB
    matrix: missing.yaml
    leaf_ids: [CB_1, CB_2]
`)

	top, branches, err := LoadHierarchy(path)
	if err != nil {
		t.Fatalf("LoadHierarchy() error = %v", err)
	}
	if top.Dim() != 2 {
		t.Errorf("top dim = %d, want 2", top.Dim())
	}
	if len(branches) != 2 {
		t.Fatalf("got %d branches, want 2", len(branches))
	}
	if branches[0].Matrix == nil {
		t.Errorf("branch CA matrix not loaded")
	}
	// An unloadable branch matrix stays nil so composition can drop just
	// that branch.
	if branches[1].Matrix != nil {
		t.Errorf("branch CB matrix = %v, want nil", branches[1].Matrix)
	}

	result, err := ahp.Compose(context.Background(), top, branches, ahp.DefaultSolveOptions())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if len(result.Errors) != 1 {
		t.Errorf("Errors = %v, want one entry for the unloadable branch", result.Errors)
	}
	if !ahp.CheckWeightSum(result.Global) {
		t.Errorf("surviving weights do not sum to 1.0")
	}
}

func TestLoadScale(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scale.yaml", `fuzzy_scale:
  worst: 0.25
  low: 0.50
  high: 0.75
  best: 1.00
`)

	scale, err := LoadScale(path)
	if err != nil {
		t.Fatalf("LoadScale() error = %v", err)
	}
	if scale[fce.TermHigh] != 0.75 {
		t.Errorf("scale[high] = %v, want 0.75", scale[fce.TermHigh])
	}

	incomplete := writeFile(t, dir, "incomplete.yaml", "fuzzy_scale:\n  worst: 0.25\n")
	if _, err := LoadScale(incomplete); err == nil {
		t.Errorf("LoadScale() error = nil for incomplete scale")
	}

	outOfRange := writeFile(t, dir, "range.yaml", `fuzzy_scale:
  worst: 0.25
  low: 0.50
  high: 0.75
  best: 1.5
`)
	if _, err := LoadScale(outOfRange); err == nil {
		t.Errorf("LoadScale() error = nil for out-of-range value")
	}
}

func TestLoadIndicatorSet(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "indicators.yaml", `indicators:
  - id: throughput
    name: Throughput
    type: benefit
    baseline: 100
  - id: latency
    name: Latency
    type: cost
    baseline: 50
  - id: usability
    name: Usability
    type: benefit
    baseline: 0.6
    qualitative: true
`)

	set, err := LoadIndicatorSet(path)
	if err != nil {
		t.Fatalf("LoadIndicatorSet() error = %v", err)
	}
	if len(set.Indicators) != 3 {
		t.Fatalf("got %d indicators, want 3", len(set.Indicators))
	}
	if !set.Indicators[2].Qualitative {
		t.Errorf("usability not marked qualitative")
	}

	bad := writeFile(t, dir, "bad.yaml", `indicators:
  - id: a
    type: sideways
  - id: b
    type: cost
`)
	if _, err := LoadIndicatorSet(bad); err == nil {
		t.Errorf("LoadIndicatorSet() error = nil for invalid type")
	}
}

func TestWatcher_CallbackOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "watched.yaml", "matrix_id: m1\n")

	changed := make(chan string, 4)
	w, err := NewWatcher([]string{path}, func(p string) { changed <- p }, DefaultWatcherOptions())
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.Start()
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("matrix_id: m2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changed:
		if got != path {
			t.Errorf("callback path = %q, want %q", got, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no callback within 3s of write")
	}
}
