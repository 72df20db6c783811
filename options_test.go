package locus

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.MergeTolerance != 3 {
		t.Errorf("MergeTolerance = %v, want 3", opts.MergeTolerance)
	}
	if opts.HighlightTTL != 6*time.Second {
		t.Errorf("HighlightTTL = %v, want 6s", opts.HighlightTTL)
	}
	if opts.ResultLimit != 30 {
		t.Errorf("ResultLimit = %d, want 30", opts.ResultLimit)
	}
	if opts.Threshold != 0.4 {
		t.Errorf("Threshold = %v, want 0.4", opts.Threshold)
	}
	if opts.Scale != 1.5 {
		t.Errorf("Scale = %v, want 1.5", opts.Scale)
	}
}

func TestLoadOptionsOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
merge_tolerance: 5
threshold: 0.2
`)
	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if opts.MergeTolerance != 5 {
		t.Errorf("MergeTolerance = %v, want 5", opts.MergeTolerance)
	}
	if opts.Threshold != 0.2 {
		t.Errorf("Threshold = %v, want 0.2", opts.Threshold)
	}
	// Keys absent from the file keep their defaults.
	if opts.ResultLimit != 30 {
		t.Errorf("ResultLimit = %d, want default 30", opts.ResultLimit)
	}
	if opts.HighlightTTL != 6*time.Second {
		t.Errorf("HighlightTTL = %v, want default 6s", opts.HighlightTTL)
	}
}

func TestLoadOptionsValidates(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"threshold above one", "threshold: 1.5"},
		{"negative threshold", "threshold: -0.1"},
		{"zero scale", "scale: 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadOptions(writeConfig(t, tt.yaml)); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}

func TestLoadOptionsMissingFile(t *testing.T) {
	if _, err := LoadOptions(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing config file accepted")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "locus.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
