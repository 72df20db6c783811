package locus

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Options holds the session's tunable heuristics.
type Options struct {
	// MergeTolerance is the same-row vertical distance in document units used
	// by line reconstruction.
	MergeTolerance float64 `yaml:"merge_tolerance"`

	// HighlightTTL is how long a highlight stays up unless superseded.
	HighlightTTL time.Duration `yaml:"highlight_ttl"`

	// ResultLimit caps how many matches a search hands to the presentation
	// layer. The reported total is never capped.
	ResultLimit int `yaml:"result_limit"`

	// Threshold is the default fuzzy match threshold in [0, 1]; lower is
	// stricter.
	Threshold float64 `yaml:"threshold"`

	// Scale is the render scale applied when materializing pages.
	Scale float64 `yaml:"scale"`
}

// DefaultOptions returns the standard tunables.
func DefaultOptions() Options {
	return Options{
		MergeTolerance: 3,
		HighlightTTL:   6 * time.Second,
		ResultLimit:    30,
		Threshold:      0.4,
		Scale:          1.5,
	}
}

// LoadOptions reads YAML overrides from path on top of the defaults. Fields
// absent from the file keep their default values.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read options %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse options %s: %w", path, err)
	}
	if err := opts.validate(); err != nil {
		return opts, fmt.Errorf("options %s: %w", path, err)
	}
	return opts, nil
}

func (o Options) validate() error {
	if o.Threshold < 0 || o.Threshold > 1 {
		return fmt.Errorf("threshold %v outside [0, 1]", o.Threshold)
	}
	if o.Scale <= 0 {
		return fmt.Errorf("scale %v must be positive", o.Scale)
	}
	return nil
}
