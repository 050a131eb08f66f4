package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig supplies defaults for the flag surface from a YAML file.
// Flags given on the command line always win over file values.
type FileConfig struct {
	In  string `yaml:"in"`
	Out string `yaml:"out"`
	Sel string `yaml:"sel"`

	// Fragment selects fan-out mode: "" (off), "new", or "append".
	Fragment string `yaml:"fragment"`

	Reject               bool `yaml:"reject"`
	ContinueOnMiss       bool `yaml:"continue_on_miss"`
	ContinueOnDuplicates bool `yaml:"continue_on_duplicates"`

	MaxLineWidth   int    `yaml:"max_line_width"`
	SelectorDelims string `yaml:"selector_delimiters"`
	HeaderDelims   string `yaml:"header_delimiters"`
}

// LoadConfig reads and validates a YAML config file. Unknown keys are
// rejected so a typo cannot silently fall back to a default.
func LoadConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	switch cfg.Fragment {
	case "", "new", "append":
	default:
		return cfg, fmt.Errorf("config %s: fragment must be \"new\", \"append\", or empty", path)
	}
	return cfg, nil
}
