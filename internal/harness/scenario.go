package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BioUbuntuLab/fastaselect/internal/engine"
	"github.com/BioUbuntuLab/fastaselect/internal/keyset"
)

// Scenario defines one end-to-end selection test case.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Archive is the inline FASTA input.
	Archive string `yaml:"archive"`

	// Selectors is the inline selection list, one name per line.
	Selectors string `yaml:"selectors"`

	// Options sets the policy flags for the run.
	Options ScenarioOptions `yaml:"options,omitempty"`

	// ExpectError names the error code the run must fail with. Empty
	// means the run must succeed and its output match the golden file.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// ScenarioOptions mirrors the policy surface of the engine.
type ScenarioOptions struct {
	Reject               bool `yaml:"reject,omitempty"`
	ContinueOnMiss       bool `yaml:"continue_on_miss,omitempty"`
	ContinueOnDuplicates bool `yaml:"continue_on_duplicates,omitempty"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Output holds the bytes written to the single output stream.
	Output []byte

	// Counters are the engine's pass counters.
	Counters engine.Result

	// Err is the error the run ended with, nil on success.
	Err error
}

// LoadScenario reads a scenario YAML file. Unknown keys are rejected.
func LoadScenario(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s has no name", path)
	}
	return &s, nil
}

// Run executes the scenario against in-memory inputs and outputs.
func Run(s *Scenario) *Result {
	res := &Result{}

	set, err := keyset.Build(strings.NewReader(s.Selectors), keyset.Options{
		LenientDups: s.Options.ContinueOnDuplicates,
	})
	if err != nil {
		res.Err = err
		return res
	}

	var out bytes.Buffer
	res.Counters, res.Err = engine.Run(set, strings.NewReader(s.Archive), &out, nil, engine.Options{
		Reject:         s.Options.Reject,
		ContinueOnMiss: s.Options.ContinueOnMiss,
	})
	res.Output = out.Bytes()
	return res
}

// ErrorCode classifies a run error for scenario matching. Engine errors
// report their own code; selection list construction errors get stable
// names of their own.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var re *engine.RunError
	if errors.As(err, &re) {
		return string(re.Code)
	}
	var dup *keyset.DuplicateError
	if errors.As(err, &dup) {
		return "DUPLICATE_SELECTOR"
	}
	return "ERROR"
}
