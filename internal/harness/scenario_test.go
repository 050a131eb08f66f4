package harness

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BioUbuntuLab/fastaselect/internal/engine"
	"github.com/BioUbuntuLab/fastaselect/internal/keyset"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
name: sample
description: a sample
archive: |
  >a
  AAAA
selectors: |
  a
options:
  reject: true
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", s.Name)
	assert.Equal(t, ">a\nAAAA\n", s.Archive)
	assert.Equal(t, "a\n", s.Selectors)
	assert.True(t, s.Options.Reject)
	assert.Empty(t, s.ExpectError)
}

func TestLoadScenario_UnknownKeyRejected(t *testing.T) {
	path := writeScenario(t, "name: sample\narchiv: typo\n")
	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenario_NameRequired(t *testing.T) {
	path := writeScenario(t, "description: nameless\n")
	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestRun_Counters(t *testing.T) {
	res := Run(&Scenario{
		Name:      "counters",
		Archive:   ">a\nAAAA\n>b\nCCCC\n>c\nGGGG\n",
		Selectors: "c\na\n",
	})
	require.NoError(t, res.Err)
	assert.Equal(t, 2, res.Counters.Selectors)
	assert.Equal(t, uint64(3), res.Counters.Records)
	assert.Equal(t, uint64(2), res.Counters.Emitted)
	assert.Equal(t, ">c\nGGGG\n>a\nAAAA\n", string(res.Output))
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"engine error", engine.NewMissingSelectorsError([]string{"q"}), "MISSING_SELECTORS"},
		{"duplicate selector", &keyset.DuplicateError{Name: "a"}, "DUPLICATE_SELECTOR"},
		{"anything else", errors.New("boom"), "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}
