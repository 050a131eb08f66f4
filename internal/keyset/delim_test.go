package keyset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelimSet_FieldEnd(t *testing.T) {
	d := NewDelimSet("|\t :")

	testCases := []struct {
		name  string
		input string
		want  int
	}{
		{"no delimiter", "abc", 3},
		{"pipe", "ab|c", 2},
		{"tab", "a\tbc", 1},
		{"leading delimiter", " abc", 0},
		{"nul always terminates", "ab\x00c", 2},
		{"empty", "", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, d.FieldEnd([]byte(tc.input)))
		})
	}
}

func TestDelimSet_SkipRun(t *testing.T) {
	d := NewDelimSet("| ")
	assert.Equal(t, 0, d.SkipRun([]byte("abc")))
	assert.Equal(t, 3, d.SkipRun([]byte("| |abc")))
	assert.Equal(t, 2, d.SkipRun([]byte("  ")))
}

func TestDelimSet_Contains(t *testing.T) {
	d := NewDelimSet("\x01\t ")
	assert.True(t, d.Contains('\x01'))
	assert.True(t, d.Contains('\t'))
	assert.True(t, d.Contains(' '))
	assert.True(t, d.Contains(0), "NUL is always a member")
	assert.False(t, d.Contains('a'))
}
