package keyset

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/BioUbuntuLab/fastaselect/internal/fio"
)

// Selector is one entry of the selection list: the record name to match,
// an optional destination group (fragment mode), and the zero-based
// position the entry held in the list. Order defines final emission
// order; Name defines sort and lookup order.
type Selector struct {
	Name  string
	Group string
	Order int
}

// Options configures selector list construction.
type Options struct {
	// Delimiters terminates the name field and, in fragment mode, the
	// group field. Defaults to DefaultSelectorDelimiters when unset.
	Delimiters *DelimSet

	// Fragment captures a second group field per line and requires it to
	// be non-empty for every retained selector.
	Fragment bool

	// LenientDups downgrades duplicate names in the list from a fatal
	// error to a warning; a single occurrence is retained.
	LenientDups bool

	// MaxLineWidth bounds selector file lines. Zero selects the default.
	MaxLineWidth int
}

// ErrNoSelectors is returned when the selector source yields no entries.
var ErrNoSelectors = errors.New("nothing was read from the selection list")

// DuplicateError reports a duplicate selector name under the strict
// duplicate policy.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate selector %q in selection list, alternate field delimiters may be needed", e.Name)
}

// MissingGroupError reports a selector without a group field in fragment
// mode.
type MissingGroupError struct {
	Name string
}

func (e *MissingGroupError) Error() string {
	return fmt.Sprintf("fragment output requested but selector %q has no group field", e.Name)
}

// parse reads one selector per line from r, in input order. Lines that
// are empty after delimiter stripping are skipped and do not consume an
// order slot.
func parse(r io.Reader, opts Options) ([]Selector, error) {
	delims := opts.Delimiters
	if delims == nil {
		d := NewDelimSet(DefaultSelectorDelimiters)
		delims = &d
	}

	var sels []Selector
	sc := fio.NewLineScanner(r, opts.MaxLineWidth)
	for sc.Scan() {
		line := sc.Bytes()
		end := delims.FieldEnd(line)
		if end == 0 {
			continue
		}
		sel := Selector{
			Name:  string(line[:end]),
			Order: len(sels),
		}
		if opts.Fragment && end < len(line) {
			rest := line[end+1:]
			rest = rest[delims.SkipRun(rest):]
			if n := delims.FieldEnd(rest); n > 0 {
				sel.Group = string(rest[:n])
			}
		}
		sels = append(sels, sel)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if sc.MissingTerminator() {
		slog.Warn("last line of selection list lacks a newline")
	}
	return sels, nil
}
