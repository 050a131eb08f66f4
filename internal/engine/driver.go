package engine

import (
	"errors"
	"io"
	"log/slog"

	"github.com/BioUbuntuLab/fastaselect/internal/fio"
	"github.com/BioUbuntuLab/fastaselect/internal/fragment"
	"github.com/BioUbuntuLab/fastaselect/internal/keyset"
	"github.com/BioUbuntuLab/fastaselect/internal/reorder"
)

// HeaderMarker starts every archive record header line.
const HeaderMarker = '>'

// DefaultHeaderDelimiters is the default terminator set for the record
// identifier in a header line: control-A, tab, and space.
const DefaultHeaderDelimiters = "\x01\t "

var newline = []byte{'\n'}

// Options configures a stream driver pass.
type Options struct {
	// Reject inverts the selection predicate: output is the complement of
	// the selection set, in archive order, written through unbuffered.
	Reject bool

	// FragmentMode enables fan-out across per-group destinations.
	FragmentMode fragment.Mode

	// ContinueOnMiss downgrades unmatched selectors after the pass from a
	// fatal error to per-selector warnings.
	ContinueOnMiss bool

	// MaxLineWidth bounds archive lines. Zero selects the default.
	MaxLineWidth int

	// HeaderDelims terminates the record identifier in header lines.
	// Defaults to DefaultHeaderDelimiters when nil.
	HeaderDelims *keyset.DelimSet
}

// Result summarizes a completed pass for the final status line.
type Result struct {
	Selectors int
	Records   uint64
	Emitted   uint64
}

// Run makes one forward pass over archive, emitting selected records to
// out (or, in fragment mode, to destinations opened through router) in
// selection-list order. It returns the pass counters and the first fatal
// condition encountered.
func Run(set *keyset.Set, archive io.Reader, out io.Writer, router *fragment.Router, opts Options) (Result, error) {
	res := Result{Selectors: set.Len()}

	if opts.Reject && opts.FragmentMode != fragment.ModeOff {
		return res, &RunError{
			Code:    ErrCodeConflictingModes,
			Message: "fragment fan-out cannot be combined with reject mode",
		}
	}

	delims := opts.HeaderDelims
	if delims == nil {
		d := keyset.NewDelimSet(DefaultHeaderDelimiters)
		delims = &d
	}

	// groups[i] is the destination tag for the slot at selection position
	// i, bound when the selector matches.
	var groups []string
	if opts.FragmentMode != fragment.ModeOff {
		groups = make([]string, set.Len())
	}

	buf := reorder.New(set.Len())
	sink := reorder.SinkFunc(func(order int, body []byte) error {
		w := out
		if groups != nil {
			var err error
			if w, err = router.Route(groups[order]); err != nil {
				return err
			}
		}
		_, err := w.Write(body)
		return err
	})

	var (
		accum       []byte // body of the record being collected, lines newline-terminated
		accumActive bool
		current     int // sorted index of the record being collected
		emitting    bool
		complete    bool
	)

	sc := fio.NewLineScanner(archive, opts.MaxLineWidth)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) > 0 && line[0] == HeaderMarker {
			res.Records++

			// Deposit the just-completed record and flush whatever became
			// contiguous. Once the cursor reaches the end every selected
			// record has been found and the rest of the archive is
			// irrelevant.
			if !opts.Reject && accumActive {
				if err := buf.Deposit(set.At(current).Order, accum); err != nil {
					return res, err
				}
				accum = nil
				accumActive = false
				if _, err := buf.Flush(sink); err != nil {
					return res, err
				}
				if buf.Done() {
					complete = true
					break
				}
			}

			name := line[1:]
			name = name[:delims.FieldEnd(name)]
			idx := set.Find(name)
			wanted := (idx >= 0) != opts.Reject
			emitting = false
			if wanted {
				res.Emitted++
				if !opts.Reject {
					if !set.Mark(idx) {
						return res, NewDuplicateRecordError(string(line[1:]))
					}
					current = idx
					accumActive = true
					if groups != nil {
						groups[set.At(idx).Order] = set.At(idx).Group
					}
				}
				emitting = true
			}
		}

		if emitting {
			if opts.Reject {
				// No reordering requirement in reject mode; write each
				// line straight through.
				if _, err := out.Write(line); err != nil {
					return res, err
				}
				if _, err := out.Write(newline); err != nil {
					return res, err
				}
			} else {
				accum = append(accum, line...)
				accum = append(accum, '\n')
			}
		}
	}
	if err := sc.Err(); err != nil {
		var tooLong *fio.TooLongError
		if errors.As(err, &tooLong) {
			return res, &RunError{Code: ErrCodeRecordTooLong, Message: tooLong.Error()}
		}
		return res, err
	}
	if sc.MissingTerminator() {
		slog.Warn("last line of archive lacks a newline")
	}

	if complete {
		return res, nil
	}

	// Miss accounting happens before the final drain, so a fatal miss
	// emits nothing further.
	if !opts.Reject {
		if missing := set.Unmatched(); len(missing) > 0 {
			names := make([]string, len(missing))
			for i, m := range missing {
				names[i] = m.Name
			}
			if !opts.ContinueOnMiss {
				return res, NewMissingSelectorsError(names)
			}
			for _, n := range names {
				slog.Warn("did not find selector", "name", n)
			}
		}

		if accumActive {
			if err := buf.Deposit(set.At(current).Order, accum); err != nil {
				return res, err
			}
		}
		if _, err := buf.Drain(sink); err != nil {
			return res, err
		}
	}

	return res, nil
}
