package fio

import (
	"bufio"
	"fmt"
	"io"
)

// DefaultMaxLineWidth is the longest input line accepted when no explicit
// limit is configured. Sized generously for NCBI-style FASTA headers.
const DefaultMaxLineWidth = 10000000

// TooLongError reports a line that exceeded the configured maximum width
// before a terminator was seen.
type TooLongError struct {
	Max int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("input line exceeds %d characters", e.Max)
}

// LineScanner reads an input stream line by line with a hard upper bound
// on line length. Trailing CR/LF is stripped from every returned line.
//
// A final line without a newline terminator is returned normally;
// MissingTerminator reports it so the caller can warn. A line that grows
// past the maximum width without a terminator stops the scan with a
// TooLongError.
type LineScanner struct {
	br     *bufio.Reader
	max    int
	buf    []byte
	line   []byte
	err    error
	noTerm bool
}

// NewLineScanner returns a LineScanner over r. A maxWidth of zero or less
// selects DefaultMaxLineWidth.
func NewLineScanner(r io.Reader, maxWidth int) *LineScanner {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxLineWidth
	}
	return &LineScanner{
		br:  bufio.NewReader(r),
		max: maxWidth,
	}
}

// Scan advances to the next line. It returns false at end of input or on
// error; Err distinguishes the two.
func (s *LineScanner) Scan() bool {
	if s.err != nil {
		return false
	}
	s.buf = s.buf[:0]
	for {
		chunk, err := s.br.ReadSlice('\n')
		s.buf = append(s.buf, chunk...)
		// +2 allows a terminated line of exactly max width plus CR/LF.
		if len(s.buf) > s.max+2 {
			s.err = &TooLongError{Max: s.max}
			return false
		}
		if err == nil {
			break
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err == io.EOF {
			if len(s.buf) == 0 {
				s.err = io.EOF
				return false
			}
			s.noTerm = true
			break
		}
		s.err = err
		return false
	}

	line := s.buf
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	if len(line) > s.max {
		s.err = &TooLongError{Max: s.max}
		return false
	}
	s.line = line
	return true
}

// Bytes returns the current line without its terminator. The slice is
// only valid until the next call to Scan.
func (s *LineScanner) Bytes() []byte {
	return s.line
}

// Err returns the first non-EOF error encountered by the scanner.
func (s *LineScanner) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}

// MissingTerminator reports whether the last returned line ended at EOF
// without a newline.
func (s *LineScanner) MissingTerminator() bool {
	return s.noTerm
}
