package fio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/pierrec/lz4/v4"
)

// Compression magic numbers checked by NewReader.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Input is an open input source. Close releases the decompressor (if any)
// and the underlying file.
type Input struct {
	reader  io.Reader
	closers []io.Closer
}

// Read implements io.Reader.
func (in *Input) Read(p []byte) (int, error) {
	return in.reader.Read(p)
}

// Close closes the decompressor first, then the underlying file.
func (in *Input) Close() error {
	var first error
	for _, c := range in.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens path for reading, decompressing transparently. A path of "-"
// means stdin. Stdin is never closed by Close.
func Open(path string) (*Input, error) {
	if path == "-" {
		r, err := NewReader(bufio.NewReader(os.Stdin))
		if err != nil {
			return nil, err
		}
		in := &Input{reader: r}
		if c, ok := r.(io.Closer); ok {
			in.closers = append(in.closers, c)
		}
		return in, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, err
	}
	in := &Input{reader: r}
	if c, ok := r.(io.Closer); ok {
		in.closers = append(in.closers, c)
	}
	in.closers = append(in.closers, f)
	return in, nil
}

// NewReader sniffs the compression format of r and returns a reader that
// yields the decompressed stream. Plain input is passed through unchanged.
// The returned reader may implement io.Closer; callers that care about
// releasing decompressor resources should check for it.
func NewReader(br *bufio.Reader) (io.Reader, error) {
	magic, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, err
	}

	switch {
	case hasMagic(magic, gzipMagic):
		zr, err := pgzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip input: %w", err)
		}
		return zr, nil
	case hasMagic(magic, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zstd input: %w", err)
		}
		return zr.IOReadCloser(), nil
	case hasMagic(magic, lz4Magic):
		return lz4.NewReader(br), nil
	default:
		return br, nil
	}
}

func hasMagic(buf, magic []byte) bool {
	if len(buf) < len(magic) {
		return false
	}
	for i := range magic {
		if buf[i] != magic[i] {
			return false
		}
	}
	return true
}

// Create opens path for writing, truncating any existing file. A path of
// "-" or "" means stdout, which is never closed.
func Create(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
