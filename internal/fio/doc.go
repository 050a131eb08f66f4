// Package fio provides file input/output helpers for fastaselect.
//
// Input opening is format-agnostic: the first bytes of every input are
// sniffed for a compression magic number, and gzip, zstd, and lz4 streams
// are decompressed transparently. The archive pass itself never knows
// whether it is reading a plain or a compressed file.
//
// The package also provides LineScanner, a line reader with an enforced
// maximum line width. FASTA headers from public databases keep growing,
// so the limit is configurable rather than baked in.
package fio
