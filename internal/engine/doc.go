// Package engine implements the fastaselect stream driver.
//
// The driver makes a single forward pass over the archive, strictly
// sequential with synchronous I/O. Each line is classified as a header
// (starts with the record marker) or data. Headers are matched against
// the selection set by binary search; data lines of a wanted record
// accumulate into an owned buffer that is deposited into the reorder
// buffer when the next header arrives. A lazy flush after every deposit
// emits the longest available contiguous prefix, so output is spread
// across the pass instead of buffered until end-of-file, and the pass
// ends early once every selector has been emitted.
//
// Shared mutable state is confined to the selection set's match flags
// (each written at most once) and the reorder buffer's slots (written
// once, read once, released). There is exactly one thread of control, so
// no locking is required; anything that parallelizes the pass must
// reintroduce synchronization around those two structures and preserve
// the single-writer-per-cell invariant.
//
// All fatal conditions return a structured error to the caller; the
// driver never terminates the process itself. Warnings are logged as
// they occur and never alter control flow.
package engine
