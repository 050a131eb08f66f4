package reorder

import "fmt"

// Sink receives record bodies as they become flushable, in slot order.
// The order argument is the slot index being emitted, which fragment
// routing uses to look up the destination group.
type Sink interface {
	Emit(order int, body []byte) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(order int, body []byte) error

// Emit implements Sink.
func (f SinkFunc) Emit(order int, body []byte) error {
	return f(order, body)
}

// RefilledError reports a deposit into an already-filled slot. A slot can
// be filled at most once by construction, so this always indicates a
// protocol violation by the caller.
type RefilledError struct {
	Order int
}

func (e *RefilledError) Error() string {
	return fmt.Sprintf("slot %d deposited twice", e.Order)
}

// Buffer holds completed record bodies keyed by original selection
// position. Slots transition empty to filled at most once, and filled to
// emitted exactly once, after which their storage is released.
type Buffer struct {
	slots  [][]byte
	filled []bool
	cursor int
}

// New returns a Buffer with n empty slots.
func New(n int) *Buffer {
	return &Buffer{
		slots:  make([][]byte, n),
		filled: make([]bool, n),
	}
}

// Deposit stores body into the slot at order. Ownership of body passes to
// the buffer. Depositing into a filled slot returns a RefilledError.
func (b *Buffer) Deposit(order int, body []byte) error {
	if b.filled[order] {
		return &RefilledError{Order: order}
	}
	b.slots[order] = body
	b.filled[order] = true
	return nil
}

// Flush emits slots to sink starting at the cursor, advancing through the
// longest contiguous filled prefix. Emitted slot storage is released and
// never read again. Flush returns the number of slots emitted.
func (b *Buffer) Flush(sink Sink) (int, error) {
	emitted := 0
	for b.cursor < len(b.slots) && b.filled[b.cursor] {
		if err := sink.Emit(b.cursor, b.slots[b.cursor]); err != nil {
			return emitted, err
		}
		b.slots[b.cursor] = nil
		b.cursor++
		emitted++
	}
	return emitted, nil
}

// Drain emits every remaining filled slot in order, skipping empty
// slots. It may only be called after end of input, when an empty slot can
// never be filled; without it a permanent gap left by a missed selector
// would strand every later match. The cursor advances to the end.
func (b *Buffer) Drain(sink Sink) (int, error) {
	emitted := 0
	for ; b.cursor < len(b.slots); b.cursor++ {
		if !b.filled[b.cursor] {
			continue
		}
		if err := sink.Emit(b.cursor, b.slots[b.cursor]); err != nil {
			return emitted, err
		}
		b.slots[b.cursor] = nil
		emitted++
	}
	return emitted, nil
}

// Cursor returns the index of the next slot to emit. Slots below the
// cursor have been emitted.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Done reports whether every slot has been emitted.
func (b *Buffer) Done() bool {
	return b.cursor == len(b.slots)
}

// Pending returns the number of slots that are filled but not yet
// emitted.
func (b *Buffer) Pending() int {
	n := 0
	for i := b.cursor; i < len(b.slots); i++ {
		if b.filled[i] {
			n++
		}
	}
	return n
}
