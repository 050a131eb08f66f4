// Package reorder buffers record bodies that arrive in archive order and
// releases them in selection-list order.
//
// Each matched record is deposited into the slot for its original list
// position. A monotonically advancing flush cursor emits the longest
// available contiguous prefix, releasing slot storage as it goes. This
// spreads output writes across the whole input pass instead of holding
// every matched record until end-of-file; peak memory is bounded by the
// records that are matched but not yet flushable, which in the worst
// case (the first-listed record matched last) is all of them. That bound
// is inherent to the reordering contract.
package reorder
