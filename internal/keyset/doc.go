// Package keyset builds and queries the record selection set.
//
// A selector list is read once from a line-oriented source, sorted by
// name, and deduplicated before the archive pass begins. After that the
// set is read-only except for the per-selector match flags, which each
// transition unset to set at most once.
//
// Sorting uses a comb sort with restart rather than a stable sort; there
// is no relative order to preserve because equal names are merged away
// during deduplication. Lookup is a binary search over the sorted names,
// which stays fast even when both the selector list and the archive are
// large.
package keyset
