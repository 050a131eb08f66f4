// Package fragment routes emitted records across multiple destination
// files keyed by a group tag.
//
// One destination is open at a time. Routing the same tag again returns
// the open handle; a different tag closes the previous destination and
// opens a new one from the filename template. In create-exclusive mode
// the open itself enforces group contiguity: a tag that recurs after the
// destination was closed hits the already-existing file and fails.
package fragment
