package keyset

// DefaultSelectorDelimiters is the default terminator set for selector
// list fields: vertical bar, tab, space, and colon. End-of-line and NUL
// always terminate a field regardless of the configured set.
const DefaultSelectorDelimiters = "|\t :"

// DelimSet is a byte membership table used to terminate fields. Build it
// with NewDelimSet; the zero value matches nothing.
type DelimSet struct {
	set [256]bool
}

// NewDelimSet builds a DelimSet from the bytes of chars. NUL is always a
// member.
func NewDelimSet(chars string) DelimSet {
	var d DelimSet
	d.set[0] = true
	for i := 0; i < len(chars); i++ {
		d.set[chars[i]] = true
	}
	return d
}

// Contains reports whether c is in the set.
func (d *DelimSet) Contains(c byte) bool {
	return d.set[c]
}

// FieldEnd returns the index of the first delimiter byte in b, or len(b)
// if none occurs. Equivalent to C's strcspn.
func (d *DelimSet) FieldEnd(b []byte) int {
	for i, c := range b {
		if d.set[c] {
			return i
		}
	}
	return len(b)
}

// SkipRun returns the index of the first non-delimiter byte in b, or
// len(b) if b is all delimiters. Equivalent to C's strspn.
func (d *DelimSet) SkipRun(b []byte) int {
	for i, c := range b {
		if !d.set[c] {
			return i
		}
	}
	return len(b)
}
