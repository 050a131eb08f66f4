package keyset

import (
	"io"
	"sort"
)

// Set is the sorted, deduplicated selection set. It is read-only after
// Build except for the match flags.
type Set struct {
	selectors []Selector
	matched   []bool
}

// Build reads a selector list from r and constructs the selection set:
// parse, sort by name, deduplicate, and (in fragment mode) verify every
// retained selector carries a group tag.
func Build(r io.Reader, opts Options) (*Set, error) {
	sels, err := parse(r, opts)
	if err != nil {
		return nil, err
	}
	if len(sels) == 0 {
		return nil, ErrNoSelectors
	}

	sortSelectors(sels)
	sels, err = dedupSelectors(sels, opts.LenientDups)
	if err != nil {
		return nil, err
	}
	compactOrders(sels)
	if opts.Fragment {
		for _, s := range sels {
			if s.Group == "" {
				return nil, &MissingGroupError{Name: s.Name}
			}
		}
	}

	return &Set{
		selectors: sels,
		matched:   make([]bool, len(sels)),
	}, nil
}

// compactOrders renumbers Order to the dense range [0, len) while
// preserving the retained selectors' relative list positions. Dropping a
// duplicate leaves a gap in the Order values, and every consumer sizes
// emission slots by the retained count, so the values must stay dense.
func compactOrders(sels []Selector) {
	orders := make([]int, len(sels))
	for i, s := range sels {
		orders[i] = s.Order
	}
	sort.Ints(orders)
	rank := make(map[int]int, len(orders))
	for r, o := range orders {
		rank[o] = r
	}
	for i := range sels {
		sels[i].Order = rank[sels[i].Order]
	}
}

// Len returns the number of retained selectors.
func (s *Set) Len() int {
	return len(s.selectors)
}

// At returns the selector at sorted index i.
func (s *Set) At(i int) Selector {
	return s.selectors[i]
}

// Find locates name in the set by binary search and returns its sorted
// index, or -1 if the name is not selected. Find has no side effects.
func (s *Set) Find(name []byte) int {
	key := string(name)
	bot, top := 0, len(s.selectors)-1
	for bot <= top {
		mid := (bot + top) / 2
		switch {
		case s.selectors[mid].Name == key:
			return mid
		case s.selectors[mid].Name > key:
			top = mid - 1
		default:
			bot = mid + 1
		}
	}
	return -1
}

// Mark sets the match flag for sorted index i. It returns true if the
// flag was newly set and false if the selector had already matched, which
// callers treat as a duplicate record in the archive.
func (s *Set) Mark(i int) bool {
	if s.matched[i] {
		return false
	}
	s.matched[i] = true
	return true
}

// AllMatched reports whether every selector has matched.
func (s *Set) AllMatched() bool {
	for _, m := range s.matched {
		if !m {
			return false
		}
	}
	return true
}

// Unmatched returns the selectors whose match flag is still unset, in
// sorted name order.
func (s *Set) Unmatched() []Selector {
	var missing []Selector
	for i, m := range s.matched {
		if !m {
			missing = append(missing, s.selectors[i])
		}
	}
	return missing
}
