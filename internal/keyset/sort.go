package keyset

import "log/slog"

// sortShrink is the comb sort gap shrink factor.
const sortShrink = 1.3

// maxDirtyPasses bounds consecutive gap-1 passes that still record swaps
// before the gap sequence is rebuilt from the top.
const maxDirtyPasses = 7

// sortSelectors orders sels by ascending byte-wise name comparison using
// a comb sort with restart. After the gap sequence reaches 1 the sort
// keeps making gap-1 passes until one records zero swaps; adversarial
// input that stays dirty too long triggers a full re-comb so the sort
// cannot degenerate into a plain bubble sort.
func sortSelectors(sels []Selector) {
	n := len(sels)
	if n < 2 {
		return
	}
	for {
		gap := n/2 - 1
		if gap < 1 {
			gap = 1
		}
		dirty := 0
		for {
			swaps := 0
			for i, j := 0, gap; j < n; i, j = i+1, j+1 {
				if sels[j].Name < sels[i].Name {
					sels[i], sels[j] = sels[j], sels[i]
					swaps++
				}
			}
			if gap > 1 {
				gap = int(float64(gap) / sortShrink)
				if gap < 1 {
					gap = 1
				}
				continue
			}
			if swaps == 0 {
				return
			}
			dirty++
			if dirty > maxDirtyPasses {
				break
			}
		}
	}
}

// dedupSelectors merges adjacent equal names in a sorted selector slice,
// retaining a single occurrence. The sort is not stable, so which of the
// duplicates survives is unspecified. Under the strict policy any
// duplicate is fatal; under the lenient policy it is dropped with a
// warning.
func dedupSelectors(sels []Selector, lenient bool) ([]Selector, error) {
	if len(sels) < 2 {
		return sels, nil
	}
	out := sels[:1]
	for _, s := range sels[1:] {
		if s.Name == out[len(out)-1].Name {
			if !lenient {
				return nil, &DuplicateError{Name: s.Name}
			}
			slog.Warn("dropping duplicate selector in selection list",
				"name", s.Name)
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
