package keyset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFromString(t *testing.T, list string, opts Options) *Set {
	t.Helper()
	set, err := Build(strings.NewReader(list), opts)
	require.NoError(t, err)
	return set
}

func TestBuild_SortsAndPreservesOrder(t *testing.T) {
	set := buildFromString(t, "zebra\napple\nmango\n", Options{})
	require.Equal(t, 3, set.Len())

	// Sorted by name, each selector carrying its list position.
	assert.Equal(t, Selector{Name: "apple", Order: 1}, set.At(0))
	assert.Equal(t, Selector{Name: "mango", Order: 2}, set.At(1))
	assert.Equal(t, Selector{Name: "zebra", Order: 0}, set.At(2))
}

func TestBuild_FieldDelimiters(t *testing.T) {
	testCases := []struct {
		name string
		line string
		want string
	}{
		{"pipe", "seq1|extra stuff", "seq1"},
		{"tab", "seq1\tdescription", "seq1"},
		{"space", "seq1 description", "seq1"},
		{"colon", "seq1:42", "seq1"},
		{"bare", "seq1", "seq1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			set := buildFromString(t, tc.line+"\n", Options{})
			require.Equal(t, 1, set.Len())
			assert.Equal(t, tc.want, set.At(0).Name)
		})
	}
}

func TestBuild_SkipsBlankLines(t *testing.T) {
	// Blank lines and lines starting with a delimiter are skipped and do
	// not consume an order slot.
	set := buildFromString(t, "a\n\n|junk\nb\n", Options{})
	require.Equal(t, 2, set.Len())
	assert.Equal(t, Selector{Name: "a", Order: 0}, set.At(0))
	assert.Equal(t, Selector{Name: "b", Order: 1}, set.At(1))
}

func TestBuild_EmptyList(t *testing.T) {
	_, err := Build(strings.NewReader(""), Options{})
	assert.ErrorIs(t, err, ErrNoSelectors)
}

func TestBuild_DuplicateStrict(t *testing.T) {
	_, err := Build(strings.NewReader("a\na\n"), Options{})

	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a", dup.Name)
}

func TestBuild_DuplicateLenient(t *testing.T) {
	set := buildFromString(t, "a\na\n", Options{LenientDups: true})
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, "a", set.At(0).Name)
	assert.Equal(t, 0, set.At(0).Order)
}

func TestBuild_DuplicateLenientCompactsOrders(t *testing.T) {
	// Dropping a duplicate must not leave a gap in the Order values:
	// every Order indexes an emission slot in a buffer sized Len().
	testCases := []struct {
		name string
		list string
		want []Selector // sorted by name
	}{
		{
			"duplicate before later key",
			"a\na\nb\n",
			[]Selector{{Name: "a", Order: 0}, {Name: "b", Order: 1}},
		},
		{
			"duplicate of a later key",
			"z\nz\na\n",
			[]Selector{{Name: "a", Order: 1}, {Name: "z", Order: 0}},
		},
		{
			"multiple duplicate runs",
			"m\na\nm\nz\na\nm\n",
			[]Selector{{Name: "a", Order: 1}, {Name: "m", Order: 0}, {Name: "z", Order: 2}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			set := buildFromString(t, tc.list, Options{LenientDups: true})
			require.Equal(t, len(tc.want), set.Len())
			for i, w := range tc.want {
				assert.Equal(t, w.Name, set.At(i).Name)
				assert.Equal(t, w.Order, set.At(i).Order, "order of %q", w.Name)
			}
		})
	}
}

func TestBuild_FragmentGroups(t *testing.T) {
	set := buildFromString(t, "x grpA\ny\tgrpB\n", Options{Fragment: true})
	require.Equal(t, 2, set.Len())
	assert.Equal(t, "grpA", set.At(0).Group)
	assert.Equal(t, "grpB", set.At(1).Group)
}

func TestBuild_FragmentMultipleDelimitersBeforeGroup(t *testing.T) {
	set := buildFromString(t, "x | grpA\n", Options{Fragment: true})
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "x", set.At(0).Name)
	assert.Equal(t, "grpA", set.At(0).Group)
}

func TestBuild_FragmentMissingGroup(t *testing.T) {
	_, err := Build(strings.NewReader("x grpA\ny\n"), Options{Fragment: true})

	var missing *MissingGroupError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "y", missing.Name)
}

func TestBuild_GroupIgnoredOutsideFragmentMode(t *testing.T) {
	set := buildFromString(t, "x grpA\n", Options{})
	assert.Empty(t, set.At(0).Group)
}

func TestFind(t *testing.T) {
	set := buildFromString(t, "delta\nalpha\ncharlie\nbravo\n", Options{})

	for i := 0; i < set.Len(); i++ {
		name := set.At(i).Name
		assert.Equal(t, i, set.Find([]byte(name)), "find %q", name)
	}

	assert.Equal(t, -1, set.Find([]byte("echo")))
	assert.Equal(t, -1, set.Find([]byte("")))
	assert.Equal(t, -1, set.Find([]byte("alphaX")))
	assert.Equal(t, -1, set.Find([]byte("alph")))
}

func TestMark(t *testing.T) {
	set := buildFromString(t, "a\nb\n", Options{})

	assert.True(t, set.Mark(0), "first mark sets the flag")
	assert.False(t, set.Mark(0), "second mark reports the duplicate")
	assert.False(t, set.AllMatched())

	assert.True(t, set.Mark(1))
	assert.True(t, set.AllMatched())
}

func TestUnmatched(t *testing.T) {
	set := buildFromString(t, "c\na\nb\n", Options{})
	set.Mark(1) // "b"

	missing := set.Unmatched()
	require.Len(t, missing, 2)
	assert.Equal(t, "a", missing[0].Name)
	assert.Equal(t, "c", missing[1].Name)
}
