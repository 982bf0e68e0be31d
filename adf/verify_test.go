package adf

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/alphaset/lattice"
)

func mustParse(t *testing.T, input string) *Decomposition {
	t.Helper()
	d, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	return d
}

func TestVerifyValid(t *testing.T) {
	// |2^{1,2}| = 4 subsets.
	d := mustParse(t, "p alpha 4 1\ns 1 1 2 0\n")
	ok, actual := d.Verify()
	assert.True(t, ok)
	assert.Equal(t, int64(4), actual.Int64())
}

func TestVerifyInvalidReportsActual(t *testing.T) {
	// The declared n is wrong; the verdict must carry the true union size.
	d := mustParse(t, "p alpha 3 1\ns 1 1 2 0\n")
	ok, actual := d.Verify()
	assert.False(t, ok)
	assert.Equal(t, int64(4), actual.Int64())
}

func TestVerifyOverlappingSets(t *testing.T) {
	// S1 = {1,2}, S2 = {2,3}: 2^S1 ∪ 2^S2 has 4 + 4 - 2 = 6 members
	// (the shared ones are ∅ and {2}).
	d := mustParse(t, "p alpha 6 2\ns 1 1 2 0\ns 2 2 3 0\n")
	ok, actual := d.Verify()
	assert.True(t, ok)
	assert.Equal(t, int64(6), actual.Int64())
}

func TestVerifyEmptySet(t *testing.T) {
	// 2^∅ = {∅}, so a lone empty set proves n = 1.
	d := mustParse(t, "p alpha 1 1\ns 1 0\n")
	ok, actual := d.Verify()
	assert.True(t, ok)
	assert.Equal(t, int64(1), actual.Int64())
}

func TestIntersectionSizes(t *testing.T) {
	d := mustParse(t, "p alpha 6 2\ns 1 1 2 0\ns 2 2 3 0\n")
	sizes := d.IntersectionSizes()
	assert.Equal(t, 2, sizes.Size(0b01))
	assert.Equal(t, 2, sizes.Size(0b10))
	assert.Equal(t, 1, sizes.Size(0b11))
}

// powerSetUnion counts |2^S1 ∪ ... ∪ 2^Sk| by literal enumeration of every
// subset of every set. Only viable for tiny sets; it is the ground truth
// the inclusion–exclusion computation must match.
func powerSetUnion(sets [][]uint64) int {
	seen := make(map[string]struct{})
	for _, set := range sets {
		for sub := 0; sub < 1<<len(set); sub++ {
			var members []uint64
			for i, e := range set {
				if sub&(1<<i) != 0 {
					members = append(members, e)
				}
			}
			seen[subsetKey(members)] = struct{}{}
		}
	}
	return len(seen)
}

func subsetKey(members []uint64) string {
	// Element sets are deduplicated, so sorting by value gives a canonical
	// key. Inputs here are already ascending.
	var b strings.Builder
	for _, m := range members {
		fmt.Fprintf(&b, "%d,", m)
	}
	return b.String()
}

func TestUnionSizeMatchesBruteForce(t *testing.T) {
	tests := []struct {
		name string
		adf  string
		sets [][]uint64
	}{
		{
			name: "single set",
			adf:  "p alpha 1 1\ns 1 1 2 3 0\n",
			sets: [][]uint64{{1, 2, 3}},
		},
		{
			name: "two overlapping",
			adf:  "p alpha 1 2\ns 1 1 2 3 0\ns 2 2 3 4 0\n",
			sets: [][]uint64{{1, 2, 3}, {2, 3, 4}},
		},
		{
			name: "two disjoint",
			adf:  "p alpha 1 2\ns 1 1 2 0\ns 2 3 4 0\n",
			sets: [][]uint64{{1, 2}, {3, 4}},
		},
		{
			name: "nested",
			adf:  "p alpha 1 2\ns 1 1 2 3 4 0\ns 2 2 3 0\n",
			sets: [][]uint64{{1, 2, 3, 4}, {2, 3}},
		},
		{
			name: "three sets",
			adf:  "p alpha 1 3\ns 1 1 2 0\ns 2 2 3 0\ns 3 1 3 4 0\n",
			sets: [][]uint64{{1, 2}, {2, 3}, {1, 3, 4}},
		},
		{
			name: "three with empty",
			adf:  "p alpha 1 3\ns 1 1 2 3 0\ns 2 0\ns 3 3 4 0\n",
			sets: [][]uint64{{1, 2, 3}, {}, {3, 4}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustParse(t, tt.adf)
			want := powerSetUnion(tt.sets)
			assert.Equal(t, int64(want), d.UnionSize().Int64())
		})
	}
}

func TestIntersectionSizesAreRealizable(t *testing.T) {
	// Sizes measured from literal sets always satisfy the lattice
	// invariants (minus canonical ordering, which is a search-side
	// convention).
	d := mustParse(t, "p alpha 1 3\ns 1 1 2 3 0\ns 2 2 3 4 0\ns 3 3 4 5 0\n")
	sizes := d.IntersectionSizes()
	assert.True(t, lattice.Monotone(sizes, d.K))
	assert.True(t, lattice.NonNegativeRegions(sizes, d.K))
}
