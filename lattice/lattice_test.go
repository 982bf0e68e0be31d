package lattice

import (
	"math/big"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumMasks(t *testing.T) {
	assert.Equal(t, 1, NumMasks(1))
	assert.Equal(t, 3, NumMasks(2))
	assert.Equal(t, 7, NumMasks(3))
	assert.Equal(t, 15, NumMasks(4))
}

func TestContains(t *testing.T) {
	tests := []struct {
		name string
		a, b int
		want bool
	}{
		{"self", 0b101, 0b101, true},
		{"proper superset", 0b111, 0b101, true},
		{"proper subset", 0b101, 0b111, false},
		{"disjoint", 0b100, 0b011, false},
		{"singleton in pair", 0b011, 0b010, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.a, tt.b))
		})
	}
}

func TestMasksByPopcount(t *testing.T) {
	masks := MasksByPopcount(3)
	require.Len(t, masks, 7)
	assert.Equal(t, []int{1, 2, 4, 3, 5, 6, 7}, masks)

	// Every proper submask must precede its supersets.
	pos := make(map[int]int, len(masks))
	for i, m := range masks {
		pos[m] = i
	}
	for _, m := range masks {
		for _, sub := range masks {
			if sub != m && Contains(m, sub) {
				assert.Less(t, pos[sub], pos[m], "submask %b must precede %b", sub, m)
			}
		}
	}
}

func TestRegionSize(t *testing.T) {
	// Two sets of size 2 sharing one element:
	// region({1}) = 1, region({2}) = 1, region({1,2}) = 1.
	d := DVector{2, 2, 1}
	assert.Equal(t, int64(1), RegionSize(d, 2, 0b01))
	assert.Equal(t, int64(1), RegionSize(d, 2, 0b10))
	assert.Equal(t, int64(1), RegionSize(d, 2, 0b11))
}

func TestRegionSizeNegative(t *testing.T) {
	// Intersection claims more shared elements than the sets leave room
	// for: d[{1}]=1, d[{2}]=1, d[{1,2}]=1 gives region({1}) = 0, fine, but
	// d[{1}]=1, d[{2}]=2, d[{1,2}]=... must stay monotone; use a vector
	// that is monotone yet unrealizable at k=3.
	// d pairs all 1, triple 0, singletons all 1:
	// region({1}) = 1 - 1 - 1 + 0 = -1.
	d := DVector{1, 1, 1, 1, 1, 1, 0}
	assert.True(t, Monotone(d, 3))
	assert.Equal(t, int64(-1), RegionSize(d, 3, 0b001))
	assert.False(t, NonNegativeRegions(d, 3))
}

func TestMonotone(t *testing.T) {
	assert.True(t, Monotone(DVector{2, 2, 1}, 2))
	// Pair intersection larger than one of its sets.
	assert.False(t, Monotone(DVector{2, 1, 2}, 2))
}

func TestCanonical(t *testing.T) {
	assert.True(t, Canonical(DVector{3, 2, 0}, 2))
	assert.True(t, Canonical(DVector{2, 2, 1}, 2))
	assert.False(t, Canonical(DVector{1, 2, 0}, 2))
}

func TestTarget(t *testing.T) {
	tests := []struct {
		name string
		k    int
		d    DVector
		want int64
	}{
		{"single set", 1, DVector{2}, 4},
		{"single empty set", 1, DVector{0}, 1},
		{"two sets no overlap term", 2, DVector{1, 1, 0}, 3},
		{"two identical sets", 2, DVector{2, 2, 2}, 4},
		{"three disjoint singletons", 3, DVector{1, 1, 0, 1, 0, 0, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Target(tt.d, tt.k).Int64())
		})
	}
}

func TestTargetExceedsWordWidth(t *testing.T) {
	// A single set of size 70 forces a term beyond 64 bits.
	d := DVector{70}
	want := new(big.Int).Lsh(big.NewInt(1), 70)
	assert.Equal(t, 0, Target(d, 1).Cmp(want))
}

func TestSatisfies(t *testing.T) {
	// n=3 with k=2: d = (1,1,0) is 2+2-1 = 3.
	d := DVector{1, 1, 0}
	assert.True(t, Satisfies(d, 2, 3))
	assert.False(t, Satisfies(d, 2, 4))

	// Wrong length is never a witness.
	assert.False(t, Satisfies(DVector{1, 1}, 2, 3))

	// Non-canonical witness is rejected even when the sum matches.
	bad := DVector{0, 2, 0} // 1 + 4 - 1 = 4
	assert.Equal(t, int64(4), Target(bad, 2).Int64())
	assert.False(t, Satisfies(bad, 2, 4))
}

func TestRegionSizesSumToUnion(t *testing.T) {
	// The regions of a realizable vector partition the union of the sets,
	// so Σ region(K) must equal |S_1 ∪ ... ∪ S_k|.
	d := DVector{3, 2, 1, 1, 1, 1, 1}
	require.True(t, Monotone(d, 3))
	require.True(t, NonNegativeRegions(d, 3))

	var sum int64
	for K := 1; K <= NumMasks(3); K++ {
		sum += RegionSize(d, 3, K)
	}
	// |union| by inclusion-exclusion on plain sizes.
	var union int64
	for m := 1; m <= NumMasks(3); m++ {
		if bits.OnesCount(uint(m))%2 == 1 {
			union += int64(d.Size(m))
		} else {
			union -= int64(d.Size(m))
		}
	}
	assert.Equal(t, union, sum)
}
