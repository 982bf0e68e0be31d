package lattice

import (
	"math/big"
	"math/bits"
	"sort"
)

// DVector assigns an intersection size to every nonempty mask.
// It is a dense slice indexed by mask-1, so d.Size(mask) is O(1) and
// iteration in mask order is cache friendly.
type DVector []int

// NewDVector returns a zero d-vector sized for k sets.
func NewDVector(k int) DVector {
	return make(DVector, NumMasks(k))
}

// Size returns the intersection size assigned to mask.
func (d DVector) Size(mask int) int { return d[mask-1] }

// SetSize assigns an intersection size to mask.
func (d DVector) SetSize(mask, size int) { d[mask-1] = size }

// Clone returns a deep copy of the d-vector.
func (d DVector) Clone() DVector {
	c := make(DVector, len(d))
	copy(c, d)
	return c
}

// NumMasks returns the number of nonempty masks for k sets: 2^k - 1.
func NumMasks(k int) int { return 1<<uint(k) - 1 }

// Contains reports whether mask a is a superset of mask b.
func Contains(a, b int) bool { return a&b == b }

// Singleton returns the mask of the i-th set (0-based).
func Singleton(i int) int { return 1 << uint(i) }

// MasksByPopcount returns all nonempty masks for k sets ordered by
// ascending popcount, ties broken by mask value. This is the processing
// order of the exhaustive engine: every proper submask of a mask precedes
// it in the slice.
func MasksByPopcount(k int) []int {
	masks := make([]int, NumMasks(k))
	for i := range masks {
		masks[i] = i + 1
	}
	sort.Slice(masks, func(i, j int) bool {
		pi, pj := bits.OnesCount(uint(masks[i])), bits.OnesCount(uint(masks[j]))
		if pi != pj {
			return pi < pj
		}
		return masks[i] < masks[j]
	})
	return masks
}

// RegionSize computes, via Möbius inversion, the number of elements lying
// in exactly the sets named by mask K and no others:
//
//	region(K) = Σ over J ⊇ K of (-1)^(|J|-|K|) · d[J]
//
// Magnitudes are bounded by (2^k)·max(d), far below an int64, so the sum
// needs no big-integer arithmetic.
func RegionSize(d DVector, k, K int) int64 {
	var region int64
	kBits := bits.OnesCount(uint(K))
	for J := 1; J <= NumMasks(k); J++ {
		if !Contains(J, K) {
			continue
		}
		if (bits.OnesCount(uint(J))-kBits)%2 == 0 {
			region += int64(d.Size(J))
		} else {
			region -= int64(d.Size(J))
		}
	}
	return region
}

// Monotone reports whether every superset intersection is no larger than
// its subsets: A ⊇ B implies d[A] ≤ d[B].
func Monotone(d DVector, k int) bool {
	n := NumMasks(k)
	for a := 1; a <= n; a++ {
		for b := 1; b <= n; b++ {
			if a != b && Contains(a, b) && d.Size(a) > d.Size(b) {
				return false
			}
		}
	}
	return true
}

// NonNegativeRegions reports whether every Möbius region size is ≥ 0,
// i.e. whether the d-vector is realizable by an actual set system.
func NonNegativeRegions(d DVector, k int) bool {
	for K := 1; K <= NumMasks(k); K++ {
		if RegionSize(d, k, K) < 0 {
			return false
		}
	}
	return true
}

// Canonical reports whether the singleton sizes are non-increasing,
// d[{1}] ≥ d[{2}] ≥ ... ≥ d[{k}]. This is the symmetry-breaking form that
// removes the k!-fold relabeling redundancy.
func Canonical(d DVector, k int) bool {
	for i := 0; i < k-1; i++ {
		if d.Size(Singleton(i)) < d.Size(Singleton(i+1)) {
			return false
		}
	}
	return true
}

// Target evaluates the inclusion–exclusion signature
//
//	Σ over masks M of (-1)^(|M|+1) · 2^d[M]
//
// with exact arbitrary-precision arithmetic. Individual 2^d terms can
// exceed machine-word width for even modest set sizes.
func Target(d DVector, k int) *big.Int {
	sum := new(big.Int)
	term := new(big.Int)
	one := big.NewInt(1)
	for m := 1; m <= NumMasks(k); m++ {
		term.Lsh(one, uint(d.Size(m)))
		if bits.OnesCount(uint(m))%2 == 1 {
			sum.Add(sum, term)
		} else {
			sum.Sub(sum, term)
		}
	}
	return sum
}

// Satisfies reports whether d is a complete witness for target n: monotone,
// region non-negative, canonical, and hitting n exactly.
func Satisfies(d DVector, k int, n uint64) bool {
	if len(d) != NumMasks(k) {
		return false
	}
	if !Monotone(d, k) || !NonNegativeRegions(d, k) || !Canonical(d, k) {
		return false
	}
	return Target(d, k).Cmp(new(big.Int).SetUint64(n)) == 0
}
