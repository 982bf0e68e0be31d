package adf

import (
	"math/big"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/alphaset/lattice"
)

// IntersectionSizes computes the true intersection cardinality for every
// nonempty mask by repeated set intersection of the literal element sets.
// The result is a lattice d-vector grounded in real sets rather than
// symbolic size variables.
func (d *Decomposition) IntersectionSizes() lattice.DVector {
	sizes := lattice.NewDVector(d.K)
	for mask := 1; mask <= lattice.NumMasks(d.K); mask++ {
		var inter *roaring64.Bitmap
		for i := 0; i < d.K; i++ {
			if mask&lattice.Singleton(i) == 0 {
				continue
			}
			if inter == nil {
				inter = d.Sets[i].Clone()
			} else {
				inter.And(d.Sets[i])
			}
		}
		sizes.SetSize(mask, int(inter.GetCardinality()))
	}
	return sizes
}

// UnionSize computes |2^S1 ∪ ... ∪ 2^Sk| by exact inclusion–exclusion over
// the literal intersection sizes. The signed sum itself is the shared
// lattice evaluator, fed with ground-truth sizes.
func (d *Decomposition) UnionSize() *big.Int {
	return lattice.Target(d.IntersectionSizes(), d.K)
}

// Verify checks the decomposition's claim. It returns the computed union
// size either way, so a failed verification can report the actual value
// for diagnosis.
func (d *Decomposition) Verify() (bool, *big.Int) {
	actual := d.UnionSize()
	return actual.Cmp(new(big.Int).SetUint64(d.N)) == 0, actual
}
