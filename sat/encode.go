package sat

import (
	"math/bits"

	"github.com/crillab/gophersat/solver"

	"github.com/hupe1980/alphaset/lattice"
)

// term is one weighted literal of a linear constraint. Weights may be
// negative; the encoder normalizes before handing constraints to gophersat.
type term struct {
	lit    int
	weight int
}

// encoder builds the pseudo-boolean encoding of the lattice model for one
// (n, k, ceiling) query.
type encoder struct {
	k       int
	ceiling int
	constrs []solver.PBConstr
}

// varOf maps (mask, value) to a 1-based solver variable.
func (e *encoder) varOf(mask, v int) int {
	return (mask-1)*(e.ceiling+1) + v + 1
}

// numVars returns the total variable count of the encoding.
func (e *encoder) numVars() int {
	return lattice.NumMasks(e.k) * (e.ceiling + 1)
}

// addLinear appends Σ weight·lit ≥ atLeast, normalizing negative weights by
// literal flipping: w·x = w - |w|·(¬x) for w < 0.
func (e *encoder) addLinear(terms []term, atLeast int) {
	lits := make([]int, 0, len(terms))
	weights := make([]int, 0, len(terms))
	for _, t := range terms {
		switch {
		case t.weight == 0:
			continue
		case t.weight < 0:
			lits = append(lits, -t.lit)
			weights = append(weights, -t.weight)
			atLeast += -t.weight
		default:
			lits = append(lits, t.lit)
			weights = append(weights, t.weight)
		}
	}
	e.constrs = append(e.constrs, solver.GtEq(lits, weights, atLeast))
}

// addEqual appends Σ weight·lit = value as a pair of inequalities.
func (e *encoder) addEqual(terms []term, value int) {
	e.addLinear(terms, value)
	flipped := make([]term, len(terms))
	for i, t := range terms {
		flipped[i] = term{lit: t.lit, weight: -t.weight}
	}
	e.addLinear(flipped, -value)
}

// sizeTerms returns the linear expansion of d[mask] over the one-hot
// variables, scaled by sign: Σ v·x[mask][v].
func (e *encoder) sizeTerms(mask, sign int) []term {
	terms := make([]term, 0, e.ceiling)
	for v := 1; v <= e.ceiling; v++ {
		terms = append(terms, term{lit: e.varOf(mask, v), weight: sign * v})
	}
	return terms
}

// encode builds the full constraint system for target n.
func (e *encoder) encode(n uint64) {
	numMasks := lattice.NumMasks(e.k)

	// One-hot: every mask takes exactly one value in [0, ceiling].
	for mask := 1; mask <= numMasks; mask++ {
		lits := make([]int, 0, e.ceiling+1)
		atMost := make([]term, 0, e.ceiling+1)
		for v := 0; v <= e.ceiling; v++ {
			lits = append(lits, e.varOf(mask, v))
			atMost = append(atMost, term{lit: e.varOf(mask, v), weight: -1})
		}
		e.constrs = append(e.constrs, solver.PropClause(lits...))
		e.addLinear(atMost, -1)
	}

	// Monotonicity: A ⊃ B implies d[A] ≤ d[B].
	for a := 1; a <= numMasks; a++ {
		for b := 1; b <= numMasks; b++ {
			if a != b && lattice.Contains(a, b) {
				e.addLinear(append(e.sizeTerms(b, 1), e.sizeTerms(a, -1)...), 0)
			}
		}
	}

	// Möbius non-negativity: region(K) ≥ 0 for every K.
	for K := 1; K <= numMasks; K++ {
		var terms []term
		kBits := bits.OnesCount(uint(K))
		for J := 1; J <= numMasks; J++ {
			if !lattice.Contains(J, K) {
				continue
			}
			sign := 1
			if (bits.OnesCount(uint(J))-kBits)%2 == 1 {
				sign = -1
			}
			terms = append(terms, e.sizeTerms(J, sign)...)
		}
		e.addLinear(terms, 0)
	}

	// Symmetry breaking: non-increasing singleton sizes.
	for i := 0; i < e.k-1; i++ {
		terms := append(
			e.sizeTerms(lattice.Singleton(i), 1),
			e.sizeTerms(lattice.Singleton(i+1), -1)...,
		)
		e.addLinear(terms, 0)
	}

	// Target equation: Σ (-1)^(|M|+1) · 2^d[M] = n. The v = 0 literal
	// carries weight 2^0 = 1 here, unlike the size expansions above.
	var targetTerms []term
	for mask := 1; mask <= numMasks; mask++ {
		sign := 1
		if bits.OnesCount(uint(mask))%2 == 0 {
			sign = -1
		}
		for v := 0; v <= e.ceiling; v++ {
			targetTerms = append(targetTerms, term{
				lit:    e.varOf(mask, v),
				weight: sign * (1 << uint(v)),
			})
		}
	}
	e.addEqual(targetTerms, int(n))
}

// decode reads the d-vector out of a satisfying model.
func (e *encoder) decode(model []bool) lattice.DVector {
	d := lattice.NewDVector(e.k)
	for mask := 1; mask <= lattice.NumMasks(e.k); mask++ {
		for v := 0; v <= e.ceiling; v++ {
			if model[e.varOf(mask, v)-1] {
				d.SetSize(mask, v)
				break
			}
		}
	}
	return d
}
