// Package lattice defines the intersection-size lattice shared by every
// feasibility backend.
//
// For k sets S_1..S_k there are 2^k-1 nonempty index subsets ("masks",
// encoded as bit patterns over k bits). A DVector assigns an intersection
// size to every mask: d[{i}] is |S_i| and d[K] for |K|>1 is the size of the
// intersection of the sets named by K. The package exposes the pure
// predicates every backend agrees on:
//
//   - Monotonicity: A ⊇ B implies d[A] ≤ d[B]
//   - Möbius non-negativity: every region size is ≥ 0
//   - Canonical form: singleton sizes are non-increasing
//   - Target equation: Σ (-1)^(|M|+1) · 2^d[M] = n, evaluated exactly
//
// # Realizability
//
// A d-vector with non-negative region sizes is realizable by an actual
// finite set system; that equivalence is a standing lattice-theory fact and
// is relied on, not re-proven. No package here constructs witness sets from
// a numeric d-vector. Only the adf verifier ever touches literal sets.
//
// All functions are stateless and safe for concurrent use.
package lattice
