// Package sat implements the feasibility oracle on a SAT solver.
//
// The lattice model is encoded into pseudo-boolean constraints for
// gophersat: every mask gets one-hot value variables x[mask][v] ⇔
// d[mask] = v over v ∈ [0, M], and the monotonicity, Möbius
// non-negativity, symmetry-breaking and target constraints become linear
// inequalities over the value-weighted literals. The target equation uses
// weights 2^v, which bounds the admissible ceiling M so that weight sums
// stay inside a machine word; targets beyond that width are rejected with
// ErrTargetTooLarge rather than silently truncated.
//
// The solver backend trades the exhaustive engine's doubly exponential
// enumeration for clause learning, which is the practical choice once k
// grows past brute-force range. Verdicts are interchangeable with the
// exhaustive engine: same constraint semantics, same Result shape.
//
// A warm-start hint (the witness for a neighboring target during a sweep)
// is honored by checking it against the lattice predicates first; when the
// hint already witnesses n, no solving happens at all. gophersat exposes no
// native hint channel, and in consecutive-n sweeps the pre-check is where
// nearly all of the hint's value lies.
package sat
