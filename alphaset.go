package alphaset

import (
	"context"
	"time"

	"github.com/hupe1980/alphaset/lattice"
)

// Result is the outcome of a feasibility query for one (n, k) pair.
type Result struct {
	// Feasible is true when a witnessing d-vector was found (α(n) ≤ k).
	// False means the backend exhausted its search space relative to the
	// ceiling (α(n) > k) — a valid negative proof, not an error.
	Feasible bool

	// Witness is the satisfying d-vector when Feasible, one intersection
	// size per nonempty mask. Nil otherwise.
	Witness lattice.DVector

	// Candidates counts the fully-assigned candidate vectors examined.
	// Zero for backends that do not enumerate (or when a hint short-circuits
	// the search).
	Candidates uint64

	// Ceiling is the per-mask size bound the query ran under. A negative
	// result only proves α(n) > k relative to this ceiling.
	Ceiling int

	// Elapsed is the wall-clock duration of the query.
	Elapsed time.Duration
}

// Oracle is a feasibility backend for the shared lattice constraint model.
//
// Implementations must be stateless across calls: each (n, k) query is
// independent, which keeps external checkpointing of long sweeps correct.
// A canceled ctx aborts the search and surfaces ctx.Err(); callers must
// treat an aborted search as unknown, never as infeasible.
type Oracle interface {
	Check(ctx context.Context, n uint64, k int, opts ...CheckOption) (Result, error)
}

// CheckOptions holds per-query tuning shared by all backends.
type CheckOptions struct {
	// Ceiling bounds every intersection size. Zero means the backend's
	// default bound derived from n's bit length.
	Ceiling int

	// Hint is a previously feasible d-vector used as a warm start, typically
	// the witness for a neighboring n during a sweep. Backends are free to
	// ignore it; it never changes the verdict.
	Hint lattice.DVector
}

// CheckOption configures a single feasibility query.
type CheckOption func(*CheckOptions)

// WithCeiling overrides the maximum admissible intersection size.
func WithCeiling(ceiling int) CheckOption {
	return func(o *CheckOptions) {
		o.Ceiling = ceiling
	}
}

// WithHint seeds the query with a prior feasible d-vector.
func WithHint(hint lattice.DVector) CheckOption {
	return func(o *CheckOptions) {
		o.Hint = hint
	}
}

// ApplyCheckOptions folds option functions into a CheckOptions value.
// It is a helper for Oracle implementations, not for callers.
func ApplyCheckOptions(opts ...CheckOption) CheckOptions {
	var o CheckOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
