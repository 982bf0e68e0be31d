// Package exhaustive implements the brute-force feasibility oracle.
//
// The engine enumerates every intersection-size vector admissible under the
// lattice constraints, bounded per mask by a size ceiling, and reports the
// first witness or a full exhaustion proof. The outer loop ranges over
// singleton-size tuples in canonical non-increasing order; non-canonical
// tuples are rejected before any inner enumeration. Non-singleton masks are
// then assigned in ascending popcount order, each bounded by the minimum of
// its already-assigned proper submask sizes, so monotonicity holds by
// construction and the bound tightens as larger masks are fixed. Every
// fully-assigned candidate is checked against Möbius non-negativity before
// the exact target equation, since region checks reject more candidates per
// unit cost.
//
// Runtime is doubly exponential in k in the worst case. That is inherent to
// the problem; callers needing bounded latency cancel the context and must
// treat cancellation as unknown, not infeasible.
package exhaustive

import (
	"context"
	"math/big"
	"math/bits"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/alphaset"
	"github.com/hupe1980/alphaset/lattice"
)

// Engine is the exhaustive feasibility oracle. It is stateless across
// Check calls and safe for concurrent use.
type Engine struct {
	logger        *alphaset.Logger
	progressEvery time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for progress and verdict reporting.
func WithLogger(logger *alphaset.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithProgressInterval sets the wall-clock interval between progress
// reports. Reports are observability only and never affect the search.
func WithProgressInterval(interval time.Duration) Option {
	return func(e *Engine) {
		e.progressEvery = interval
	}
}

// New creates an exhaustive Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:        alphaset.NoopLogger(),
		progressEvery: 5 * time.Second,
	}
	for _, fn := range opts {
		fn(e)
	}
	return e
}

// DefaultCeiling is the proven per-set size bound for target n: a set of
// size s contributes 2^s to the signature, so no set can exceed n's own
// bit length minus one.
func DefaultCeiling(n uint64) int {
	if n == 0 {
		return 0
	}
	return bits.Len64(n) - 1
}

// Check decides feasibility of α(n) ≤ k by exhaustive enumeration.
// It returns the first witnessing d-vector found, or an exhaustion result
// with Feasible false after covering the full bounded lattice.
func (e *Engine) Check(ctx context.Context, n uint64, k int, opts ...alphaset.CheckOption) (alphaset.Result, error) {
	if n == 0 {
		return alphaset.Result{}, alphaset.ErrNonPositiveTarget
	}
	if k < 1 {
		return alphaset.Result{}, alphaset.ErrInvalidK
	}

	o := alphaset.ApplyCheckOptions(opts...)
	ceiling := o.Ceiling
	if ceiling <= 0 {
		ceiling = DefaultCeiling(n)
	}

	logger := e.logger.WithTarget(n).WithK(k)
	logger.Info("exhaustive search started", "ceiling", ceiling)

	s := &search{
		n:        new(big.Int).SetUint64(n),
		k:        k,
		ceiling:  ceiling,
		d:        lattice.NewDVector(k),
		inner:    nonSingletonMasks(k),
		logger:   logger,
		reporter: rate.NewLimiter(rate.Every(e.progressEvery), 1),
		started:  time.Now(),
	}

	found, err := s.run(ctx)
	res := alphaset.Result{
		Feasible:   found,
		Candidates: s.count,
		Ceiling:    ceiling,
		Elapsed:    time.Since(s.started),
	}
	if err != nil {
		return res, err
	}
	if found {
		res.Witness = s.d.Clone()
		logger.Info("decomposition found",
			"candidates", s.count,
			"elapsed", res.Elapsed,
		)
	} else {
		logger.Info("search space exhausted",
			"candidates", s.count,
			"elapsed", res.Elapsed,
		)
	}
	return res, nil
}

// nonSingletonMasks returns the masks of popcount ≥ 2 in ascending popcount
// order, ties by value. Every proper submask of an entry either is a
// singleton or precedes it, so upper bounds only depend on fixed masks.
func nonSingletonMasks(k int) []int {
	var masks []int
	for _, m := range lattice.MasksByPopcount(k) {
		if bits.OnesCount(uint(m)) >= 2 {
			masks = append(masks, m)
		}
	}
	return masks
}

type search struct {
	n       *big.Int
	k       int
	ceiling int
	d       lattice.DVector
	inner   []int
	count   uint64

	logger   *alphaset.Logger
	reporter *rate.Limiter
	started  time.Time
}

// run iterates singleton-size tuples and, for each canonical one, descends
// into the inner enumeration. It returns true as soon as a witness is
// complete in s.d.
func (s *search) run(ctx context.Context) (bool, error) {
	singletons := make([]int, s.k)
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		if canonical(singletons) {
			for i, size := range singletons {
				s.d.SetSize(lattice.Singleton(i), size)
			}
			found, err := s.assign(ctx, 0)
			if err != nil || found {
				return found, err
			}
		}

		if !increment(singletons, s.ceiling) {
			return false, nil
		}
	}
}

// assign recursively fixes the i-th non-singleton mask. Each mask's range
// is [0, min(ceiling, already-assigned proper submask sizes)].
func (s *search) assign(ctx context.Context, i int) (bool, error) {
	if i == len(s.inner) {
		return s.candidate(ctx)
	}

	mask := s.inner[i]
	hi := s.ceiling
	for sub := 1; sub < mask; sub++ {
		if lattice.Contains(mask, sub) && s.d.Size(sub) < hi {
			hi = s.d.Size(sub)
		}
	}

	for v := 0; v <= hi; v++ {
		s.d.SetSize(mask, v)
		found, err := s.assign(ctx, i+1)
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}

// candidate evaluates one fully-assigned d-vector: regions first, then the
// exact target equation.
func (s *search) candidate(ctx context.Context) (bool, error) {
	s.count++

	if s.reporter.Allow() {
		s.logger.Info("search progress",
			"candidates", s.count,
			"elapsed", time.Since(s.started),
		)
		// Cancellation is only polled on the report path and per singleton
		// tuple; checking every candidate would dominate the inner loop.
		if err := ctx.Err(); err != nil {
			return false, err
		}
	}

	if !lattice.NonNegativeRegions(s.d, s.k) {
		return false, nil
	}
	return lattice.Target(s.d, s.k).Cmp(s.n) == 0, nil
}

// canonical reports whether the tuple is non-increasing.
func canonical(sizes []int) bool {
	for i := 0; i < len(sizes)-1; i++ {
		if sizes[i] < sizes[i+1] {
			return false
		}
	}
	return true
}

// increment advances the tuple odometer-style through [0, ceiling]^k.
// It returns false once the whole product has been covered.
func increment(sizes []int, ceiling int) bool {
	for i := len(sizes) - 1; i >= 0; i-- {
		if sizes[i] < ceiling {
			sizes[i]++
			return true
		}
		sizes[i] = 0
	}
	return false
}
