package sat

import (
	"context"
	"fmt"
	"math/bits"
	"time"

	"github.com/crillab/gophersat/solver"

	"github.com/hupe1980/alphaset"
	"github.com/hupe1980/alphaset/lattice"
)

// SlackBits is the headroom added to n's bit length when deriving the
// default ceiling, matching the constraint-model contract: a witness may
// need slightly larger sets than n's own width suggests.
const SlackBits = 4

// Oracle is the SAT-backed feasibility oracle. It is stateless across
// Check calls and safe for concurrent use.
type Oracle struct {
	logger *alphaset.Logger
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithLogger sets the logger used for verdict reporting.
func WithLogger(logger *alphaset.Logger) Option {
	return func(o *Oracle) {
		o.logger = logger
	}
}

// New creates a SAT Oracle.
func New(opts ...Option) *Oracle {
	o := &Oracle{
		logger: alphaset.NoopLogger(),
	}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// maxCeiling is the largest ceiling whose 2^v target weights keep every
// normalized constraint sum inside a machine word: the absolute weights of
// the target equation total numMasks·(2^(ceiling+1)-1).
func maxCeiling(k int) int {
	return 61 - bits.Len(uint(lattice.NumMasks(k))) - 1
}

// DefaultCeiling derives the per-mask size bound for target n and k sets.
func DefaultCeiling(n uint64, k int) int {
	ceiling := bits.Len64(n) - 1 + SlackBits
	if ceiling > 60 {
		ceiling = 60
	}
	if m := maxCeiling(k); ceiling > m {
		ceiling = m
	}
	return ceiling
}

// Check decides feasibility of α(n) ≤ k by SAT solving.
func (o *Oracle) Check(ctx context.Context, n uint64, k int, opts ...alphaset.CheckOption) (alphaset.Result, error) {
	if n == 0 {
		return alphaset.Result{}, alphaset.ErrNonPositiveTarget
	}
	if k < 1 {
		return alphaset.Result{}, alphaset.ErrInvalidK
	}
	if err := ctx.Err(); err != nil {
		return alphaset.Result{}, err
	}

	co := alphaset.ApplyCheckOptions(opts...)
	ceiling := co.Ceiling
	if ceiling <= 0 {
		ceiling = DefaultCeiling(n, k)
	}
	if ceiling > maxCeiling(k) || bits.Len64(n)-1 > maxCeiling(k) {
		return alphaset.Result{}, fmt.Errorf("sat: n=%d, ceiling=%d: %w", n, ceiling, alphaset.ErrTargetTooLarge)
	}

	logger := o.logger.WithTarget(n).WithK(k).WithBackend("sat")
	started := time.Now()

	// A hint that already witnesses n makes solving unnecessary. This is
	// the common case in consecutive-n sweeps, where the previous witness
	// often still applies or is one step away.
	if len(co.Hint) == lattice.NumMasks(k) && lattice.Satisfies(co.Hint, k, n) {
		logger.Debug("hint witnesses target, skipping solve")
		return alphaset.Result{
			Feasible: true,
			Witness:  co.Hint.Clone(),
			Ceiling:  ceiling,
			Elapsed:  time.Since(started),
		}, nil
	}

	enc := &encoder{k: k, ceiling: ceiling}
	enc.encode(n)
	logger.Debug("encoded lattice model",
		"vars", enc.numVars(),
		"constraints", len(enc.constrs),
		"ceiling", ceiling,
	)

	s := solver.New(solver.ParsePBConstrs(enc.constrs))
	status := s.Solve()

	// gophersat runs to completion; cancellation can only be honored at
	// the boundary. A canceled query is unknown regardless of status.
	if err := ctx.Err(); err != nil {
		return alphaset.Result{Ceiling: ceiling, Elapsed: time.Since(started)}, err
	}

	res := alphaset.Result{
		Ceiling: ceiling,
		Elapsed: time.Since(started),
	}
	if status != solver.Sat {
		logger.Info("unsat", "elapsed", res.Elapsed)
		return res, nil
	}

	witness := enc.decode(s.Model())
	if !lattice.Satisfies(witness, k, n) {
		return res, fmt.Errorf("sat: model decodes to a non-witness for n=%d, k=%d", n, k)
	}
	res.Feasible = true
	res.Witness = witness
	logger.Info("sat", "elapsed", res.Elapsed)
	return res, nil
}
