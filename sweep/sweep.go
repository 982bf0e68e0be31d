// Package sweep drives feasibility checks over consecutive targets.
//
// A Driver walks n across a range, asking an Oracle whether α(n) ≤ k and
// recording every n it proves α(n) > k for. Progress is checkpointed
// through a checkpoint.Store on every discovery, on a periodic timer and on
// interruption, so a killed sweep resumes where it left off. The witness of
// each feasible n is chained into the next query as a warm-start hint; a
// discovery resets the hint, since the chained witness just failed.
//
// Retries belong here, not in the oracles: the driver moves on across
// values of n, it never retries within one computation.
package sweep

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/alphaset"
	"github.com/hupe1980/alphaset/checkpoint"
	"github.com/hupe1980/alphaset/lattice"
)

// Driver runs resumable sweeps. Oracles stay stateless; all cross-run
// state goes through the checkpoint store.
type Driver struct {
	oracle alphaset.Oracle
	store  checkpoint.Store
	logger *alphaset.Logger

	reportEvery time.Duration
	flushEvery  time.Duration
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger for discoveries and progress.
func WithLogger(logger *alphaset.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithReportInterval sets the wall-clock interval between progress logs.
func WithReportInterval(interval time.Duration) Option {
	return func(d *Driver) {
		d.reportEvery = interval
	}
}

// WithFlushInterval sets how often the checkpoint is written independently
// of discoveries.
func WithFlushInterval(interval time.Duration) Option {
	return func(d *Driver) {
		d.flushEvery = interval
	}
}

// New creates a Driver sweeping with the given oracle and checkpoint store.
func New(oracle alphaset.Oracle, store checkpoint.Store, opts ...Option) *Driver {
	d := &Driver{
		oracle:      oracle,
		store:       store,
		logger:      alphaset.NoopLogger(),
		reportEvery: 30 * time.Second,
		flushEvery:  time.Minute,
	}
	for _, fn := range opts {
		fn(d)
	}
	return d
}

// Summary reports what one Run covered.
type Summary struct {
	// Checked counts targets decided during this run.
	Checked uint64

	// Found lists every n with α(n) > k known for this sweep, including
	// discoveries from resumed earlier runs.
	Found []uint64

	// LastN is the largest target decided.
	LastN uint64

	// Elapsed is this run's wall-clock duration.
	Elapsed time.Duration
}

// Run sweeps n over [start, end], resuming from a checkpoint when one
// exists for the same k. end == 0 means unbounded: the sweep runs until the
// context is canceled. Cancellation flushes a final checkpoint and returns
// the summary alongside ctx.Err().
func (d *Driver) Run(ctx context.Context, k int, start, end uint64) (*Summary, error) {
	if k < 1 {
		return nil, alphaset.ErrInvalidK
	}
	if start == 0 {
		start = 1
	}

	st, err := d.store.Load(ctx, k)
	switch {
	case errors.Is(err, checkpoint.ErrNotFound):
		st = &checkpoint.State{K: k}
	case err != nil:
		return nil, err
	case st.LastN >= start:
		start = st.LastN + 1
		d.logger.Info("resuming sweep", "k", k, "from", start, "found_so_far", len(st.Found))
	}

	run := &sweepRun{
		driver:   d,
		k:        k,
		state:    st,
		started:  time.Now(),
		reporter: rate.NewLimiter(rate.Every(d.reportEvery), 1),
	}

	g, gctx := errgroup.WithContext(ctx)
	loopCtx, stopFlusher := context.WithCancel(gctx)
	g.Go(func() error {
		defer stopFlusher()
		return run.loop(loopCtx, start, end)
	})
	g.Go(func() error {
		run.flushLoop(loopCtx)
		return nil
	})

	runErr := g.Wait()

	// Final flush regardless of how the loop ended; the store call gets a
	// fresh context because ctx may already be canceled.
	flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := run.flush(flushCtx); err != nil {
		d.logger.Error("final checkpoint flush failed", "error", err)
	}

	summary := run.summary()
	if runErr != nil {
		return summary, runErr
	}
	return summary, nil
}

type sweepRun struct {
	driver  *Driver
	k       int
	started time.Time

	mu      sync.Mutex
	state   *checkpoint.State
	checked uint64

	reporter *rate.Limiter
}

func (r *sweepRun) loop(ctx context.Context, start, end uint64) error {
	logger := r.driver.logger.WithK(r.k)
	var hint lattice.DVector

	for n := start; end == 0 || n <= end; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		opts := []alphaset.CheckOption{}
		if hint != nil {
			opts = append(opts, alphaset.WithHint(hint))
		}
		res, err := r.driver.oracle.Check(ctx, n, r.k, opts...)
		if err != nil {
			return err
		}

		if res.Feasible {
			hint = res.Witness
			r.record(n, 0)
		} else {
			hint = nil
			r.record(n, n)
			logger.Info("found target above bound", "n", n, "candidates", res.Candidates)
			if err := r.flush(ctx); err != nil {
				return err
			}
		}

		if r.reporter.Allow() {
			r.mu.Lock()
			checked := r.checked
			r.mu.Unlock()
			elapsed := time.Since(r.started)
			logger.Info("sweep progress",
				"n", n,
				"checked", checked,
				"rate_per_sec", float64(checked)/elapsed.Seconds(),
			)
		}
	}
	return nil
}

// record updates the shared state after one decided target. found is 0 for
// a feasible target, or the discovered n.
func (r *sweepRun) record(n, found uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checked++
	r.state.LastN = n
	r.state.TotalChecks++
	if found != 0 {
		r.state.Found = append(r.state.Found, found)
	}
}

// flushLoop checkpoints on a timer until the search loop finishes.
func (r *sweepRun) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(r.driver.flushEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.flush(ctx); err != nil {
				r.driver.logger.Error("periodic checkpoint flush failed", "error", err)
			}
		}
	}
}

func (r *sweepRun) flush(ctx context.Context) error {
	r.mu.Lock()
	if r.state.TotalChecks == 0 {
		// Nothing decided yet; keep any existing checkpoint untouched.
		r.mu.Unlock()
		return nil
	}
	st := r.state.Clone()
	st.ElapsedSeconds += time.Since(r.started).Seconds()
	st.Timestamp = time.Now()
	r.mu.Unlock()
	return r.driver.store.Save(ctx, st)
}

func (r *sweepRun) summary() *Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &Summary{
		Checked: r.checked,
		Found:   append([]uint64(nil), r.state.Found...),
		LastN:   r.state.LastN,
		Elapsed: time.Since(r.started),
	}
}
