// Package checkpoint provides durable progress state for long-running
// sweeps.
//
// A sweep over consecutive targets is designed to be interrupted at any
// point and resumed later; the feasibility oracles stay stateless, so all
// cross-run state lives in a single State blob per k, written through a
// Store. Stores must make Save atomic: a crash mid-write may lose the
// latest checkpoint but never corrupt the previous one.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, temp-file + rename, zstd-compressed JSON
//   - MemoryStore: in-process map, for tests
//   - s3.Store: Amazon S3, for sweeps running on ephemeral instances
package checkpoint

import (
	"context"
	"os"
	"time"
)

// ErrNotFound is returned when no checkpoint exists for the requested k.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// State is the resumable progress of one sweep.
type State struct {
	// K is the set count the sweep proves bounds against.
	K int `json:"k"`

	// LastN is the largest target already decided.
	LastN uint64 `json:"last_n_checked"`

	// Found lists every n with α(n) > K discovered so far.
	Found []uint64 `json:"found_alpha_gt_k"`

	// TotalChecks counts targets decided across all runs of this sweep.
	TotalChecks uint64 `json:"total_checks"`

	// ElapsedSeconds accumulates wall-clock search time across runs.
	ElapsedSeconds float64 `json:"elapsed_seconds"`

	// Timestamp records when the checkpoint was written.
	Timestamp time.Time `json:"timestamp"`
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := *s
	c.Found = append([]uint64(nil), s.Found...)
	return &c
}

// Store persists sweep state keyed by k.
type Store interface {
	// Load returns the checkpoint for k, or ErrNotFound.
	Load(ctx context.Context, k int) (*State, error)

	// Save atomically replaces the checkpoint for st.K.
	Save(ctx context.Context, st *State) error
}
