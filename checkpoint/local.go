package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// LocalStore persists checkpoints as zstd-compressed JSON files in a
// directory, one file per k. Saves go through a temp file and rename, so a
// crash mid-write leaves the previous checkpoint intact.
type LocalStore struct {
	dir     string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewLocalStore creates a LocalStore rooted at dir, creating it if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("checkpoint: create dir: %w", err)
	}
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir, encoder: encoder, decoder: decoder}, nil
}

func (s *LocalStore) path(k int) string {
	return filepath.Join(s.dir, fmt.Sprintf("sweep_k%d.json.zst", k))
}

// Load returns the checkpoint for k, or ErrNotFound.
func (s *LocalStore) Load(_ context.Context, k int) (*State, error) {
	data, err := os.ReadFile(s.path(k))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("checkpoint: read: %w", err)
	}
	raw, err := s.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: decompress: %w", err)
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("checkpoint: decode: %w", err)
	}
	return &st, nil
}

// Save atomically replaces the checkpoint for st.K.
func (s *LocalStore) Save(_ context.Context, st *State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("checkpoint: encode: %w", err)
	}
	data := s.encoder.EncodeAll(raw, nil)

	tmp, err := os.CreateTemp(s.dir, "sweep_*.tmp")
	if err != nil {
		return fmt.Errorf("checkpoint: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("checkpoint: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("checkpoint: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("checkpoint: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(st.K)); err != nil {
		return fmt.Errorf("checkpoint: rename: %w", err)
	}
	return nil
}
