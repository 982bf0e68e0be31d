// Package s3 persists sweep checkpoints in Amazon S3.
//
// Long sweeps often run on ephemeral or spot instances; an S3-backed store
// keeps progress durable across instance loss. Checkpoints are single small
// objects, written last-writer-wins: a sweep has exactly one writer.
package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/klauspost/compress/zstd"

	"github.com/hupe1980/alphaset/checkpoint"
)

// Client is the subset of the S3 API the store needs. *s3.Client satisfies
// it; tests substitute fakes.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	manager.UploadAPIClient
}

// Store implements checkpoint.Store on S3.
type Store struct {
	client   Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
}

// NewStore creates an S3 checkpoint store. prefix is prepended to all keys
// (e.g. "alpha/sweeps/").
func NewStore(client Client, bucket, prefix string) (*Store, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   prefix,
		encoder:  encoder,
		decoder:  decoder,
	}, nil
}

func (s *Store) key(k int) string {
	return path.Join(s.prefix, fmt.Sprintf("sweep_k%d.json.zst", k))
}

// Load returns the checkpoint for k, or checkpoint.ErrNotFound.
func (s *Store) Load(ctx context.Context, k int) (*checkpoint.State, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(k)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, checkpoint.ErrNotFound
		}
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, checkpoint.ErrNotFound
		}
		return nil, fmt.Errorf("checkpoint: s3 get: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: s3 read: %w", err)
	}
	raw, err := s.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: decompress: %w", err)
	}
	var st checkpoint.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("checkpoint: decode: %w", err)
	}
	return &st, nil
}

// Save replaces the checkpoint for st.K. S3 PUTs are atomic per object, so
// readers never observe a partial checkpoint.
func (s *Store) Save(ctx context.Context, st *checkpoint.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("checkpoint: encode: %w", err)
	}
	data := s.encoder.EncodeAll(raw, nil)

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(st.K)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("checkpoint: s3 upload: %w", err)
	}
	return nil
}
