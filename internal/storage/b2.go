package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kurin/blazer/b2"
)

// b2Prefix keeps uploads apart from anything else in the bucket
const b2Prefix = "uploads/"

// B2Storage keeps files in a Backblaze B2 bucket
type B2Storage struct {
	client *b2.Client
	bucket *b2.Bucket
	logger *slog.Logger
}

func NewB2Storage(ctx context.Context, accountID, appKey, bucketName string, logger *slog.Logger) (*B2Storage, error) {
	client, err := b2.NewClient(ctx, accountID, appKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create b2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &B2Storage{client: client, bucket: bucket, logger: logger}, nil
}

func (s *B2Storage) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	name, err := validateName(name)
	if err != nil {
		return "", err
	}

	obj := s.bucket.Object(b2Prefix + name)
	if _, err := obj.Attrs(ctx); err == nil {
		return "", fmt.Errorf("%w: %s", ErrExists, name)
	} else if !b2.IsNotExist(err) {
		return "", fmt.Errorf("failed to stat object: %w", err)
	}

	w := obj.NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	return name, nil
}

func (s *B2Storage) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	name, err := validateName(ref)
	if err != nil || name != ref {
		return nil, ErrNotFound
	}

	obj := s.bucket.Object(b2Prefix + name)
	if _, err := obj.Attrs(ctx); err != nil {
		if b2.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}
	return obj.NewReader(ctx), nil
}

func (s *B2Storage) Delete(ctx context.Context, ref string) error {
	name, err := validateName(ref)
	if err != nil {
		return err
	}
	if err := s.bucket.Object(b2Prefix + name).Delete(ctx); err != nil && !b2.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *B2Storage) Clear(ctx context.Context) (int, error) {
	removed := 0
	iter := s.bucket.List(ctx, b2.ListPrefix(b2Prefix))
	for iter.Next() {
		obj := iter.Object()
		if err := obj.Delete(ctx); err != nil {
			s.logger.Warn("Failed to remove upload", "name", obj.Name(), "error", err)
			continue
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to list objects: %w", err)
	}
	return removed, nil
}
