package storage

import (
	"context"
	"io"
)

// PutInput describes an object being stored.
type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

// PutResult points at the stored object.
type PutResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Storage persists uploaded files (device photos, receipts, the shop logo).
type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}
