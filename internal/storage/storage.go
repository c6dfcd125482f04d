package storage

import (
	"context"
	"io"
	"time"
)

// Package storage holds the attachment store abstraction. Attachment bytes
// live in an S3-compatible object store; implementations stream and never
// touch local disk.

// PutOptions are optional parameters for uploading an attachment.
// Size should be the exact byte count if known, -1 otherwise.
type PutOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored attachment.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the attachment store consumed by the document service: write
// an upload under a key, stream it back for the public /uploads route, and
// remove it when a failed record insert rolls the upload back.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (ObjectInfo, error)
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
}
