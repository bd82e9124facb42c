package interfaces

import (
	"context"
	"io"
)

// Stream is an open archive download
type Stream struct {
	Body io.ReadCloser
	Size int64 // Total length reported by the transport, <= 0 when unknown
}

// Fetcher opens a byte stream for a URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Stream, error)
}
