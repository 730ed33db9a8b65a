// Package stream defines the stream descriptor and the contract of the service that resolves it into bytes.
package stream

import (
	"context"
	"io"
)

// QualityBest is the label every resolver accepts for "highest available quality".
const QualityBest = "best"

// Handle is a resolved, blocking byte source for one stream.
// Close must be safe to call while a Read is pending on another goroutine
// and must make that Read return.
type Handle interface {
	io.ReadCloser
}

// Seekable is implemented by handles that can reposition their byte stream.
// A handle that implements io.Seeker but reports CanSeek() == false is treated as not seekable.
type Seekable interface {
	io.Seeker
	CanSeek() bool
}

// Resolver turns a URL and a quality label into a Handle.
type Resolver interface {
	// Resolve opens the stream. Failures are reported as *ResolutionError.
	Resolve(ctx context.Context, url, quality string) (Handle, error)

	// Qualities lists the quality labels available for url.
	Qualities(ctx context.Context, url string) ([]string, error)
}

// CanSeek reports whether h supports repositioning.
func CanSeek(h Handle) bool {
	if s, ok := h.(Seekable); ok {
		return s.CanSeek()
	}
	_, ok := h.(io.Seeker)
	return ok
}
