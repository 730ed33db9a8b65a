package stream

import (
	"errors"
	"fmt"
)

var (
	// ErrResolution matches every *ResolutionError.
	ErrResolution = errors.New("stream resolution failed")

	// ErrInvalidDescriptor is returned by NewDescriptor for malformed input.
	ErrInvalidDescriptor = errors.New("invalid stream descriptor")
)

// ResolutionError reports a URL or quality that the resolver could not turn into a stream.
type ResolutionError struct {
	URL     string
	Quality string
	Err     error
}

// NewResolutionError wraps err with the descriptor that failed to resolve.
func NewResolutionError(url, quality string, err error) *ResolutionError {
	return &ResolutionError{URL: url, Quality: quality, Err: err}
}

func (e *ResolutionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("resolve %s (%s)", e.URL, e.Quality)
	}
	return fmt.Sprintf("resolve %s (%s): %v", e.URL, e.Quality, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrResolution) hold for every ResolutionError.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}
