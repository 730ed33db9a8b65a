package media

import (
	"errors"
	"io"
	"math"
	"sync/atomic"

	"github.com/mosaic-cli/mosaic/log"
	"github.com/mosaic-cli/mosaic/stream"
)

// maxEmptyReads bounds consecutive (0, nil) reads before the handle is considered stuck.
const maxEmptyReads = 100

// Adapter exclusively owns one stream.Handle and serves it to an engine.
type Adapter struct {
	handle stream.Handle
	table  *Table
	id     Handle
	closed atomic.Bool
}

// NewAdapter wraps handle and registers the adapter in table.
func NewAdapter(table *Table, handle stream.Handle) *Adapter {
	a := &Adapter{
		handle: handle,
		table:  table,
	}
	a.id = table.insert(a)
	return a
}

// Handle returns the opaque token the engine uses to reach this adapter.
func (a *Adapter) Handle() Handle {
	return a.id
}

// Closed reports whether Close has been called.
func (a *Adapter) Closed() bool {
	return a.closed.Load()
}

// Open always succeeds: the stream was resolved before the adapter existed.
func (a *Adapter) Open() int {
	return StatusOK
}

// Read performs one blocking read of at most length bytes into buf[0:length].
// It returns the number of bytes written, 0 at end of stream, or StatusError.
func (a *Adapter) Read(buf []byte, length int) int {
	if a.closed.Load() {
		return 0
	}

	if length > len(buf) {
		length = len(buf)
	}
	if length <= 0 {
		return 0
	}
	// cap the capacity too, so the handle cannot reach past length
	dst := buf[:length:length]

	for empty := 0; ; empty++ {
		if empty == maxEmptyReads {
			log.WithFields(map[string]any{"handle": a.id}).Warnf("media: read: %v", io.ErrNoProgress)
			return StatusError
		}

		n, err := a.handle.Read(dst)
		if n > length {
			n = length
		}
		if n > 0 {
			return n
		}

		switch {
		case err == nil:
			continue
		case errors.Is(err, io.EOF), a.closed.Load():
			return 0
		default:
			log.WithFields(map[string]any{"handle": a.id}).Warnf("media: read: %v", err)
			return StatusError
		}
	}
}

// Seek repositions the stream to an absolute byte offset when the handle supports it.
func (a *Adapter) Seek(offset uint64) int {
	if a.closed.Load() {
		return StatusError
	}

	if !stream.CanSeek(a.handle) {
		return StatusSeekUnsupported
	}
	if offset > math.MaxInt64 {
		return StatusError
	}

	seeker := a.handle.(io.Seeker)
	if _, err := seeker.Seek(int64(offset), io.SeekStart); err != nil {
		log.WithFields(map[string]any{"handle": a.id}).Warnf("media: seek to %d: %v", offset, err)
		return StatusError
	}
	return StatusOK
}

// Close releases the handle exactly once and retires the opaque token.
// Later and concurrent calls are no-ops.
func (a *Adapter) Close() {
	if !a.closed.CompareAndSwap(false, true) {
		return
	}

	if err := a.handle.Close(); err != nil {
		log.WithFields(map[string]any{"handle": a.id}).Warnf("media: close: %v", err)
	}
	a.table.remove(a.id)
}
