package media

import (
	"fmt"
	"sync"

	"github.com/mosaic-cli/mosaic/log"
)

// Table maps opaque handles to live adapters. It is the only structure shared
// between the control goroutine and engine goroutines.
type Table struct {
	mu      sync.Mutex
	next    Handle
	live    map[Handle]*Adapter
	onAlien func(h Handle)
}

// NewTable returns an empty table. Handles start at 1.
func NewTable() *Table {
	return &Table{
		next: 1,
		live: make(map[Handle]*Adapter),
	}
}

// OnUnknownHandle replaces the reaction to a callback carrying a never-issued handle.
// The default logs the violation and panics with ErrUnknownHandle.
func (t *Table) OnUnknownHandle(fn func(h Handle)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onAlien = fn
}

// Len returns the number of live adapters.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Lookup resolves h to its adapter while the adapter is open.
func (t *Table) Lookup(h Handle) (*Adapter, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	a, ok := t.live[h]
	return a, ok
}

func (t *Table) insert(a *Adapter) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := t.next
	t.next++
	t.live[h] = a
	return h
}

func (t *Table) remove(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.live, h)
}

// resolve looks h up for a callback. retired is true for a handle that was issued
// and has since been closed, which is the normal teardown race.
func (t *Table) resolve(h Handle) (a *Adapter, retired bool) {
	t.mu.Lock()
	a, ok := t.live[h]
	issued := h != 0 && h < t.next
	alien := t.onAlien
	t.mu.Unlock()

	if ok {
		return a, false
	}
	if issued {
		return nil, true
	}

	log.Errorf("media: callback delivered for handle %d which was never issued", h)
	if alien != nil {
		alien(h)
		return nil, true
	}
	panic(fmt.Errorf("%w: %d", ErrUnknownHandle, h))
}

// Callbacks returns the callback set bound to this table.
func (t *Table) Callbacks() Callbacks {
	return Callbacks{
		Open: func(h Handle) int {
			a, retired := t.resolve(h)
			if retired {
				return StatusError
			}
			return a.Open()
		},
		Read: func(h Handle, buf []byte, length int) int {
			a, retired := t.resolve(h)
			if retired {
				log.Debugf("media: read on retired handle %d", h)
				return 0
			}
			return a.Read(buf, length)
		},
		Seek: func(h Handle, offset uint64) int {
			a, retired := t.resolve(h)
			if retired {
				return StatusError
			}
			return a.Seek(offset)
		},
		Close: func(h Handle) {
			a, retired := t.resolve(h)
			if retired {
				return
			}
			a.Close()
		},
	}
}
