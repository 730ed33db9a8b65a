// Package registry owns the live tiles of a viewing session.
//
// A Registry is driven from a single control goroutine: Commit, Remove, the mute
// controls, export and history all mutate or read state without locking. Only
// Prepare, which talks to the stream resolver, may run elsewhere. Engines drive
// each tile's adapter through media callbacks and never call back into the registry.
package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/mosaic-cli/mosaic/grid"
	"github.com/mosaic-cli/mosaic/history"
	"github.com/mosaic-cli/mosaic/log"
	"github.com/mosaic-cli/mosaic/media"
	"github.com/mosaic-cli/mosaic/stream"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Engine renders tiles by pulling bytes through media callbacks.
type Engine interface {
	// Attach starts playback of the adapter behind h at the given placement.
	Attach(h media.Handle, cb media.Callbacks, title string, at grid.Placement) error

	// SetMute changes the audio state of the tile behind h.
	SetMute(h media.Handle, muted bool) error

	// Detach stops playback of the tile behind h. Detaching an unknown handle is a no-op.
	Detach(h media.Handle) error
}

// Options tunes a Registry.
type Options struct {
	// KeepPrevious makes Shutdown carry the history loaded at startup over to the next session.
	KeepPrevious bool
	// SaveOnExit makes Shutdown record history at all.
	SaveOnExit bool
}

// Registry holds tiles in insertion order together with the aggregate mute state and session history.
type Registry struct {
	resolver stream.Resolver
	engine   Engine
	store    *history.Store
	options  Options

	table     *media.Table
	allocator *grid.Allocator

	tiles      []*Tile
	history    history.Set
	globalMute bool
}

// New wires a registry to its collaborators. store may be nil to disable history.
func New(resolver stream.Resolver, engine Engine, store *history.Store, options Options) *Registry {
	return &Registry{
		resolver:  resolver,
		engine:    engine,
		store:     store,
		options:   options,
		table:     media.NewTable(),
		allocator: grid.NewAllocator(),
		history:   make(history.Set),
	}
}

// Table exposes the handle table the registry's adapters are registered in.
func (r *Registry) Table() *media.Table {
	return r.table
}

// Pending is a resolved stream that has not been placed on the grid yet.
type Pending struct {
	descriptor stream.Descriptor
	handle     stream.Handle
}

// Descriptor returns the descriptor the stream was resolved from.
func (p *Pending) Descriptor() stream.Descriptor {
	return p.descriptor
}

// Discard releases a pending stream that will not be committed.
func (p *Pending) Discard() {
	if p.handle != nil {
		_ = p.handle.Close()
		p.handle = nil
	}
}

// Prepare resolves desc without touching registry state, so it may run off the control goroutine.
func (r *Registry) Prepare(ctx context.Context, desc stream.Descriptor) (*Pending, error) {
	handle, err := r.resolver.Resolve(ctx, desc.URL, desc.Quality)
	if err != nil {
		if _, ok := lo.ErrorsAs[*stream.ResolutionError](err); !ok {
			err = stream.NewResolutionError(desc.URL, desc.Quality, err)
		}
		log.WithFields(map[string]any{"url": desc.URL, "quality": desc.Quality}).Warn(err)
		return nil, err
	}

	return &Pending{descriptor: desc, handle: handle}, nil
}

// Commit places a prepared stream on the grid and hands it to the engine.
// If the engine refuses it, nothing is left behind.
func (r *Registry) Commit(p *Pending) (*Tile, error) {
	if p == nil || p.handle == nil {
		return nil, fmt.Errorf("registry: commit of a discarded stream")
	}

	adapter := media.NewAdapter(r.table, p.handle)
	p.handle = nil

	position := r.allocator.Next()
	tile := &Tile{
		Descriptor: p.descriptor,
		Position:   position,
		adapter:    adapter,
	}

	if r.engine != nil {
		placement := r.allocator.Place(position)
		if err := r.engine.Attach(adapter.Handle(), r.table.Callbacks(), p.descriptor.URL, placement); err != nil {
			adapter.Close()
			r.allocator.Release(position)
			return nil, fmt.Errorf("registry: attach %s: %w", p.descriptor.URL, err)
		}
	}

	r.tiles = append(r.tiles, tile)

	if r.globalMute {
		r.applyAudio(tile, true)
	}

	log.WithFields(map[string]any{
		"url":      p.descriptor.URL,
		"quality":  p.descriptor.Quality,
		"position": position.String(),
		"handle":   adapter.Handle(),
	}).Info("registry: tile added")

	return tile, nil
}

// Add resolves desc and commits it in one step.
func (r *Registry) Add(ctx context.Context, desc stream.Descriptor) (*Tile, error) {
	pending, err := r.Prepare(ctx, desc)
	if err != nil {
		return nil, err
	}
	return r.Commit(pending)
}

// Remove closes the tile's adapter, detaches it from the engine and frees its position.
// Removing a tile that is not registered is a no-op.
func (r *Registry) Remove(tile *Tile) {
	index := lo.IndexOf(r.tiles, tile)
	if index < 0 {
		return
	}

	// closing first unblocks a read the engine may be parked in
	tile.adapter.Close()
	if r.engine != nil {
		if err := r.engine.Detach(tile.adapter.Handle()); err != nil {
			log.Warnf("registry: detach %s: %v", tile.Descriptor.URL, err)
		}
	}
	r.allocator.Release(tile.Position)
	r.tiles = append(r.tiles[:index], r.tiles[index+1:]...)

	log.Infof("registry: tile %s at %s removed", tile.Descriptor.URL, tile.Position)
}

// Tiles returns the live tiles in insertion order.
func (r *Registry) Tiles() []*Tile {
	return append([]*Tile(nil), r.tiles...)
}

// Len returns the number of live tiles.
func (r *Registry) Len() int {
	return len(r.tiles)
}

// Side returns the side of the square grid the tiles currently occupy.
func (r *Registry) Side() int {
	return r.allocator.Side()
}

// GlobalMute reports the aggregate mute state.
func (r *Registry) GlobalMute() bool {
	return r.globalMute
}

// SetGlobalMute mutes every tile when checked. When unchecked, audio comes back
// only on tiles that were not muted individually.
func (r *Registry) SetGlobalMute(checked bool) {
	r.globalMute = checked
	for _, tile := range r.tiles {
		r.applyAudio(tile, checked || tile.IndividuallyMuted)
	}
}

// SetTileMute records an explicit per-tile mute choice. While global mute is on the
// tile stays silent either way; the choice takes effect when global mute is released.
func (r *Registry) SetTileMute(tile *Tile, muted bool) {
	if !lo.Contains(r.tiles, tile) {
		return
	}
	tile.IndividuallyMuted = muted
	r.applyAudio(tile, muted || r.globalMute)
}

func (r *Registry) applyAudio(tile *Tile, muted bool) {
	if r.engine != nil {
		if err := r.engine.SetMute(tile.adapter.Handle(), muted); err != nil {
			log.Warnf("registry: mute %s: %v", tile.Descriptor.URL, err)
			return
		}
	}
	tile.AudioMuted = muted
}

// ExportURLs joins the tile URLs with newlines in insertion order.
func (r *Registry) ExportURLs() string {
	return strings.Join(lo.Map(r.tiles, func(t *Tile, _ int) string {
		return t.Descriptor.URL
	}), "\n")
}

// RecordHistory appends url to the history file.
func (r *Registry) RecordHistory(url string) error {
	if r.store == nil {
		return nil
	}
	return r.store.Record(url)
}

// LoadHistory reads and truncates the history file and merges its URLs into the session history.
func (r *Registry) LoadHistory() (history.Set, error) {
	if r.store == nil {
		return make(history.Set), nil
	}

	loaded, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for url := range loaded {
		r.history[url] = struct{}{}
	}
	return loaded, nil
}

// History returns the session history sorted.
func (r *Registry) History() []string {
	return r.history.Sorted()
}

// Suggest completes a partially typed URL from the session history.
func (r *Registry) Suggest(partial string) mo.Option[string] {
	return history.Suggest(r.history, partial)
}

// Shutdown records the URLs worth keeping and removes every tile.
func (r *Registry) Shutdown() error {
	var errs []error

	if r.options.SaveOnExit {
		keep := make(history.Set)
		if r.options.KeepPrevious {
			for url := range r.history {
				keep[url] = struct{}{}
			}
		}
		for _, tile := range r.tiles {
			keep[tile.Descriptor.URL] = struct{}{}
		}

		for _, url := range keep.Sorted() {
			if err := r.RecordHistory(url); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, tile := range r.Tiles() {
		r.Remove(tile)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry: shutdown: %w", errs[0])
	}
	return nil
}
