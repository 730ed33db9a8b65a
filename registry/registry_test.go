package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/mosaic-cli/mosaic/filesystem"
	"github.com/mosaic-cli/mosaic/grid"
	"github.com/mosaic-cli/mosaic/history"
	"github.com/mosaic-cli/mosaic/media"
	"github.com/mosaic-cli/mosaic/stream"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

var errUnreachable = errors.New("unreachable")

type fakeHandle struct {
	io.Reader
	closed bool
}

func (h *fakeHandle) Close() error {
	h.closed = true
	return nil
}

type fakeResolver struct {
	fail    map[string]bool
	handles []*fakeHandle
}

func (r *fakeResolver) Resolve(_ context.Context, url, _ string) (stream.Handle, error) {
	if r.fail[url] {
		return nil, errUnreachable
	}
	h := &fakeHandle{Reader: strings.NewReader(url)}
	r.handles = append(r.handles, h)
	return h, nil
}

func (r *fakeResolver) Qualities(context.Context, string) ([]string, error) {
	return []string{stream.QualityBest}, nil
}

type fakeEngine struct {
	mu       sync.Mutex
	refuse   bool
	attached map[media.Handle]grid.Placement
	muted    map[media.Handle]bool
	detached []media.Handle
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		attached: make(map[media.Handle]grid.Placement),
		muted:    make(map[media.Handle]bool),
	}
}

func (e *fakeEngine) Attach(h media.Handle, _ media.Callbacks, _ string, at grid.Placement) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.refuse {
		return errors.New("no surface")
	}
	e.attached[h] = at
	return nil
}

func (e *fakeEngine) SetMute(h media.Handle, muted bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted[h] = muted
	return nil
}

func (e *fakeEngine) Detach(h media.Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.attached, h)
	e.detached = append(e.detached, h)
	return nil
}

func add(r *Registry, url string) *Tile {
	tile, err := r.Add(context.Background(), stream.Descriptor{URL: url, Quality: stream.QualityBest})
	So(err, ShouldBeNil)
	return tile
}

func TestRegistryAdd(t *testing.T) {
	Convey("Given an empty registry", t, func() {
		resolver := &fakeResolver{fail: map[string]bool{"bad": true}}
		engine := newFakeEngine()
		r := New(resolver, engine, nil, Options{})

		Convey("When streams A, B and C are added", func() {
			a := add(r, "A")
			add(r, "B")
			add(r, "C")

			Convey("Then export joins them in insertion order", func() {
				So(r.ExportURLs(), ShouldEqual, "A\nB\nC")
			})

			Convey("Then tile count matches the live adapters", func() {
				So(r.Len(), ShouldEqual, 3)
				So(r.Table().Len(), ShouldEqual, 3)
				So(len(engine.attached), ShouldEqual, 3)
			})

			Convey("Then removing a tile keeps the others in order", func() {
				r.Remove(a)
				So(r.ExportURLs(), ShouldEqual, "B\nC")
				So(r.Table().Len(), ShouldEqual, 2)
				So(a.Closed(), ShouldBeTrue)
				So(engine.detached, ShouldContain, a.Handle())
				So(resolver.handles[0].closed, ShouldBeTrue)
			})

			Convey("Then removing a tile twice is a no-op", func() {
				r.Remove(a)
				r.Remove(a)
				So(r.Len(), ShouldEqual, 2)
				So(len(engine.detached), ShouldEqual, 1)
			})

			Convey("Then a freed position is handed out again", func() {
				r.Remove(a)
				d := add(r, "D")
				So(d.Position, ShouldResemble, a.Position)
				So(r.ExportURLs(), ShouldEqual, "B\nC\nD")
			})
		})

		Convey("When the resolver fails", func() {
			tile, err := r.Add(context.Background(), stream.Descriptor{URL: "bad", Quality: "720p"})

			Convey("Then a resolution error is returned and nothing is registered", func() {
				So(tile, ShouldBeNil)
				So(errors.Is(err, stream.ErrResolution), ShouldBeTrue)
				So(errors.Is(err, errUnreachable), ShouldBeTrue)
				So(r.Len(), ShouldEqual, 0)
				So(r.Table().Len(), ShouldEqual, 0)
				So(r.Side(), ShouldEqual, 0)
			})
		})

		Convey("When the engine refuses a stream", func() {
			engine.refuse = true
			tile, err := r.Add(context.Background(), stream.Descriptor{URL: "A", Quality: stream.QualityBest})

			Convey("Then the adapter is closed and its position returned", func() {
				So(tile, ShouldBeNil)
				So(err, ShouldNotBeNil)
				So(r.Len(), ShouldEqual, 0)
				So(r.Table().Len(), ShouldEqual, 0)
				So(resolver.handles[0].closed, ShouldBeTrue)

				engine.refuse = false
				first := add(r, "B")
				So(first.Position, ShouldResemble, grid.Position{})
			})
		})

		Convey("When a prepared stream is discarded", func() {
			pending, err := r.Prepare(context.Background(), stream.Descriptor{URL: "A", Quality: stream.QualityBest})
			So(err, ShouldBeNil)
			pending.Discard()

			Convey("Then its handle is closed and it cannot be committed", func() {
				So(resolver.handles[0].closed, ShouldBeTrue)
				_, err := r.Commit(pending)
				So(err, ShouldNotBeNil)
				So(r.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestRegistryPositions(t *testing.T) {
	Convey("Given a registry", t, func() {
		r := New(&fakeResolver{}, newFakeEngine(), nil, Options{})

		for k := 1; k <= 5; k++ {
			Convey(fmt.Sprintf("Adding %d streams fills the %dx%d square exactly", k*k, k, k), func() {
				var tiles []*Tile
				for i := 0; i < k*k; i++ {
					tiles = append(tiles, add(r, "s"))
				}

				seen := lo.Map(tiles, func(t *Tile, _ int) grid.Position { return t.Position })
				So(len(lo.Uniq(seen)), ShouldEqual, k*k)
				for _, p := range seen {
					So(p.X, ShouldBeLessThan, k)
					So(p.Y, ShouldBeLessThan, k)
				}
				So(r.Side(), ShouldEqual, k)
			})
		}
	})
}

func TestRegistryMute(t *testing.T) {
	Convey("Given three tiles with the middle one muted individually", t, func() {
		engine := newFakeEngine()
		r := New(&fakeResolver{}, engine, nil, Options{})
		a, b, c := add(r, "A"), add(r, "B"), add(r, "C")
		r.SetTileMute(b, true)

		Convey("When global mute is checked", func() {
			r.SetGlobalMute(true)

			Convey("Then every tile is muted", func() {
				for _, tile := range r.Tiles() {
					So(tile.AudioMuted, ShouldBeTrue)
					So(engine.muted[tile.Handle()], ShouldBeTrue)
				}
			})

			Convey("Then a tile added meanwhile starts muted", func() {
				d := add(r, "D")
				So(d.AudioMuted, ShouldBeTrue)
				So(d.IndividuallyMuted, ShouldBeFalse)
				So(engine.muted[d.Handle()], ShouldBeTrue)
			})

			Convey("Then unmuting a tile individually keeps it silent", func() {
				r.SetTileMute(b, false)
				So(b.AudioMuted, ShouldBeTrue)

				Convey("Until global mute is released", func() {
					r.SetGlobalMute(false)
					So(b.AudioMuted, ShouldBeFalse)
				})
			})

			Convey("And then unchecked", func() {
				r.SetGlobalMute(false)

				Convey("Then only the individually muted tile stays muted", func() {
					So(a.AudioMuted, ShouldBeFalse)
					So(b.AudioMuted, ShouldBeTrue)
					So(c.AudioMuted, ShouldBeFalse)
					So(engine.muted[b.Handle()], ShouldBeTrue)
					So(engine.muted[c.Handle()], ShouldBeFalse)
				})
			})
		})

		Convey("Muting a tile that was removed does nothing", func() {
			r.Remove(c)
			r.SetTileMute(c, true)
			So(c.IndividuallyMuted, ShouldBeFalse)
		})
	})
}

func TestRegistryHistory(t *testing.T) {
	Convey("Given a registry backed by a history file", t, func() {
		const path = "/history.txt"
		So(filesystem.API().WriteFile(path, []byte("x\nx\ny\n"), 0o644), ShouldBeNil)

		store := history.New(path)
		r := New(&fakeResolver{}, newFakeEngine(), store, Options{SaveOnExit: true})

		Convey("When history is loaded", func() {
			loaded, err := r.LoadHistory()
			So(err, ShouldBeNil)

			Convey("Then duplicates collapse and the file is emptied", func() {
				So(len(loaded), ShouldEqual, 2)
				So(r.History(), ShouldResemble, []string{"x", "y"})

				data, err := filesystem.API().ReadFile(path)
				So(err, ShouldBeNil)
				So(data, ShouldBeEmpty)
			})

			Convey("Then a second load yields nothing new", func() {
				again, err := r.LoadHistory()
				So(err, ShouldBeNil)
				So(again, ShouldBeEmpty)
				So(r.History(), ShouldResemble, []string{"x", "y"})
			})

			Convey("Then suggestions come from the session history", func() {
				So(r.Suggest("y").OrEmpty(), ShouldEqual, "y")
			})

			Convey("Then shutdown writes back the active URLs", func() {
				add(r, "B")
				add(r, "A")
				So(r.Shutdown(), ShouldBeNil)
				So(r.Len(), ShouldEqual, 0)
				So(r.Table().Len(), ShouldEqual, 0)

				data, err := filesystem.API().ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "A\nB\n")
			})

			Convey("Then shutdown can keep the previous history too", func() {
				r.options.KeepPrevious = true
				add(r, "A")
				So(r.Shutdown(), ShouldBeNil)

				data, err := filesystem.API().ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "A\nx\ny\n")
			})
		})

		Convey("When save on exit is off", func() {
			r.options.SaveOnExit = false
			_, _ = r.LoadHistory()
			add(r, "A")
			So(r.Shutdown(), ShouldBeNil)

			data, err := filesystem.API().ReadFile(path)
			So(err, ShouldBeNil)
			So(data, ShouldBeEmpty)
		})
	})

	Convey("Given a registry without a history file", t, func() {
		So(filesystem.API().RemoveAll("/missing.txt"), ShouldBeNil)
		r := New(&fakeResolver{}, nil, history.New("/missing.txt"), Options{})

		Convey("Loading yields an empty history", func() {
			loaded, err := r.LoadHistory()
			So(err, ShouldBeNil)
			So(loaded, ShouldBeEmpty)
		})
	})
}
