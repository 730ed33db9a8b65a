package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mosaic-cli/mosaic/filesystem"
	"github.com/mosaic-cli/mosaic/history"
	"github.com/mosaic-cli/mosaic/registry"
	"github.com/mosaic-cli/mosaic/stream"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type closeCounter struct {
	io.Reader
	closed bool
}

func (c *closeCounter) Close() error {
	c.closed = true
	return nil
}

type fakeResolver struct {
	handles []*closeCounter
}

func (r *fakeResolver) Resolve(_ context.Context, url, _ string) (stream.Handle, error) {
	h := &closeCounter{Reader: strings.NewReader(url)}
	r.handles = append(r.handles, h)
	return h, nil
}

func (r *fakeResolver) Qualities(context.Context, string) ([]string, error) {
	return []string{"best", "720p", "worst"}, nil
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func newTestBubble() (*statefulBubble, *fakeResolver) {
	resolver := &fakeResolver{}
	_ = filesystem.API().Remove("/tui-history")
	reg := registry.New(resolver, nil, history.New("/tui-history"), registry.Options{})
	return newBubble(&Options{Registry: reg, Resolver: resolver, DefaultQuality: "720p"}), resolver
}

// addStream walks the add flow, standing in for the async commands.
func addStream(b *statefulBubble, url string) {
	b.Update(keyRunes("a"))
	So(b.state, ShouldEqual, inputState)

	b.inputC.SetValue(url)
	b.Update(keyEnter)
	So(b.state, ShouldEqual, loadingState)
	So(b.pendingURL, ShouldEqual, url)

	qualities, err := b.resolver.Qualities(context.Background(), url)
	So(err, ShouldBeNil)
	b.Update(qualitiesMsg{generation: b.generation, url: url, qualities: qualities})
	So(b.state, ShouldEqual, qualitiesState)

	b.Update(keyEnter)
	So(b.state, ShouldEqual, loadingState)

	pending, err := b.registry.Prepare(context.Background(), stream.Descriptor{URL: url, Quality: "720p"})
	So(err, ShouldBeNil)
	b.Update(preparedMsg{generation: b.generation, pending: pending})
	So(b.state, ShouldEqual, tilesState)
}

func TestAddFlow(t *testing.T) {
	Convey("Given a fresh interface", t, func() {
		b, resolver := newTestBubble()

		Convey("Adding a stream walks input, qualities and back to the tiles", func() {
			addStream(b, "https://example.com/a")

			So(b.registry.Len(), ShouldEqual, 1)
			So(b.tilesC.Items(), ShouldHaveLength, 1)
			So(len(b.trail), ShouldEqual, 0)
		})

		Convey("The default quality is preselected", func() {
			b.pendingURL = "u"
			b.Update(qualitiesMsg{generation: b.generation, url: "u", qualities: []string{"best", "720p", "worst"}})
			So(b.qualitiesC.Index(), ShouldEqual, 1)
		})

		Convey("A stale result is discarded and its stream released", func() {
			b.Update(keyRunes("a"))
			b.inputC.SetValue("https://example.com/a")
			b.Update(keyEnter)
			stale := b.generation

			b.Update(keyEsc)
			So(b.state, ShouldEqual, inputState)

			pending, err := b.registry.Prepare(context.Background(), stream.Descriptor{URL: "https://example.com/a", Quality: "best"})
			So(err, ShouldBeNil)
			b.Update(preparedMsg{generation: stale, pending: pending})

			So(b.registry.Len(), ShouldEqual, 0)
			So(resolver.handles[0].closed, ShouldBeTrue)
		})

		Convey("A failure shows the error and esc returns to the previous step", func() {
			b.Update(keyRunes("a"))
			b.inputC.SetValue("https://example.com/a")
			b.Update(keyEnter)
			b.Update(failedMsg{generation: b.generation, err: errors.New("offline")})
			So(b.state, ShouldEqual, errorState)
			So(b.View(), ShouldContainSubstring, "offline")

			b.Update(keyEsc)
			So(b.state, ShouldEqual, inputState)
		})

		Convey("Streams from the command line fail quietly", func() {
			b.Update(failedMsg{generation: background, err: errors.New("offline")})
			So(b.state, ShouldEqual, tilesState)
		})

		Convey("History suggestions complete the input", func() {
			So(b.registry.RecordHistory("https://example.com/history"), ShouldBeNil)
			_, err := b.registry.LoadHistory()
			So(err, ShouldBeNil)

			b.Update(keyRunes("a"))
			b.Update(keyRunes("hist"))
			So(b.urlSuggestion.IsPresent(), ShouldBeTrue)

			b.Update(tea.KeyMsg{Type: tea.KeyTab})
			So(b.inputC.Value(), ShouldEqual, "https://example.com/history")
		})
	})
}

func TestTileControls(t *testing.T) {
	Convey("Given three tiles", t, func() {
		b, _ := newTestBubble()
		for _, url := range []string{"A", "B", "C"} {
			addStream(b, url)
		}
		So(b.registry.Len(), ShouldEqual, 3)

		Convey("M toggles global mute on every tile", func() {
			b.Update(keyRunes("M"))
			for _, tile := range b.registry.Tiles() {
				So(tile.AudioMuted, ShouldBeTrue)
			}

			b.Update(keyRunes("M"))
			for _, tile := range b.registry.Tiles() {
				So(tile.AudioMuted, ShouldBeFalse)
			}
		})

		Convey("m mutes the selected tile individually", func() {
			b.tilesC.Select(1)
			b.Update(keyRunes("m"))
			tiles := b.registry.Tiles()
			So(tiles[1].IndividuallyMuted, ShouldBeTrue)

			b.Update(keyRunes("M"))
			b.Update(keyRunes("M"))
			So(tiles[0].AudioMuted, ShouldBeFalse)
			So(tiles[1].AudioMuted, ShouldBeTrue)
		})

		Convey("y copies the urls in insertion order", func() {
			var copied string
			original := writeClipboard
			writeClipboard = func(text string) error {
				copied = text
				return nil
			}
			defer func() { writeClipboard = original }()

			b.Update(keyRunes("y"))
			So(copied, ShouldEqual, "A\nB\nC")
		})

		Convey("d removes the selected tile", func() {
			b.tilesC.Select(0)
			b.Update(keyRunes("d"))
			So(b.registry.ExportURLs(), ShouldEqual, "B\nC")
			So(b.tilesC.Items(), ShouldHaveLength, 2)
		})

		Convey("Tiles the engine closed are reaped on the next tick", func() {
			tile := b.registry.Tiles()[1]
			b.registry.Table().Callbacks().Close(tile.Handle())

			b.Update(tickMsg{})
			So(b.registry.ExportURLs(), ShouldEqual, "A\nC")
		})

		Convey("q quits", func() {
			_, cmd := b.Update(keyRunes("q"))
			So(cmd, ShouldNotBeNil)
		})
	})
}
