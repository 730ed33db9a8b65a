package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mosaic-cli/mosaic/internal/ui"
	"github.com/mosaic-cli/mosaic/log"
	"github.com/mosaic-cli/mosaic/open"
	"github.com/mosaic-cli/mosaic/registry"
	"github.com/mosaic-cli/mosaic/stream"
	"github.com/mosaic-cli/mosaic/util"
	"github.com/samber/lo"
)

// background marks results that no user action waits for, such as the streams given on
// the command line. They are never invalidated.
const background = -1

const tickInterval = time.Second

type qualitiesMsg struct {
	generation int
	url        string
	qualities  []string
}

type preparedMsg struct {
	generation int
	pending    *registry.Pending
}

type failedMsg struct {
	generation int
	err        error
}

type tickMsg time.Time

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

func (b *statefulBubble) current(generation int) bool {
	return generation == background || generation == b.generation
}

func (b *statefulBubble) fetchQualities(url string) tea.Cmd {
	ctx, generation := b.begin(fmt.Sprintf("Looking up qualities of %s", url))
	resolver := b.resolver

	return func() tea.Msg {
		log.Info("fetching qualities of " + url)
		qualities, err := resolver.Qualities(ctx, url)
		if err != nil {
			return failedMsg{generation: generation, err: err}
		}
		return qualitiesMsg{generation: generation, url: url, qualities: qualities}
	}
}

func (b *statefulBubble) prepare(desc stream.Descriptor) tea.Cmd {
	ctx, generation := b.begin(fmt.Sprintf("Opening %s", desc))
	return b.prepareWith(ctx, generation, desc)
}

func (b *statefulBubble) prepareWith(ctx context.Context, generation int, desc stream.Descriptor) tea.Cmd {
	reg := b.registry

	return func() tea.Msg {
		pending, err := reg.Prepare(ctx, desc)
		if err != nil {
			return failedMsg{generation: generation, err: err}
		}
		return preparedMsg{generation: generation, pending: pending}
	}
}

// commit places a prepared stream and selects its tile.
func (b *statefulBubble) commit(p *registry.Pending) tea.Cmd {
	tile, err := b.registry.Commit(p)
	if err != nil {
		return func() tea.Msg { return failedMsg{generation: background, err: err} }
	}

	cmd := b.refreshTiles()
	if index := lo.IndexOf(b.registry.Tiles(), tile); index >= 0 {
		b.tilesC.Select(index)
	}
	return tea.Batch(cmd, ui.Notify("added "+tile.Descriptor.String()))
}

func (b *statefulBubble) refreshTiles() tea.Cmd {
	tiles := b.registry.Tiles()
	items := make([]list.Item, len(tiles))
	for i, t := range tiles {
		items[i] = &listItem{internal: t}
	}

	index := b.tilesC.Index()
	cmd := b.tilesC.SetItems(items)
	if n := len(items); n > 0 {
		b.tilesC.Select(util.Clamp(index, 0, n-1))
	}

	b.tilesC.Title = fmt.Sprintf("Tiles %s", b.gridSummary())
	return cmd
}

func (b *statefulBubble) gridSummary() string {
	side := b.registry.Side()
	summary := fmt.Sprintf("%s on %dx%d", util.Quantify(b.registry.Len(), "stream", "streams"), side, side)
	if b.registry.GlobalMute() {
		summary += " • muted"
	}
	return summary
}

func (b *statefulBubble) selectedTile() (*registry.Tile, bool) {
	item, ok := b.tilesC.SelectedItem().(*listItem)
	if !ok {
		return nil, false
	}
	tile, ok := item.internal.(*registry.Tile)
	return tile, ok
}

// reap removes tiles whose playback ended on the engine side, e.g. a closed mpv window.
func (b *statefulBubble) reap() tea.Cmd {
	ended := lo.Filter(b.registry.Tiles(), func(t *registry.Tile, _ int) bool {
		return t.Closed()
	})
	if len(ended) == 0 {
		return nil
	}

	for _, t := range ended {
		b.registry.Remove(t)
	}

	urls := lo.Map(ended, func(t *registry.Tile, _ int) string { return t.Descriptor.URL })
	return tea.Batch(b.refreshTiles(), ui.Notify("ended: "+strings.Join(urls, ", ")))
}

func (b *statefulBubble) export() tea.Cmd {
	if b.registry.Len() == 0 {
		return ui.Notify("nothing to copy")
	}

	if err := writeClipboard(b.registry.ExportURLs()); err != nil {
		log.Error(err)
		return ui.Notify("clipboard unavailable: " + err.Error())
	}
	return ui.Notify("copied " + util.Quantify(b.registry.Len(), "url", "urls"))
}

func (b *statefulBubble) openSelected() tea.Cmd {
	tile, ok := b.selectedTile()
	if !ok {
		return nil
	}
	if !strings.HasPrefix(tile.Descriptor.URL, "http://") && !strings.HasPrefix(tile.Descriptor.URL, "https://") {
		return ui.Notify("not a web url")
	}
	if err := open.Start(tile.Descriptor.URL); err != nil {
		return ui.Notify(err.Error())
	}
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
