package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mosaic-cli/mosaic/internal/ui"
	"github.com/mosaic-cli/mosaic/util"
)

// Init applies the startup options and queues the streams given on the command line.
func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(), b.refreshTiles()}

	if b.options.Mute {
		b.registry.SetGlobalMute(true)
	}

	for _, desc := range b.options.Initial {
		cmds = append(cmds, b.prepareWith(context.Background(), background, desc))
	}
	if n := len(b.options.Initial); n > 0 {
		cmds = append(cmds, ui.Notify("opening "+util.Quantify(n, "stream", "streams")))
	}

	return tea.Batch(cmds...)
}
