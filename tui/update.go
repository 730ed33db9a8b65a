package tui

import (
	"fmt"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mosaic-cli/mosaic/internal/ui"
	"github.com/mosaic-cli/mosaic/log"
	"github.com/mosaic-cli/mosaic/stream"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tickMsg:
		return b, tea.Batch(cmd, b.reap(), b.refreshTiles(), tick())
	case qualitiesMsg:
		if !b.current(msg.generation) {
			return b, cmd
		}
		return b, tea.Batch(cmd, b.showQualities(msg))
	case preparedMsg:
		if !b.current(msg.generation) {
			log.Infof("tui: discarding stale stream %s", msg.pending.Descriptor())
			msg.pending.Discard()
			return b, cmd
		}
		if msg.generation != background {
			b.home()
		}
		return b, tea.Batch(cmd, b.commit(msg.pending))
	case failedMsg:
		if !b.current(msg.generation) {
			return b, cmd
		}
		if msg.generation == background {
			return b, tea.Batch(cmd, ui.Notify(msg.err.Error()))
		}
		b.raiseError(msg.err)
		return b, cmd
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	switch b.state {
	case tilesState:
		return b.updateTiles(msg, cmd)
	case inputState:
		return b.updateInput(msg, cmd)
	case qualitiesState:
		return b.updateQualities(msg, cmd)
	case loadingState:
		return b.updateLoading(msg, cmd)
	case errorState:
		return b.updateError(msg, cmd)
	}

	return b, cmd
}

func (b *statefulBubble) updateTiles(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.add):
			b.inputC.SetValue("")
			b.urlSuggestion = mo.None[string]()
			b.inputC.Focus()
			b.newState(inputState)
			return b, tea.Batch(cmd, textinput.Blink)
		case bubblesKey.Matches(msg, b.keymap.remove):
			if tile, ok := b.selectedTile(); ok {
				b.registry.Remove(tile)
				return b, tea.Batch(cmd, b.refreshTiles(), ui.Notify("removed "+tile.Descriptor.URL))
			}
			return b, cmd
		case bubblesKey.Matches(msg, b.keymap.muteTile):
			if tile, ok := b.selectedTile(); ok {
				b.registry.SetTileMute(tile, !tile.IndividuallyMuted)
				return b, tea.Batch(cmd, b.refreshTiles())
			}
			return b, cmd
		case bubblesKey.Matches(msg, b.keymap.muteAll):
			b.registry.SetGlobalMute(!b.registry.GlobalMute())
			return b, tea.Batch(cmd, b.refreshTiles())
		case bubblesKey.Matches(msg, b.keymap.export):
			return b, tea.Batch(cmd, b.export())
		case bubblesKey.Matches(msg, b.keymap.openURL):
			return b, tea.Batch(cmd, b.openSelected())
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.tilesC.Items()); n > 0 && b.tilesC.Index() == 0 {
				b.tilesC.Select(n - 1)
				return b, cmd
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.tilesC.Items()); n > 0 && b.tilesC.Index() == n-1 {
				b.tilesC.Select(0)
				return b, cmd
			}
		}
	}

	var listCmd tea.Cmd
	b.tilesC, listCmd = b.tilesC.Update(msg)
	return b, tea.Batch(cmd, listCmd)
}

func (b *statefulBubble) updateInput(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm) && b.inputC.Value() != "":
			url := b.inputC.Value()
			if _, err := stream.NewDescriptor(url, stream.QualityBest, stream.QualityBest); err != nil {
				return b, tea.Batch(cmd, ui.Notify(err.Error()))
			}
			b.pendingURL = url
			fetch := b.fetchQualities(url)
			b.newState(loadingState)
			return b, tea.Batch(cmd, fetch, b.spinnerC.Tick)
		case bubblesKey.Matches(msg, b.keymap.acceptSuggestion) && b.urlSuggestion.IsPresent():
			b.inputC.SetValue(b.urlSuggestion.MustGet())
			b.urlSuggestion = mo.None[string]()
			b.inputC.SetCursor(len(b.inputC.Value()))
			return b, cmd
		case bubblesKey.Matches(msg, b.keymap.back):
			b.inputC.Blur()
			b.previousState()
			return b, cmd
		}
	}

	var inputCmd tea.Cmd
	b.inputC, inputCmd = b.inputC.Update(msg)

	if value := b.inputC.Value(); value != "" {
		if suggestion, ok := b.registry.Suggest(value).Get(); ok && suggestion != value {
			b.urlSuggestion = mo.Some(suggestion)
		} else {
			b.urlSuggestion = mo.None[string]()
		}
	} else {
		b.urlSuggestion = mo.None[string]()
	}

	return b, tea.Batch(cmd, inputCmd)
}

func (b *statefulBubble) showQualities(msg qualitiesMsg) tea.Cmd {
	items := make([]list.Item, len(msg.qualities))
	preferred := lo.IndexOf(msg.qualities, b.options.DefaultQuality)
	for i, q := range msg.qualities {
		items[i] = &listItem{internal: q, marked: i == preferred}
	}

	cmd := b.qualitiesC.SetItems(items)
	b.qualitiesC.Title = fmt.Sprintf("Quality of %s", msg.url)
	b.qualitiesC.Select(max(preferred, 0))

	b.newState(qualitiesState)
	return cmd
}

func (b *statefulBubble) updateQualities(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			item, ok := b.qualitiesC.SelectedItem().(*listItem)
			if !ok {
				return b, cmd
			}
			desc, err := stream.NewDescriptor(b.pendingURL, item.internal.(string), b.options.DefaultQuality)
			if err != nil {
				b.raiseError(err)
				return b, cmd
			}
			prepare := b.prepare(desc)
			b.newState(loadingState)
			return b, tea.Batch(cmd, prepare, b.spinnerC.Tick)
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, cmd
		}
	}

	var listCmd tea.Cmd
	b.qualitiesC, listCmd = b.qualitiesC.Update(msg)
	return b, tea.Batch(cmd, listCmd)
}

func (b *statefulBubble) updateLoading(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.back) {
			b.cancelPending()
			b.previousState()
			return b, cmd
		}
	case spinner.TickMsg:
		var spinnerCmd tea.Cmd
		b.spinnerC, spinnerCmd = b.spinnerC.Update(msg)
		return b, tea.Batch(cmd, spinnerCmd)
	}

	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		}
	}
	return b, cmd
}
