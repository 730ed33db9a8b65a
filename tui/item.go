package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mosaic-cli/mosaic/icon"
	"github.com/mosaic-cli/mosaic/registry"
	"github.com/mosaic-cli/mosaic/style"
	"github.com/mosaic-cli/mosaic/util"
)

const maxURLWidth = 72

// listItem implements list.Item for tiles and quality labels.
type listItem struct {
	internal any
	marked   bool
}

func (t *listItem) getMark() string {
	switch t.internal.(type) {
	case string:
		return lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Mark))
	default:
		return ""
	}
}

func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case *registry.Tile:
		audio := icon.Get(icon.Audible)
		if e.AudioMuted {
			audio = icon.Get(icon.Muted)
		}
		title = strings.TrimSpace(audio + " " + util.Shorten(e.Descriptor.URL, maxURLWidth))
	case string:
		title = e
	default:
		title = t.FilterValue()
	}

	if title != "" && t.marked {
		title = fmt.Sprintf("%s %s", title, t.getMark())
	}

	return
}

func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case *registry.Tile:
		parts := []string{
			style.Fg(style.Peach)(e.Descriptor.Quality),
			style.Fg(style.FaintColor)("cell " + e.Position.String()),
		}

		switch {
		case e.Closed():
			parts = append(parts, style.Failure("ended"))
		case e.AudioMuted:
			parts = append(parts, style.Muted(e.IndividuallyMuted))
		}

		description = strings.Join(parts, " • ")
	}

	return
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *registry.Tile:
		return e.Descriptor.URL
	case string:
		return e
	default:
		return ""
	}
}
