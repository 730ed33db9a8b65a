package tui

import (
	"strings"

	"github.com/mosaic-cli/mosaic/icon"
	"github.com/mosaic-cli/mosaic/style"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = style.New().Padding(1, 2, 1, 0)
	paddingStyle          = style.New().Padding(1, 2)
	errorMessageStyle     = style.New().Foreground(style.ErrorColor).Bold(true)
)

func (b *statefulBubble) View() string {
	var page string

	switch b.state {
	case tilesState:
		page = listExtraPaddingStyle.Render(b.tilesC.View())
	case qualitiesState:
		page = listExtraPaddingStyle.Render(b.qualitiesC.View())
	case inputState:
		page = b.page(style.Title("Add Stream"), b.inputLines()...)
	case loadingState:
		page = b.page(style.Title("Loading"), style.Truncate(b.width)(b.spinnerC.View()+" "+b.progressStatus))
	case errorState:
		page = b.page(
			style.ErrorTitle("Error"),
			icon.Get(icon.Fail)+" The stream could not be added:",
			"",
			wrap.String(errorMessageStyle.Render(b.lastError.Error()), b.width),
		)
	}

	return b.notifier.View(page)
}

func (b *statefulBubble) inputLines() []string {
	lines := []string{b.inputC.View()}
	if suggestion, ok := b.urlSuggestion.Get(); ok {
		lines = append(lines, "", style.Faint(icon.Get(icon.Question)+" "+suggestion+" (tab)"))
	}
	return lines
}

// page renders a titled body with the help line pinned to the bottom.
func (b *statefulBubble) page(title string, body ...string) string {
	lines := append([]string{title, ""}, body...)

	var sb strings.Builder
	sb.WriteString(strings.Join(lines, "\n"))
	if gap := b.height - len(lines); gap > 0 {
		sb.WriteString(strings.Repeat("\n", gap))
	}
	sb.WriteString(b.helpC.View(b.keymap))

	return paddingStyle.Render(sb.String())
}
