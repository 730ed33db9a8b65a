// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mosaic-cli/mosaic/constant"
	"github.com/mosaic-cli/mosaic/internal/ui"
	"github.com/mosaic-cli/mosaic/registry"
	"github.com/mosaic-cli/mosaic/stream"
	"github.com/mosaic-cli/mosaic/style"
	"github.com/mosaic-cli/mosaic/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// statefulBubble holds the whole interface: the current state, its components and
// the registry every user action is forwarded to.
type statefulBubble struct {
	state  state
	trail  []state
	keymap *statefulKeymap

	// components
	spinnerC   spinner.Model
	inputC     textinput.Model
	tilesC     list.Model
	qualitiesC list.Model
	helpC      help.Model

	registry *registry.Registry
	resolver stream.Resolver

	// generation identifies the async operation whose result is still wanted.
	generation int
	cancel     context.CancelFunc
	pendingURL string

	progressStatus string
	lastError      error
	urlSuggestion  mo.Option[string]
	width, height  int
	notifier       *ui.Model

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering where it came from unless that was a transient state.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{loadingState, errorState}, b.state) {
		b.trail = append(b.trail, b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if len(b.trail) == 0 {
		b.setState(tilesState)
		return
	}

	last := len(b.trail) - 1
	b.setState(b.trail[last])
	b.trail = b.trail[:last]
}

// home drops the navigation history and shows the tile list.
func (b *statefulBubble) home() {
	b.trail = nil
	b.setState(tilesState)
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.tilesC.SetSize(listWidth, listHeight)
	b.tilesC.Help.Width = listWidth

	b.qualitiesC.SetSize(listWidth, listHeight)
	b.qualitiesC.Help.Width = listWidth

	b.inputC.Width = util.Clamp(listWidth-len(b.inputC.Prompt)-2, 10, 200)

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

// begin starts a cancellable async operation and invalidates any previous one.
func (b *statefulBubble) begin(status string) (context.Context, int) {
	b.cancelPending()

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.generation++
	b.progressStatus = status
	return ctx, b.generation
}

func (b *statefulBubble) cancelPending() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.generation++
}

func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		keymap:   keymap,
		registry: options.Registry,
		resolver: options.Resolver,
		notifier: &ui.Model{},
		options:  options,
	}

	makeList := func(title string, description bool, titleStyle lipgloss.Style) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(1)
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = titleStyle
		listC.Styles.NoItems = paddingStyle
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetFilteringEnabled(false)
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Stream URL (%s v%s)", constant.Mosaic, constant.Version)
	bubble.inputC.CharLimit = 2048
	bubble.inputC.Prompt = "> "

	bubble.tilesC = makeList("Tiles", true,
		lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1),
	)
	bubble.tilesC.SetStatusBarItemName("tile", "tiles")

	bubble.qualitiesC = makeList("Quality", false,
		lipgloss.NewStyle().Foreground(style.Base).Background(style.Peach).Padding(0, 1),
	)
	bubble.qualitiesC.SetStatusBarItemName("quality", "qualities")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(tilesState)
	return &bubble
}
