package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/mosaic-cli/mosaic/style"
)

// statefulKeymap holds every binding; which ones apply depends on the state.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	add, remove,
	muteTile, muteAll,
	export, openURL,
	acceptSuggestion,
	confirm, back,
	up, down, top, bottom,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func bind(helpKey, description string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, description))
}

func newStatefulKeymap() *statefulKeymap {
	addStyle := style.Fg(style.AddColor)

	return &statefulKeymap{
		quit:             bind("q", "quit", "q"),
		forceQuit:        bind("ctrl+c", "quit", "ctrl+c", "ctrl+d"),
		add:              bind(addStyle("a"), addStyle("add stream"), "a", "+"),
		remove:           bind("d", "remove", "d", "delete"),
		muteTile:         bind("m", "mute tile", "m"),
		muteAll:          bind("M", "mute all", "M"),
		export:           bind("y", "copy urls", "y"),
		openURL:          bind("o", "open url", "o"),
		acceptSuggestion: bind("tab", "accept suggestion", "tab"),
		confirm:          bind("enter", "confirm", "enter"),
		back:             bind("esc", "back", "esc"),
		up:               bind("↑", "up", "up", "k"),
		down:             bind("↓", "down", "down", "j"),
		top:              bind("g", "top", "g", "home"),
		bottom:           bind("G", "bottom", "G", "end"),
		showHelp:         bind("?", "help", "?"),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case tilesState:
		return h(k.add, k.remove, k.muteTile, k.muteAll, k.export),
			h(k.add, k.remove, k.muteTile, k.muteAll, k.export, k.openURL, k.quit)
	case inputState:
		return to2(h(k.confirm, k.acceptSuggestion, k.back))
	case qualitiesState:
		return to2(h(withDescription(k.confirm, "add with quality"), k.back))
	case loadingState:
		return to2(h(withDescription(k.back, "cancel"), k.forceQuit))
	case errorState:
		return to2(h(k.back, k.forceQuit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:      k.up,
		CursorDown:    k.down,
		GoToStart:     k.top,
		GoToEnd:       k.bottom,
		ShowFullHelp:  k.showHelp,
		CloseFullHelp: k.showHelp,
		Quit:          k.quit,
		ForceQuit:     k.forceQuit,
	}
}

func withDescription(k key.Binding, description string) key.Binding {
	return bind(k.Help().Key, description, k.Keys()...)
}
