// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mosaic-cli/mosaic/log"
	"github.com/mosaic-cli/mosaic/registry"
	"github.com/mosaic-cli/mosaic/stream"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Registry *registry.Registry
	Resolver stream.Resolver

	// Initial streams are added as soon as the interface starts.
	Initial []stream.Descriptor
	// DefaultQuality preselects an entry of the quality list.
	DefaultQuality string
	// Mute starts the session with global mute checked.
	Mute bool
}

// Run executes the Bubble Tea loop and runs the registry's shutdown sequence once it ends,
// however the user left.
func Run(options *Options) error {
	bubble := newBubble(options)

	if _, err := options.Registry.LoadHistory(); err != nil {
		log.Warn(err)
	}

	_, runErr := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	bubble.cancelPending()

	if err := options.Registry.Shutdown(); err != nil {
		log.Error(err)
		if runErr == nil {
			return err
		}
	}
	return runErr
}
