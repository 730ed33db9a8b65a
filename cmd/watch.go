package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mosaic-cli/mosaic/icon"
	"github.com/mosaic-cli/mosaic/log"
	"github.com/mosaic-cli/mosaic/registry"
	"github.com/mosaic-cli/mosaic/stream"
	"github.com/mosaic-cli/mosaic/style"
	"github.com/mosaic-cli/mosaic/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolP("pick", "p", false, "Choose the quality of every stream interactively")
}

var watchCmd = &cobra.Command{
	Use:   "watch url...",
	Short: "Open streams without the interface and keep them on screen until interrupted",
	Long: `Open every given stream on the grid and wait.
The session ends on interrupt, or once every player window has been closed.`,
	Args:    cobra.MinimumNArgs(1),
	Example: "  mosaic watch --mute https://twitch.tv/a https://twitch.tv/b",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		s, err := newSession()
		handleErr(err)

		descs, err := descriptors(args)
		handleErr(err)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if lo.Must(cmd.Flags().GetBool("pick")) {
			if !util.IsTerminal() {
				handleErr(errors.New("--pick needs an interactive terminal"))
			}
			descs, err = pickQualities(ctx, s, descs)
			handleErr(err)
		}

		if _, err := s.registry.LoadHistory(); err != nil {
			log.Warn(err)
		}

		s.registry.SetGlobalMute(lo.Must(cmd.Flags().GetBool("mute")))

		for _, desc := range descs {
			erase := util.PrintErasable(fmt.Sprintf("%s Opening %s...", icon.Get(icon.Progress), desc))
			tile, err := s.registry.Add(ctx, desc)
			erase()

			if err != nil {
				fmt.Printf("%s %s\n", icon.Get(icon.Fail), err)
				continue
			}
			fmt.Printf("%s %s %s\n", icon.Get(icon.Success), desc, style.Faint(icon.Get(icon.Grid)+" "+tile.Position.String()))
		}

		if s.registry.Len() > 0 {
			fmt.Printf("%s %s playing, press Ctrl+C to stop\n", icon.Get(icon.Stream), util.Quantify(s.registry.Len(), "stream", "streams"))
			wait(ctx, s.registry)
		}

		handleErr(s.registry.Shutdown())
	},
}

// wait blocks until ctx ends or every tile has been closed by the player.
func wait(ctx context.Context, reg *registry.Registry) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for reg.Len() > 0 {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, tile := range reg.Tiles() {
				if tile.Closed() {
					reg.Remove(tile)
					fmt.Printf("%s %s ended\n", icon.Get(icon.Mark), tile.Descriptor.URL)
				}
			}
		}
	}
}

func pickQualities(ctx context.Context, s *session, descs []stream.Descriptor) ([]stream.Descriptor, error) {
	picked := make([]stream.Descriptor, 0, len(descs))

	for _, desc := range descs {
		erase := util.PrintErasable(fmt.Sprintf("%s Looking up qualities of %s...", icon.Get(icon.Progress), desc.URL))
		qualities, err := s.resolver.Qualities(ctx, desc.URL)
		erase()

		if err != nil {
			return nil, err
		}

		prompt := &survey.Select{
			Message: "Quality of " + desc.URL,
			Options: qualities,
		}
		if lo.Contains(qualities, desc.Quality) {
			prompt.Default = desc.Quality
		}

		var quality string
		if err := survey.AskOne(prompt, &quality); err != nil {
			return nil, err
		}

		desc, err = stream.NewDescriptor(desc.URL, quality, desc.Quality)
		if err != nil {
			return nil, err
		}
		picked = append(picked, desc)
	}

	return picked, nil
}
