// Package cmd implements the command-line interface for mosaic.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mosaic-cli/mosaic/config"
	"github.com/mosaic-cli/mosaic/constant"
	"github.com/mosaic-cli/mosaic/icon"
	"github.com/mosaic-cli/mosaic/key"
	"github.com/mosaic-cli/mosaic/log"
	"github.com/mosaic-cli/mosaic/style"
	"github.com/mosaic-cli/mosaic/tui"
	"github.com/mosaic-cli/mosaic/version"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("quality", "q", "", "Quality used for streams given without one")
	lo.Must0(viper.BindPFlag(key.StreamDefaultQuality, rootCmd.PersistentFlags().Lookup("quality")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Record the open streams in the history file on exit")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnExit, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().BoolP("mute", "m", false, "Start with every tile muted")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

var rootCmd = &cobra.Command{
	Use:   constant.Mosaic + " [url...]",
	Short: "Watch many live streams at once on a tiled grid",
	Long: constant.Banner + "\n" +
		style.New().Italic(true).Foreground(style.HiRed).Render("    - Watch many live streams at once on a tiled grid"),
	Example: "  mosaic https://twitch.tv/a https://twitch.tv/b\n  mosaic -q 720p --mute ./recording.ts",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == configCmd || cmd.Parent() == configCmd {
			return nil
		}
		if err := config.Validate(); err != nil {
			return fmt.Errorf("%w\nfix it with %s", err, style.Value(constant.Mosaic+" config set"))
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		s, err := newSession()
		handleErr(err)

		initial, err := descriptors(args)
		handleErr(err)

		options := tui.Options{
			Registry:       s.registry,
			Resolver:       s.resolver,
			Initial:        initial,
			DefaultQuality: viper.GetString(key.StreamDefaultQuality),
			Mute:           lo.Must(cmd.Flags().GetBool("mute")),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
