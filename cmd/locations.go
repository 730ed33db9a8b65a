package cmd

import (
	"fmt"
	"os"

	"github.com/mosaic-cli/mosaic/filesystem"
	"github.com/mosaic-cli/mosaic/icon"
	"github.com/mosaic-cli/mosaic/style"
	"github.com/mosaic-cli/mosaic/util"
	"github.com/mosaic-cli/mosaic/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// location is a file or directory mosaic keeps on disk.
type location struct {
	name  string
	flag  string
	short string
	path  func() string
	// listed locations are printed by a bare where
	listed bool
	// clearable locations can be removed with clear
	clearable bool
}

var locations = []location{
	{name: "Config", flag: "config", short: "c", path: where.Config, listed: true},
	{name: "History", flag: "history", short: "s", path: where.History, listed: true, clearable: true},
	{name: "Logs", flag: "logs", short: "l", path: where.Logs, listed: true, clearable: true},
	{name: "Cache", flag: "cache", path: where.Cache, clearable: true},
	{name: "Qualities", flag: "qualities", path: where.Qualities, clearable: true},
	{name: "Temp", flag: "temp", path: where.Temp, clearable: true},
}

func bindLocationFlags(cmd *cobra.Command, only func(location) bool, usage string) []location {
	chosen := lo.Filter(locations, func(l location, _ int) bool { return only(l) })
	for _, l := range chosen {
		cmd.Flags().BoolP(l.flag, l.short, false, fmt.Sprintf(usage, l.name))
	}
	return chosen
}

func selectedLocations(cmd *cobra.Command, from []location) []location {
	return lo.Filter(from, func(l location, _ int) bool {
		return lo.Must(cmd.Flags().GetBool(l.flag))
	})
}

var whereTargets, clearTargets []location

func init() {
	rootCmd.AddCommand(whereCmd)
	whereTargets = bindLocationFlags(whereCmd, func(location) bool { return true }, "Print the %s path")
	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(whereTargets, func(l location, _ int) string { return l.flag })...)
	for _, l := range whereTargets {
		if !l.listed {
			lo.Must0(whereCmd.Flags().MarkHidden(l.flag))
		}
	}
	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where mosaic keeps its files",
	Run: func(cmd *cobra.Command, args []string) {
		if chosen := selectedLocations(cmd, whereTargets); len(chosen) > 0 {
			cmd.Println(chosen[0].path())
			return
		}

		header := style.New().Bold(true).Foreground(style.Lavender).Render
		listed := lo.Filter(whereTargets, func(l location, _ int) bool { return l.listed })
		for i, l := range listed {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n%s\n", header(l.name), style.Faint("--"+l.flag), l.path())
		}
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearTargets = bindLocationFlags(clearCmd, func(l location) bool { return l.clearable }, "Remove the %s")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached, logged or recorded files",
	Run: func(cmd *cobra.Command, args []string) {
		chosen := selectedLocations(cmd, clearTargets)
		if len(chosen) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, l := range chosen {
			erase := util.PrintErasable(fmt.Sprintf("%s Removing %s...", icon.Get(icon.Progress), l.name))
			err := filesystem.API().RemoveAll(l.path())
			erase()
			handleErr(err)
			fmt.Printf("%s %s removed\n", style.Success(icon.Get(icon.Success)), l.name)
		}
	},
}
