package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mosaic-cli/mosaic/constant"
	"github.com/mosaic-cli/mosaic/style"
	"github.com/mosaic-cli/mosaic/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Only print the version number")
}

type buildRow struct {
	label, value string
}

func buildRows() []buildRow {
	rows := []buildRow{
		{"Version", constant.Version},
		{"Commit", constant.Revision},
		{"Built at", strings.TrimSpace(constant.BuiltAt)},
		{"Built by", constant.BuiltBy},
		{"Go", runtime.Version()},
		{"Platform", runtime.GOOS + "/" + runtime.GOARCH},
	}

	for _, dep := range dependencies() {
		found, err := exec.LookPath(lo.Ternary(dep.path == "", dep.name, dep.path))
		if err != nil {
			found = style.Failure("not found")
		}
		rows = append(rows, buildRow{dep.name, found})
	}
	return rows
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version, build and player information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify()

		rows := buildRows()
		width := lo.Max(lo.Map(rows, func(r buildRow, _ int) int { return len(r.label) }))

		cmd.Println(style.Key("▇▇▇ " + constant.Mosaic))
		cmd.Println()
		for _, r := range rows {
			cmd.Printf("  %s  %s\n", style.Faint(fmt.Sprintf("%-*s", width, r.label)), style.Bold(r.value))
		}
	},
}
