package cmd

import (
	"os"

	"github.com/mosaic-cli/mosaic/config"
	"github.com/mosaic-cli/mosaic/style"
	"github.com/mosaic-cli/mosaic/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Only list variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only list variables that are not set")
	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}

// envNames lists every environment variable mosaic reads, sorted.
func envNames() []string {
	names := lo.Map(config.Keys(), func(name string, _ int) string {
		field := config.Default[name]
		return field.Env()
	})
	names = append(names, where.EnvConfigPath)
	slices.Sort(names)
	return names
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables mosaic reads",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			setOnly   = lo.Must(cmd.Flags().GetBool("set-only"))
			unsetOnly = lo.Must(cmd.Flags().GetBool("unset-only"))
			name      = style.New().Bold(true).Foreground(style.Mauve).Render
		)

		for _, env := range envNames() {
			value, present := os.LookupEnv(env)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			shown := style.Failure("unset")
			if present {
				shown = style.Success(value)
			}
			cmd.Printf("%s=%s\n", name(env), shown)
		}
	},
}
