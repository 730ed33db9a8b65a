package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mosaic-cli/mosaic/config"
	"github.com/mosaic-cli/mosaic/filesystem"
	"github.com/mosaic-cli/mosaic/icon"
	"github.com/mosaic-cli/mosaic/style"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Without(config.Keys(), args...), cobra.ShellCompDirectiveNoFileComp
}

func done(format string, args ...any) {
	fmt.Printf("%s %s\n", style.Success(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change settings",
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInfoCmd, configGetCmd, configSetCmd, configResetCmd, configWriteCmd, configDeleteCmd)

	configInfoCmd.Flags().BoolP("json", "j", false, "Output as json")
	configInfoCmd.SetOut(os.Stdout)

	configResetCmd.Flags().BoolP("all", "a", false, "Reset every key")
	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
}

var configInfoCmd = &cobra.Command{
	Use:               "info [key...]",
	Short:             "Describe settings, all of them when no key is given",
	ValidArgsFunction: completeKeys,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = config.Keys()
		}

		fields := lo.Map(args, func(name string, _ int) config.Field {
			field, err := config.Lookup(name)
			handleErr(err)
			return field
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		fmt.Println(strings.Join(lo.Map(fields, func(f config.Field, _ int) string {
			return f.Pretty()
		}), "\n\n"))
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print the current value of a setting",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeKeys,
	Run: func(cmd *cobra.Command, args []string) {
		_, err := config.Lookup(args[0])
		handleErr(err)
		fmt.Println(viper.Get(args[0]))
	},
}

var configSetCmd = &cobra.Command{
	Use:     "set <key> <value...>",
	Short:   "Change a setting and save it",
	Example: "  mosaic config set player.screen_width 2560\n  mosaic config set resolver.direct_extensions ts,mp4",
	Args:    cobra.MinimumNArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return completeKeys(cmd, args, toComplete)
		}
		if field, err := config.Lookup(args[0]); err == nil {
			return field.Options, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		value, err := config.Set(args[0], args[1:])
		handleErr(err)
		handleErr(config.Save())
		done("set %s to %s", style.Key(args[0]), style.Value(fmt.Sprint(value)))
	},
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key...]",
	Short:             "Restore settings to their defaults and save",
	ValidArgsFunction: completeKeys,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && !lo.Must(cmd.Flags().GetBool("all")) {
			return fmt.Errorf("name a key or pass --all")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(config.Reset(args...))
		handleErr(config.Save())

		if len(args) == 0 {
			done("reset every setting")
			return
		}
		done("reset %s", strings.Join(lo.Map(args, func(name string, _ int) string {
			return style.Key(name)
		}), ", "))
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the current settings to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		exists := lo.Must(afero.Exists(filesystem.API(), config.File()))
		if exists && !lo.Must(cmd.Flags().GetBool("force")) {
			handleErr(fmt.Errorf("%s already exists, pass --force to overwrite it", config.File()))
		}

		handleErr(config.Save())
		done("wrote %s", config.File())
	},
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove"},
	Short:   "Delete the config file",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(config.File()))
		done("deleted %s", config.File())
	},
}
