package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/invopop/jsonschema"
	"github.com/mosaic-cli/mosaic/history"
	"github.com/mosaic-cli/mosaic/icon"
	"github.com/mosaic-cli/mosaic/stream"
	"github.com/mosaic-cli/mosaic/style"
	"github.com/mosaic-cli/mosaic/util"
	"github.com/mosaic-cli/mosaic/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the streams carried over between sessions",
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().BoolP("json", "j", false, "Format the output as JSON descriptors")
	historyListCmd.SetOut(os.Stdout)
}

// historyListCmd reads the file without truncating it, unlike a viewing session.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the recorded stream URLs",
	Run: func(cmd *cobra.Command, args []string) {
		set, err := history.New(where.History()).Peek()
		handleErr(err)
		urls := set.Sorted()

		if lo.Must(cmd.Flags().GetBool("json")) {
			descs := lo.Map(urls, func(url string, _ int) stream.Descriptor {
				return stream.Descriptor{URL: url}
			})
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(descs))
			return
		}

		if len(urls) == 0 {
			cmd.Println(style.Faint("history is empty"))
			return
		}

		for _, url := range urls {
			if util.IsTerminal() {
				cmd.Println(icon.Get(icon.Link), url)
			} else {
				cmd.Println(url)
			}
		}
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
	historyClearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every recorded stream URL",
	Run: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("yes")) {
			var confirmed bool
			handleErr(survey.AskOne(&survey.Confirm{
				Message: "Clear the history file?",
				Default: false,
			}, &confirmed))

			if !confirmed {
				return
			}
		}

		handleErr(history.New(where.History()).Clear())
		fmt.Printf("%s history cleared\n", style.Success(icon.Get(icon.Success)))
	},
}

func init() {
	historyCmd.AddCommand(historySchemaCmd)
}

var historySchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of history list --json",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true

		schema := reflector.Reflect([]stream.Descriptor{})
		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
