package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mosaic-cli/mosaic/icon"
	"github.com/mosaic-cli/mosaic/resolver"
	"github.com/mosaic-cli/mosaic/style"
	"github.com/mosaic-cli/mosaic/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(qualitiesCmd)
	qualitiesCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON array")
	qualitiesCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Give up after this long")
	qualitiesCmd.SetOut(os.Stdout)
}

var qualitiesCmd = &cobra.Command{
	Use:   "qualities url",
	Short: "List the qualities a stream is offered in",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mux, err := resolver.FromConfig()
		handleErr(err)

		ctx, cancel := context.WithTimeout(context.Background(), lo.Must(cmd.Flags().GetDuration("timeout")))
		defer cancel()

		url := args[0]
		erase := util.PrintErasable(fmt.Sprintf("%s Asking %s about %s...", icon.Get(icon.Progress), mux.Pick(url), url))
		qualities, err := mux.Qualities(ctx, url)
		erase()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(qualities))
			return
		}

		for _, q := range qualities {
			cmd.Println(style.Value(q))
		}
	},
}
