package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mosaic-cli/mosaic/auth"
	"github.com/mosaic-cli/mosaic/icon"
	"github.com/mosaic-cli/mosaic/style"
	"github.com/mosaic-cli/mosaic/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage bearer tokens for protected stream servers",
	Long: `Manage bearer tokens sent with direct HTTP streams.
Tokens are kept in the system keyring, one per host.`,
}

func init() {
	authCmd.AddCommand(authSetCmd)
	authSetCmd.Flags().StringP("token", "t", "", "The token to store. Asked for when omitted")
}

var authSetCmd = &cobra.Command{
	Use:     "set host",
	Short:   "Store the token for a host",
	Args:    cobra.ExactArgs(1),
	Example: "  mosaic auth set cdn.example.com\n  mosaic auth set https://cdn.example.com/live.ts",
	Run: func(cmd *cobra.Command, args []string) {
		host, err := auth.Host(args[0])
		handleErr(err)

		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			handleErr(survey.AskOne(&survey.Password{
				Message: "Token for " + host,
			}, &token, survey.WithValidator(survey.Required)))
		}

		token = strings.TrimSpace(token)
		if token == "" {
			handleErr(errors.New("empty token"))
		}

		handleErr(auth.SetToken(host, token))
		fmt.Printf("%s stored token for %s\n", style.Success(icon.Get(icon.Success)), style.Key(host))
	},
}

func init() {
	authCmd.AddCommand(authDeleteCmd)
}

var authDeleteCmd = &cobra.Command{
	Use:     "delete host",
	Short:   "Forget the token for a host",
	Aliases: []string{"remove"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		host, err := auth.Host(args[0])
		handleErr(err)

		handleErr(auth.DeleteToken(host))
		fmt.Printf("%s deleted token for %s\n", style.Success(icon.Get(icon.Success)), style.Key(host))
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}

var authStatusCmd = &cobra.Command{
	Use:   "status host",
	Short: "Tell whether a token is stored for a host",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		host, err := auth.Host(args[0])
		handleErr(err)

		if token, ok := auth.Token(host).Get(); ok {
			fmt.Printf("%s %s has a token (%s)\n", icon.Get(icon.Success), host, util.Quantify(len(token), "character", "characters"))
			return
		}
		fmt.Printf("%s %s has no token\n", icon.Get(icon.Fail), host)
	},
}
