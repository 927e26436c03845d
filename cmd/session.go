package cmd

import (
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth <username>",
	Short: "Log in and save the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Auth(args[0])
	},
}

var deauthCmd = &cobra.Command{
	Use:   "deauth",
	Short: "Forget the saved session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Deauth()
	},
}

var createCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a new account and log in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Create(args[0])
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Passwd(flagUser)
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the logged-in username",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Whoami()
	},
}

func init() {
	rootCmd.AddCommand(authCmd, deauthCmd, createCmd, passwdCmd, whoamiCmd)
}
