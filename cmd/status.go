package cmd

import (
	"github.com/spf13/cobra"

	"gsc/internal/remote"
)

var statusCmd = &cobra.Command{
	Use:   "status <hw<N>>",
	Short: "Show the state of one submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hw, err := remote.ParseHW(args[0])
		if err != nil {
			return err
		}
		return cli.Status(flagUser, hw)
	},
}

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "Show an overview of every submission",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Submissions(flagUser)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd, submissionsCmd)
}
