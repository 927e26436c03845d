package cmd

import (
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <hw<N>:<pattern>>...",
	Short: "Delete remote files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pats, err := parsePatterns(args)
		if err != nil {
			return err
		}
		return cli.Rm(flagUser, pats)
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
