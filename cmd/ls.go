package cmd

import (
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls <hw<N>[:<pattern>]>...",
	Short: "List remote files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pats, err := parsePatterns(args)
		if err != nil {
			return err
		}
		return cli.Ls(flagUser, pats)
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
