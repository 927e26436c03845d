package cmd

import (
	"github.com/spf13/cobra"
)

var catNumbered bool

var catCmd = &cobra.Command{
	Use:   "cat <hw<N>[:<pattern>]>...",
	Short: "Print remote files to standard output",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pats, err := parsePatterns(args)
		if err != nil {
			return err
		}
		return cli.Cat(flagUser, pats, catNumbered)
	},
}

func init() {
	catCmd.Flags().BoolVarP(&catNumbered, "number", "n", false,
		"Number the lines of source, test, and config files")
	rootCmd.AddCommand(catCmd)
}
