package cmd

import (
	"github.com/spf13/cobra"

	"gsc/internal/remote"
)

var mvCmd = &cobra.Command{
	Use:   "mv <hw<N>:<file>> <destination>",
	Short: "Rename or move a remote file",
	Long: `mv renames or moves one remote file. The destination may omit the
homework number (‘:newname’ or a bare ‘newname’ renames in place) or the
filename (‘hw4:’ moves keeping the name); whatever is omitted is taken
from the source.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := remote.ParsePattern(args[0])
		if err != nil {
			return err
		}
		dst, err := remote.ParseDestination(args[1])
		if err != nil {
			return err
		}
		return cli.Mv(flagUser, src, dst)
	},
}

func init() {
	rootCmd.AddCommand(mvCmd)
}
