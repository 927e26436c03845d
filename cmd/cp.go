package cmd

import (
	"github.com/spf13/cobra"

	"gsc/internal/remote"
)

var cpCmd = &cobra.Command{
	Use:   "cp <source>... <destination>",
	Short: "Copy files to or from the server",
	Long: `cp copies files between the local filesystem and the server. Exactly
one side of the copy must be remote: uploads name local sources and a
remote destination, downloads the reverse. A remote destination of
‘hw<N>:’ keeps each source's own filename; a local destination may be a
directory, an existing file, or a fresh path.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		operands := make([]remote.CpArg, len(args))
		for i, arg := range args {
			operand, err := remote.ParseCpArg(arg)
			if err != nil {
				return err
			}
			operands[i] = operand
		}
		last := len(operands) - 1
		return cli.Cp(flagUser, operands[:last], operands[last])
	},
}

func init() {
	rootCmd.AddCommand(cpCmd)
}
