package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"gsc/internal/remote"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative operations",
}

var adminExtendEval bool

var adminExtendCmd = &cobra.Command{
	Use:   "extend <username> <hw<N>> <datetime>",
	Short: "Extend a submission's due date",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		hw, err := remote.ParseHW(args[1])
		if err != nil {
			return err
		}
		return cli.AdminExtend(args[0], hw, args[2], adminExtendEval)
	},
}

var adminSetExamCmd = &cobra.Command{
	Use:   "set-exam <username> <number> <points> <possible>",
	Short: "Record an exam grade",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		numbers := make([]int, 3)
		for i, arg := range args[1:] {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return err
			}
			numbers[i] = n
		}
		return cli.AdminSetExam(args[0], numbers[0], numbers[1], numbers[2])
	},
}

var adminDivorceCmd = &cobra.Command{
	Use:   "divorce <username> <hw<N>>",
	Short: "Dissolve the partnership on a submission",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hw, err := remote.ParseHW(args[1])
		if err != nil {
			return err
		}
		return cli.AdminDivorce(args[0], hw)
	},
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List every account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.AdminListUsers()
	},
}

func init() {
	adminExtendCmd.Flags().BoolVar(&adminExtendEval, "eval", false,
		"Extend the self-eval due date instead of the submission due date")
	adminCmd.AddCommand(adminExtendCmd, adminSetExamCmd, adminDivorceCmd, adminUsersCmd)
	rootCmd.AddCommand(adminCmd)
}
