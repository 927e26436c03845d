package cmd

import (
	"github.com/spf13/cobra"

	"gsc/internal/api"
	"gsc/internal/remote"
)

var partnerCmd = &cobra.Command{
	Use:   "partner",
	Short: "Manage homework partnerships",
}

var partnerRequestCmd = &cobra.Command{
	Use:   "request <hw<N>> <username>",
	Short: "Send a partner request",
	Args:  cobra.ExactArgs(2),
	RunE:  partnerRunE(api.PartnerOutgoing),
}

var partnerAcceptCmd = &cobra.Command{
	Use:   "accept <hw<N>> <username>",
	Short: "Accept an incoming partner request",
	Args:  cobra.ExactArgs(2),
	RunE:  partnerRunE(api.PartnerAccepted),
}

var partnerCancelCmd = &cobra.Command{
	Use:   "cancel <hw<N>> <username>",
	Short: "Cancel a partner request",
	Args:  cobra.ExactArgs(2),
	RunE:  partnerRunE(api.PartnerCanceled),
}

// partnerRunE builds the shared runner: every partner subcommand is the
// same PATCH with a different target status.
func partnerRunE(status api.PartnerRequestStatus) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		hw, err := remote.ParseHW(args[0])
		if err != nil {
			return err
		}
		return cli.Partner(flagUser, hw, args[1], status)
	}
}

func init() {
	partnerCmd.AddCommand(partnerRequestCmd, partnerAcceptCmd, partnerCancelCmd)
	rootCmd.AddCommand(partnerCmd)
}
