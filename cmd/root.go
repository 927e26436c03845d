// Package cmd implements the gsc command-line interface: one cobra
// command per server operation, a client shared through the root
// command's setup, and the mapping from command outcomes to process
// exit status.
package cmd

import (
	stderrors "errors"
	"os"

	"github.com/spf13/cobra"

	"gsc/internal/client"
	"gsc/internal/config"
	"gsc/internal/log"
	"gsc/internal/overwrite"
	"gsc/internal/remote"
)

var (
	cfg *config.Config
	cli *client.Client

	flagUser      string
	flagVerbose   int
	flagQuiet     int
	flagOverwrite string
)

var rootCmd = &cobra.Command{
	Use:   "gsc",
	Short: "Command-line client for the gsc homework submission server",
	Long: `gsc submits, retrieves, and manages homework files on a gsc grading
server. Remote files are addressed as ‘hw<N>:<file>’, where <file> may be
a glob pattern; a bare ‘hw<N>’ names the whole homework, and ‘:<path>’
forces a local path where either would parse.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func setup(cmd *cobra.Command, args []string) error {
	log.SetVerbosity(flagVerbose - flagQuiet)

	mode, err := overwrite.ParseMode(flagOverwrite)
	if err != nil {
		return err
	}

	cfg = config.New()
	if err := cfg.Load(); err != nil {
		return err
	}

	cli = client.New(cfg, overwrite.New(mode))
	return nil
}

// Execute runs the command line and maps the outcome to the process exit
// status: 0 for success, 1 for a fatal error, and 2 when the command ran
// to completion but some per-file operations were skipped or failed.
func Execute() {
	err := rootCmd.Execute()
	log.Sync()

	if err != nil {
		log.Errorln("gsc: error:", err)
		for cause := stderrors.Unwrap(err); cause != nil; cause = stderrors.Unwrap(cause) {
			log.Errorln("  caused by:", cause)
		}
		os.Exit(1)
	}
	if cli != nil && cli.HadWarning() {
		os.Exit(2)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&flagVerbose, "verbose", "v", "More progress output (repeatable)")
	pf.CountVarP(&flagQuiet, "quiet", "q", "Less progress output (repeatable)")
	pf.StringVarP(&flagOverwrite, "overwrite", "o", "ask",
		"Overwrite policy for existing files: always, never, or ask")
	pf.StringVarP(&flagUser, "user", "u", "",
		"Act on behalf of another user (graders and admins)")
}

// parsePatterns parses every argument as a remote file spec.
func parsePatterns(args []string) ([]remote.Pattern, error) {
	pats := make([]remote.Pattern, len(args))
	for i, arg := range args {
		pat, err := remote.ParsePattern(arg)
		if err != nil {
			return nil, err
		}
		pats[i] = pat
	}
	return pats, nil
}
