package cmd

import (
	"codeprompt/pkg/session"

	"github.com/spf13/cobra"
)

func newIndividualCommand(root *rootOptions) *cobra.Command {
	var noLoad bool

	cmd := &cobra.Command{
		Use:   "individual [file...]",
		Short: "Build the prompt from a list of files",
		Long: `Build the prompt from an explicit list of files. The list saved by the
previous run is loaded first (falling back to the legacy list), files given
as arguments are appended, then more can be entered one per line.
The final list is saved for the next run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, root.cfg, session.Options{
				Mode:       session.ModeIndividual,
				SkipLoad:   noLoad,
				ExtraPaths: args,
			})
		},
	}

	cmd.Flags().BoolVar(&noLoad, "no-load", false, "start with an empty list instead of the saved one")
	return cmd
}
