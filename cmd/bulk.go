package cmd

import (
	"codeprompt/pkg/session"

	"github.com/spf13/cobra"
)

func newBulkCommand(root *rootOptions) *cobra.Command {
	var editIgnore bool

	cmd := &cobra.Command{
		Use:   "bulk [folder]",
		Short: "Build the prompt from every file in a folder",
		Long: `Scan a folder recursively and put every file into the prompt, except
paths matched by the ignore list. A rule matches a path exactly, as a
directory prefix ("vendor" skips vendor/...), or as a suffix when it
starts with a dot (".log").`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := session.Options{Mode: session.ModeBulk, EditIgnore: editIgnore}
			if len(args) == 1 {
				opts.Root = args[0]
			}
			return runSession(cmd, root.cfg, opts)
		},
	}

	cmd.Flags().BoolVarP(&editIgnore, "edit-ignore", "e", false, "edit the ignore list before scanning without asking")
	return cmd
}
