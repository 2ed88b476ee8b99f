package cmd

import (
	"fmt"

	"codeprompt/pkg/config"
	"codeprompt/pkg/logging"
	"codeprompt/pkg/session"
	"codeprompt/pkg/version"

	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configFile          string
	outputFile          string
	ignoreFile          string
	selectionFile       string
	legacySelectionFile string
	logLevel            string
	debug               bool

	cfg *config.Config
}

// NewRootCommand builds the codeprompt command tree. Run without a
// subcommand it asks for the selection mode.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "codeprompt",
		Short: "codeprompt turns a codebase into a single prompt for AI chats",
		Long: `codeprompt concatenates selected files of a codebase into one text file
ready to paste into an AI chat.

Bulk mode scans a folder and leaves out paths listed in the ignore file.
Individual mode uses an explicit list of files that is kept between runs.`,
		Version:      version.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, opts.cfg, session.Options{})
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (default "+config.DefaultConfigFile+", or $"+config.EnvConfigFile+")")
	flags.StringVarP(&opts.outputFile, "output", "o", "", "file the prompt is written to")
	flags.StringVar(&opts.ignoreFile, "ignore-file", "", "ignore list used in bulk mode")
	flags.StringVar(&opts.selectionFile, "selection-file", "", "file list used in individual mode")
	flags.StringVar(&opts.legacySelectionFile, "legacy-selection-file", "", "fallback file list read when the selection file is empty")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.debug, "debug", false, "enable development logging at debug level")

	cmd.AddCommand(newBulkCommand(opts))
	cmd.AddCommand(newIndividualCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// load resolves the config file, applies flag overrides and sets up logging.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Resolve(o.configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputFile = o.outputFile
	}
	if flags.Changed("ignore-file") {
		cfg.IgnoreFile = o.ignoreFile
	}
	if flags.Changed("selection-file") {
		cfg.SelectionFile = o.selectionFile
	}
	if flags.Changed("legacy-selection-file") {
		cfg.LegacySelectionFile = o.legacySelectionFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("debug") {
		cfg.Debug = o.debug
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.Debug, version.AppName, version.Version); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	o.cfg = cfg
	return nil
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}
