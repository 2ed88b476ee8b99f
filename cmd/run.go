package cmd

import (
	"io"
	"os"

	"codeprompt/pkg/config"
	"codeprompt/pkg/console"
	"codeprompt/pkg/logging"
	"codeprompt/pkg/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runSession drives one run on the command's input and output streams.
func runSession(cmd *cobra.Command, cfg *config.Config, opts session.Options) error {
	c := newConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	s := session.New(cfg, c, logging.Logger)

	result, err := s.Run(opts)
	if err != nil {
		logging.Logger.Error("codeprompt run failed", zap.Error(err))
		return err
	}

	logging.Logger.Info("Run completed",
		zap.String("mode", string(result.Mode)),
		zap.String("outputFile", result.OutputFile),
		zap.Int("selected", len(result.Selection)),
		zap.Int("included", len(result.Render.Included)),
		zap.Int("skipped", len(result.Render.Skipped)))
	return nil
}

// newConsole colours output only when talking to the real terminal.
func newConsole(in io.Reader, out io.Writer) console.Console {
	if in == os.Stdin && out == os.Stdout {
		return console.NewStd()
	}
	return console.New(in, out)
}
