// Package session drives one interactive codeprompt run: choose a mode, build
// the file selection, render the prompt and persist the lists for next time.
package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"codeprompt/pkg/combine"
	"codeprompt/pkg/config"
	"codeprompt/pkg/console"
	"codeprompt/pkg/filelock"
	"codeprompt/pkg/ignore"

	"go.uber.org/zap"
)

// Mode selects how the file list is built.
type Mode string

const (
	ModeBulk       Mode = "bulk"
	ModeIndividual Mode = "individual"
)

// ParseMode accepts the full mode names and their first letters.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bulk", "b":
		return ModeBulk, true
	case "individual", "i":
		return ModeIndividual, true
	}
	return "", false
}

// Options preset answers that would otherwise be asked on the console.
type Options struct {
	Mode       Mode     // Empty asks for the mode
	Root       string   // Bulk root; empty asks for it
	EditIgnore bool     // Bulk: edit the ignore list without asking first
	SkipLoad   bool     // Individual: do not load the persisted list
	ExtraPaths []string // Individual: appended after the loaded list
}

// Result describes a finished run.
type Result struct {
	Mode       Mode
	OutputFile string
	Selection  []string
	Render     combine.Result

	// PersistErr is set when the ignore or selection list could not be saved.
	// The prompt file was written regardless.
	PersistErr error
}

// Session carries the state of a single run.
type Session struct {
	cfg     *config.Config
	console console.Console
	logger  *zap.Logger

	rules     *ignore.Rules
	selection []string
}

// New returns a session reading answers from c.
func New(cfg *config.Config, c console.Console, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		cfg:     cfg,
		console: c,
		logger:  logger,
	}
}

// Run performs one run. It returns an error only for failures that leave no
// usable prompt: a missing bulk root, an unwritable output file, closed input
// before a mode was chosen.
func (s *Session) Run(opts Options) (*Result, error) {
	s.console.Println("=== Codebase Prompt Generator ===")

	mode := opts.Mode
	if mode == "" {
		var err error
		if mode, err = s.selectMode(); err != nil {
			return nil, err
		}
	}
	s.logger.Info("Starting run", zap.String("mode", string(mode)))

	switch mode {
	case ModeBulk:
		return s.runBulk(opts)
	case ModeIndividual:
		return s.runIndividual(opts)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

func (s *Session) selectMode() (Mode, error) {
	for {
		answer, err := s.console.ReadLine("Select mode: (bulk/individual): ")
		if err != nil {
			return "", fmt.Errorf("failed to read mode: %w", err)
		}
		if mode, ok := ParseMode(answer); ok {
			return mode, nil
		}
		s.console.Warnf("Invalid input. Please enter 'bulk' or 'individual'.\n")
	}
}

func (s *Session) runBulk(opts Options) (*Result, error) {
	root := opts.Root
	if root == "" {
		answer, err := s.console.ReadLine("Enter the target folder path of your codebase: ")
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read target folder: %w", err)
		}
		root = answer
	}
	if info, err := os.Stat(root); root == "" || err != nil || !info.IsDir() {
		s.console.Warnf("Error: '%s' is not a valid directory.\n", root)
		s.logger.Error("Target folder not found", zap.String("root", root))
		return nil, fmt.Errorf("%w: %q is not a valid directory", combine.ErrPathNotFound, root)
	}

	rules, err := ignore.Load(s.cfg.IgnoreFile, s.logger)
	if err != nil {
		return nil, err
	}
	s.rules = rules

	edit := opts.EditIgnore
	if !edit {
		if edit, err = console.Confirm(s.console, "Would you like to update the ignore paths? (y/n): ", false); err != nil {
			return nil, fmt.Errorf("failed to read answer: %w", err)
		}
	}
	edited := false
	if edit {
		edited = s.editIgnoreRules()
	} else {
		s.console.Println("\nUsing existing ignore paths.")
	}

	s.console.Println("\nScanning codebase...")
	files, err := combine.CollectFiles(root, s.rules, s.artifacts(), s.logger)
	if err != nil {
		return nil, err
	}
	s.selection = files
	s.console.Printf("Found %d files to include in the prompt.\n", len(files))

	result := &Result{Mode: ModeBulk, OutputFile: s.cfg.OutputFile, Selection: files}
	result.Render = combine.Render(combine.SourcesFromRoot(root, files), s.logger)
	s.reportSkipped(result.Render)

	if err := s.writePrompt(result.Render.Prompt); err != nil {
		return nil, err
	}

	if edited {
		if err := s.rules.Save(s.cfg.IgnoreFile); err != nil {
			result.PersistErr = fmt.Errorf("%w: %v", combine.ErrPersistence, err)
			s.console.Warnf("Error: could not save ignore paths to '%s': %v\n", s.cfg.IgnoreFile, err)
		} else {
			s.console.Printf("Ignore paths updated and saved to '%s'.\n", s.cfg.IgnoreFile)
		}
	}
	return result, nil
}

// editIgnoreRules adds rules entered on the console and reports whether any
// rule was added.
func (s *Session) editIgnoreRules() bool {
	s.console.Println("\nCurrent ignore paths:")
	if s.rules.Len() == 0 {
		s.console.Println(" (none)")
	}
	for _, rule := range s.rules.List() {
		s.console.Println(" -", rule)
	}
	s.console.Println("\nEnter file or directory paths to ignore. Type 'done' when finished.")

	added := false
	for {
		answer, err := s.console.ReadLine("Ignore path (or 'done'): ")
		if err != nil || console.IsDone(answer) {
			break
		}
		switch {
		case s.rules.Contains(answer):
			s.console.Printf("'%s' is already in the ignore list. Skipping duplicate.\n", answer)
		case s.rules.Add(answer):
			added = true
			s.console.Printf("Added '%s' to ignore list.\n", answer)
		default:
			s.console.Warnf("'%s' does not name a path. Skipping.\n", answer)
		}
	}
	return added
}

func (s *Session) runIndividual(opts Options) (*Result, error) {
	if !opts.SkipLoad {
		prompt := fmt.Sprintf("Load file paths from '%s' (or fallback to '%s') if available? (Y/n): ",
			s.cfg.SelectionFile, s.cfg.LegacySelectionFile)
		load, err := console.Confirm(s.console, prompt, true)
		if err != nil {
			return nil, fmt.Errorf("failed to read answer: %w", err)
		}
		if load {
			s.loadSelection()
		}
	}

	for _, p := range opts.ExtraPaths {
		s.addPath(p)
	}

	s.console.Println("You may now add additional file paths. Type 'done' when finished.")
	for {
		answer, err := s.console.ReadLine("File path (or 'done'): ")
		if err != nil || console.IsDone(answer) {
			break
		}
		s.addPath(answer)
	}

	result := &Result{Mode: ModeIndividual, OutputFile: s.cfg.OutputFile, Selection: s.selection}

	if len(s.selection) == 0 {
		s.console.Warnf("No files were selected for prompt generation.\n")
		result.Render = combine.Result{Prompt: combine.NoSelectionNotice}
		if err := s.writePrompt(result.Render.Prompt); err != nil {
			return nil, err
		}
		return result, nil
	}

	s.console.Printf("Collected %d files for inclusion in the prompt.\n", len(s.selection))
	result.Render = combine.Render(combine.SourcesFromList(s.selection), s.logger)
	s.reportSkipped(result.Render)

	if err := s.writePrompt(result.Render.Prompt); err != nil {
		return nil, err
	}

	if err := combine.SaveSelection(s.cfg.SelectionFile, s.selection, s.logger); err != nil {
		result.PersistErr = err
		s.console.Warnf("Error: could not save file paths to '%s': %v\n", s.cfg.SelectionFile, err)
	} else {
		s.console.Printf("File paths saved to '%s'.\n", s.cfg.SelectionFile)
	}
	return result, nil
}

// loadSelection appends the persisted list. Entries that no longer exist are
// kept and reported; rendering skips them.
func (s *Session) loadSelection() {
	paths, source, err := combine.LoadSelection(s.cfg.SelectionFile, s.cfg.LegacySelectionFile, s.logger)
	if err != nil {
		s.console.Warnf("Warning: %v\n", err)
		return
	}
	if source == "" {
		s.console.Println("No valid file paths could be loaded from either target file.")
		return
	}
	for _, p := range paths {
		if !combine.IsRegularFile(p) {
			s.console.Warnf("Warning: '%s' from '%s' is not a valid file.\n", p, source)
		}
	}
	s.selection = append(s.selection, paths...)
	s.console.Printf("Loaded %d file paths from '%s'.\n", len(paths), source)
}

// addPath appends a path entered by the user. Duplicates are allowed.
func (s *Session) addPath(p string) {
	if !combine.IsRegularFile(p) {
		s.console.Warnf("Warning: '%s' is not a valid file. Please try again.\n", p)
		return
	}
	s.selection = append(s.selection, p)
}

func (s *Session) reportSkipped(r combine.Result) {
	for _, sk := range r.Skipped {
		s.console.Warnf("Error reading %s: %v\n", sk.Label, sk.Err)
	}
}

func (s *Session) writePrompt(prompt string) error {
	if err := combine.WritePrompt(s.cfg.OutputFile, prompt, s.logger); err != nil {
		s.console.Warnf("Error: %v\n", err)
		return err
	}
	s.console.Successf("\nPrompt generated and saved to '%s'.\n", s.cfg.OutputFile)
	return nil
}

// artifacts lists the files codeprompt itself writes, so a bulk scan of the
// working directory does not feed an earlier prompt into the next one.
func (s *Session) artifacts() []string {
	files := []string{
		s.cfg.OutputFile,
		s.cfg.IgnoreFile,
		s.cfg.SelectionFile,
		s.cfg.LegacySelectionFile,
	}
	artifacts := make([]string, 0, 2*len(files))
	for _, f := range files {
		artifacts = append(artifacts, f, filelock.LockPath(f))
	}
	return artifacts
}
