package combine

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"codeprompt/pkg/filelock"

	"go.uber.org/zap"
)

// ReadSource reads a source completely. Missing files wrap ErrPathNotFound;
// unreadable or non-text files wrap ErrRead.
func ReadSource(src Source, logger *zap.Logger) (FileContent, error) {
	logger.Debug("Reading file content", zap.String("filePath", src.Path))

	data, err := os.ReadFile(src.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileContent{}, fmt.Errorf("%w: %s", ErrPathNotFound, src.Path)
		}
		return FileContent{}, fmt.Errorf("%w: %s: %v", ErrRead, src.Path, err)
	}
	if !isText(data) {
		return FileContent{}, fmt.Errorf("%w: %s: binary or non-UTF-8 content", ErrRead, src.Path)
	}

	logger.Debug("Successfully read file content",
		zap.String("filePath", src.Path),
		zap.Int("contentSizeBytes", len(data)))

	return FileContent{
		Path:    src.Label,
		Content: string(data),
	}, nil
}

// Render reads every source in order and formats the non-empty ones into a
// prompt. A source that cannot be read is recorded in Skipped and the run
// goes on; whitespace-only files are recorded in Empty.
func Render(sources []Source, logger *zap.Logger) Result {
	var (
		result   Result
		contents []FileContent
	)

	for _, src := range sources {
		fc, err := ReadSource(src, logger)
		if err != nil {
			logger.Warn("Skipping file", zap.String("filePath", src.Path), zap.Error(err))
			result.Skipped = append(result.Skipped, Skipped{Label: src.Label, Err: err})
			continue
		}
		if strings.TrimSpace(fc.Content) == "" {
			logger.Debug("Skipping empty file", zap.String("filePath", src.Path))
			result.Empty = append(result.Empty, src.Label)
			continue
		}
		contents = append(contents, fc)
		result.Included = append(result.Included, src.Label)
	}

	result.Prompt = FormatPrompt(contents)
	logger.Debug("Rendered prompt",
		zap.Int("included", len(result.Included)),
		zap.Int("empty", len(result.Empty)),
		zap.Int("skipped", len(result.Skipped)))
	return result
}

// FormatPrompt lays out the entries as
//
//	My codebase includes
//	'a.go' with '...',
//	'b.go' with '...'
//	.
//
// Single quotes in paths and contents are escaped as \'.
func FormatPrompt(contents []FileContent) string {
	entries := make([]string, 0, len(contents))
	for _, fc := range contents {
		entries = append(entries, fmt.Sprintf("'%s' with '%s'", escapeQuotes(fc.Path), escapeQuotes(fc.Content)))
	}
	return strings.Join([]string{Preamble, strings.Join(entries, ",\n"), Terminator}, "\n")
}

// WritePrompt overwrites the output file with prompt.
func WritePrompt(path, prompt string, logger *zap.Logger) error {
	logger.Debug("Writing prompt to output file", zap.String("outputFile", path))
	if err := filelock.AtomicWrite(path, []byte(prompt)); err != nil {
		logger.Error("Failed to write prompt", zap.String("outputFile", path), zap.Error(err))
		return fmt.Errorf("failed to write prompt file: %w", err)
	}
	return nil
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
