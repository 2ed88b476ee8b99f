package combine

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"codeprompt/pkg/filelock"

	"go.uber.org/zap"
)

// ParseSelection splits list content into paths, one per line, dropping blank
// lines. With skipComments, lines starting with "#" are dropped too. Duplicates
// are kept.
func ParseSelection(data []byte, skipComments bool) []string {
	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if skipComments && strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	return paths
}

// LoadSelection reads the primary list, or the legacy list when the primary is
// absent or empty. It returns the paths and the file they came from; source is
// empty when neither list yielded any path.
func LoadSelection(primary, legacy string, logger *zap.Logger) (paths []string, source string, err error) {
	candidates := []struct {
		path         string
		skipComments bool
	}{
		{primary, false},
		{legacy, true},
	}

	for _, c := range candidates {
		if c.path == "" {
			continue
		}
		data, err := os.ReadFile(c.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Debug("Selection list does not exist", zap.String("filePath", c.path))
				continue
			}
			logger.Error("Failed to read selection list", zap.String("filePath", c.path), zap.Error(err))
			return nil, "", fmt.Errorf("%w: %s: %v", ErrRead, c.path, err)
		}

		paths = ParseSelection(data, c.skipComments)
		if len(paths) > 0 {
			logger.Debug("Loaded selection list", zap.String("filePath", c.path), zap.Int("pathCount", len(paths)))
			return paths, c.path, nil
		}
		logger.Debug("Selection list is empty", zap.String("filePath", c.path))
	}

	return nil, "", nil
}

// SaveSelection overwrites path with one entry per line.
func SaveSelection(path string, paths []string, logger *zap.Logger) error {
	var buf bytes.Buffer
	for _, p := range paths {
		buf.WriteString(p)
		buf.WriteByte('\n')
	}
	if err := filelock.WriteFile(path, buf.Bytes()); err != nil {
		logger.Error("Failed to save selection list", zap.String("filePath", path), zap.Error(err))
		return fmt.Errorf("%w: %s: %v", ErrPersistence, path, err)
	}
	logger.Debug("Saved selection list", zap.String("filePath", path), zap.Int("pathCount", len(paths)))
	return nil
}

// SourcesFromList labels every path with itself.
func SourcesFromList(paths []string) []Source {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, Source{Label: p, Path: p})
	}
	return sources
}

// IsRegularFile reports whether path names an existing regular file.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
