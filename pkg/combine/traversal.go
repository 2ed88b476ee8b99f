package combine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"codeprompt/pkg/ignore"

	"go.uber.org/zap"
)

// CollectFiles walks root depth-first in lexical order and returns the
// root-relative, slash-separated paths of every file the rules keep.
// Directories matched by a rule are not descended into. Files whose absolute
// path is in skip are dropped regardless of the rules. A symlinked root is
// followed; symlinks below it are not.
func CollectFiles(root string, rules *ignore.Rules, skip []string, logger *zap.Logger) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		logger.Error("Root directory not found", zap.String("root", root), zap.Error(err))
		return nil, fmt.Errorf("%w: %s is not a directory", ErrPathNotFound, root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	// WalkDir does not follow a symlinked root
	walkRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	skipSet := make(map[string]struct{}, len(skip))
	for _, s := range skip {
		if resolved, ok := resolvePath(s); ok {
			skipSet[resolved] = struct{}{}
		}
	}

	var files []string
	logger.Debug("Starting file collection",
		zap.String("root", absRoot),
		zap.String("resolvedRoot", walkRoot),
		zap.Int("ruleCount", rules.Len()))

	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() && path != walkRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if path == walkRoot {
			return nil
		}

		relPath, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		// absolute rules may name the root as given or as resolved
		excluded := rules.Excluded(relPath) || rules.Excluded(path) ||
			rules.Excluded(filepath.Join(absRoot, filepath.FromSlash(relPath)))
		if d.IsDir() {
			if excluded {
				logger.Debug("Skipping ignored directory", zap.String("directory", relPath))
				return filepath.SkipDir
			}
			return nil
		}
		if excluded {
			logger.Debug("Skipping ignored file", zap.String("filePath", relPath))
			return nil
		}
		if _, ok := skipSet[path]; ok {
			logger.Debug("Skipping codeprompt artifact", zap.String("filePath", relPath))
			return nil
		}

		files = append(files, relPath)
		return nil
	})
	if err != nil {
		logger.Error("Error during file traversal", zap.Error(err))
		return files, err
	}

	logger.Debug("Completed file collection", zap.Int("fileCount", len(files)))
	return files, nil
}

// resolvePath returns p in the form the walk reports it: absolute, with its
// directory symlink-free. p itself need not exist and is not followed.
func resolvePath(p string) (string, bool) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", false
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return abs, true
	}
	return filepath.Join(dir, filepath.Base(abs)), true
}

// SourcesFromRoot turns root-relative paths into sources labelled by those paths.
func SourcesFromRoot(root string, relPaths []string) []Source {
	sources := make([]Source, 0, len(relPaths))
	for _, rel := range relPaths {
		sources = append(sources, Source{
			Label: rel,
			Path:  filepath.Join(root, filepath.FromSlash(rel)),
		})
	}
	return sources
}
