// Package ignore decides which paths are left out of a bulk scan.
//
// A rule is one line of the ignore list. A candidate path is excluded when a
// rule equals it, when it lies below a rule taken as a directory, or when a
// rule of the form ".ext" is a suffix of it:
//
//	rules := ignore.New(logger, "node_modules", ".log", "/tmp/cache")
//	rules.Excluded("node_modules/left-pad/index.js") // true, prefix
//	rules.Excluded("build/out.log")                  // true, extension
//
// There are no wildcards, negations or comments.
package ignore

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"codeprompt/pkg/filelock"

	"go.uber.org/zap"
)

// MatchKind reports which rule form excluded a path.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchExact
	MatchPrefix
	MatchExtension
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchPrefix:
		return "prefix"
	case MatchExtension:
		return "extension"
	default:
		return "none"
	}
}

// Rules is a set of ignore rules. The zero value is not usable; use New or Load.
type Rules struct {
	rules  map[string]struct{}
	logger *zap.Logger
}

// New returns a rule set holding the given rules. Blank rules are dropped.
func New(logger *zap.Logger, rules ...string) *Rules {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Rules{
		rules:  make(map[string]struct{}),
		logger: logger,
	}
	for _, rule := range rules {
		r.Add(rule)
	}
	return r
}

// Load reads one rule per line from path. A missing file yields an empty set.
func Load(path string, logger *zap.Logger) (*Rules, error) {
	r := New(logger)

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debug("Ignore file does not exist, starting empty", zap.String("filePath", path))
			return r, nil
		}
		r.logger.Error("Failed to read ignore file", zap.String("filePath", path), zap.Error(err))
		return nil, fmt.Errorf("failed to read ignore file %s: %w", path, err)
	}

	lines := strings.Split(string(content), "\n")
	for _, line := range lines {
		r.Add(line)
	}
	r.logger.Debug("Loaded ignore rules", zap.String("filePath", path), zap.Int("ruleCount", r.Len()))
	return r, nil
}

// Add inserts a rule. It returns false when the rule is blank or already present.
func (r *Rules) Add(rule string) bool {
	rule = normalizeRule(rule)
	if rule == "" {
		return false
	}
	if _, ok := r.rules[rule]; ok {
		return false
	}
	r.rules[rule] = struct{}{}
	r.logger.Debug("Added ignore rule", zap.String("rule", rule))
	return true
}

// Contains reports whether the rule, after normalization, is in the set.
func (r *Rules) Contains(rule string) bool {
	_, ok := r.rules[normalizeRule(rule)]
	return ok
}

// Len returns the number of rules.
func (r *Rules) Len() int {
	return len(r.rules)
}

// List returns the rules sorted.
func (r *Rules) List() []string {
	list := make([]string, 0, len(r.rules))
	for rule := range r.rules {
		list = append(list, rule)
	}
	sort.Strings(list)
	return list
}

// Excluded reports whether p is excluded by any rule.
func (r *Rules) Excluded(p string) bool {
	kind, _ := r.Match(p)
	return kind != MatchNone
}

// Match checks p against every rule and returns the first kind that matches,
// in the order exact, prefix, extension, together with the matching rule.
func (r *Rules) Match(p string) (MatchKind, string) {
	p = filepath.ToSlash(p)
	if p == "" {
		return MatchNone, ""
	}
	rules := r.List()

	for _, rule := range rules {
		if p == rule {
			return r.matched(p, MatchExact, rule)
		}
	}
	for _, rule := range rules {
		if hasDirPrefix(p, rule) {
			return r.matched(p, MatchPrefix, rule)
		}
	}
	for _, rule := range rules {
		if isExtensionRule(rule) && len(p) > len(rule) && strings.HasSuffix(p, rule) {
			return r.matched(p, MatchExtension, rule)
		}
	}
	return MatchNone, ""
}

func (r *Rules) matched(p string, kind MatchKind, rule string) (MatchKind, string) {
	r.logger.Debug("Path matches ignore rule",
		zap.String("path", p),
		zap.String("rule", rule),
		zap.Stringer("kind", kind))
	return kind, rule
}

// Save rewrites path with the sorted rules, one per line.
func (r *Rules) Save(path string) error {
	var buf bytes.Buffer
	for _, rule := range r.List() {
		buf.WriteString(rule)
		buf.WriteByte('\n')
	}
	if err := filelock.WriteFile(path, buf.Bytes()); err != nil {
		r.logger.Error("Failed to save ignore file", zap.String("filePath", path), zap.Error(err))
		return fmt.Errorf("failed to save ignore file %s: %w", path, err)
	}
	r.logger.Debug("Saved ignore file", zap.String("filePath", path), zap.Int("ruleCount", r.Len()))
	return nil
}

// isExtensionRule reports whether rule is a suffix rule such as ".log".
// "..hidden" and "../shared" are plain paths.
func isExtensionRule(rule string) bool {
	return len(rule) > 1 && rule[0] == '.' && rule[1] != '.' && rule[1] != '/'
}

// hasDirPrefix reports whether p lies below the directory rule. "src" covers
// "src/main.go" but not "srcgen/main.go".
func hasDirPrefix(p, rule string) bool {
	if rule == "/" {
		return strings.HasPrefix(p, "/") && p != "/"
	}
	return strings.HasPrefix(p, rule+"/")
}

// normalizeRule trims a rule and cleans it into slash form.
func normalizeRule(rule string) string {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return ""
	}
	rule = path.Clean(filepath.ToSlash(rule))
	if rule == "." {
		return ""
	}
	return rule
}
