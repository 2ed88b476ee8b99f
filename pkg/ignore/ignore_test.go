package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	rules := New(nil, "secrets", "docs/", "main.go", ".log", ".tar.gz", "/abs/cache")

	tests := []struct {
		path string
		kind MatchKind
		rule string
	}{
		{"secrets", MatchExact, "secrets"},
		{"secrets/key.txt", MatchPrefix, "secrets"},
		{"secretsfile.txt", MatchNone, ""},
		{"docs", MatchExact, "docs"},
		{"docs/guide/intro.md", MatchPrefix, "docs"},
		{"main.go", MatchExact, "main.go"},
		{"cmd/main.go", MatchNone, ""},
		{"build/out.log", MatchExtension, ".log"},
		{"release.tar.gz", MatchExtension, ".tar.gz"},
		{"catalog", MatchNone, ""},
		{"/abs/cache/blob", MatchPrefix, "/abs/cache"},
		{"abs/cache/blob", MatchNone, ""},
		{"src/app.go", MatchNone, ""},
		{"", MatchNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			kind, rule := rules.Match(tt.path)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.rule, rule)
			assert.Equal(t, tt.kind != MatchNone, rules.Excluded(tt.path))
		})
	}
}

func TestMatchDotPathsAreNotExtensions(t *testing.T) {
	rules := New(nil, "..hidden", "../shared", "..")

	tests := []struct {
		path string
		kind MatchKind
	}{
		{"x..hidden", MatchNone},
		{"src/..hidden", MatchNone},
		{"..hidden", MatchExact},
		{"lib/../shared", MatchNone},
		{"../shared/util.go", MatchPrefix},
		{"a..", MatchNone},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			kind, _ := rules.Match(tt.path)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestIsExtensionRule(t *testing.T) {
	assert.True(t, isExtensionRule(".log"))
	assert.True(t, isExtensionRule(".tar.gz"))
	assert.False(t, isExtensionRule("."))
	assert.False(t, isExtensionRule(".."))
	assert.False(t, isExtensionRule("..hidden"))
	assert.False(t, isExtensionRule("./x"))
	assert.False(t, isExtensionRule("log"))
}

func TestMatchPrecedence(t *testing.T) {
	// ".env" is both an exact rule for the root file and a suffix of "config/.env"
	rules := New(nil, ".env", "config")

	kind, _ := rules.Match(".env")
	assert.Equal(t, MatchExact, kind)

	kind, rule := rules.Match("config/.env")
	assert.Equal(t, MatchPrefix, kind, "prefix wins over extension")
	assert.Equal(t, "config", rule)

	kind, _ = rules.Match("other/.env")
	assert.Equal(t, MatchExtension, kind)
}

func TestMatchIsDeterministic(t *testing.T) {
	rules := New(nil, "a", "a/b", ".go")
	first, firstRule := rules.Match("a/b/c.go")
	for i := 0; i < 20; i++ {
		kind, rule := rules.Match("a/b/c.go")
		assert.Equal(t, first, kind)
		assert.Equal(t, firstRule, rule)
	}
}

func TestAdd(t *testing.T) {
	rules := New(nil)

	assert.True(t, rules.Add("vendor"))
	assert.False(t, rules.Add("vendor"), "duplicate")
	assert.False(t, rules.Add("./vendor/"), "same rule after cleaning")
	assert.False(t, rules.Add("   "), "blank")
	assert.False(t, rules.Add("."), "dot covers nothing")
	assert.True(t, rules.Contains("vendor/"))
	assert.Equal(t, 1, rules.Len())
}

func TestMatchKindString(t *testing.T) {
	assert.Equal(t, "exact", MatchExact.String())
	assert.Equal(t, "prefix", MatchPrefix.String())
	assert.Equal(t, "extension", MatchExtension.String())
	assert.Equal(t, "none", MatchNone.String())
}

func TestLoadMissingFile(t *testing.T) {
	rules, err := Load(filepath.Join(t.TempDir(), "ignore_paths.txt"), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, rules.Len())
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignore_paths.txt")
	require.NoError(t, os.WriteFile(path, []byte("node_modules\n\n  .pyc  \r\nnode_modules\n"), 0644))

	rules, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{".pyc", "node_modules"}, rules.List())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignore_paths.txt")
	rules := New(nil, "zeta", "alpha", ".log")

	require.NoError(t, rules.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ".log\nalpha\nzeta\n", string(data))

	loaded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, rules.List(), loaded.List())
}

func TestSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// parent "directory" is a regular file
	err := New(nil, "a").Save(filepath.Join(blocker, "ignore_paths.txt"))
	assert.Error(t, err)
}
