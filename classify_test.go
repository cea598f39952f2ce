package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statFixture(t *testing.T, dir, name string, size int) os.FileInfo {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info
}

func TestClassifyDirectories(t *testing.T) {
	cls := NewClassifier(newTestConfig(), t.TempDir())

	assert.Equal(t, Recurse, cls.Classify("src", "src", true, nil))
	assert.Equal(t, PruneDirectory, cls.Classify("node_modules", "node_modules", true, nil))
	assert.Equal(t, PruneDirectory, cls.Classify("sub/.git", ".git", true, nil))
}

func TestClassifyExcludedDirGlob(t *testing.T) {
	cfg := newTestConfig()
	cfg.ExcludeDirs = append(cfg.ExcludeDirs, "*_cache")
	cls := NewClassifier(cfg, t.TempDir())

	assert.Equal(t, PruneDirectory, cls.Classify("foo_cache", "foo_cache", true, nil))
}

func TestClassifyPatternBeatsWhitelist(t *testing.T) {
	dir := t.TempDir()
	cls := NewClassifier(newTestConfig(), dir)
	info := statFixture(t, dir, "app.min.js", 64)

	// .js is whitelisted, but the minified glob is the stronger signal.
	assert.Equal(t, ExcludeByPattern, cls.Classify("app.min.js", "app.min.js", false, info))
}

func TestClassifyWhitelist(t *testing.T) {
	dir := t.TempDir()
	cls := NewClassifier(newTestConfig(), dir)

	assert.Equal(t, IncludeFile, cls.Classify("main.go", "main.go", false, statFixture(t, dir, "main.go", 10)))
	assert.Equal(t, ExcludeByWhitelist, cls.Classify("img.png", "img.png", false, statFixture(t, dir, "img.png", 10)))
	// Unknown extension with no pattern match stays excluded.
	assert.Equal(t, ExcludeByWhitelist, cls.Classify("data.xyz", "data.xyz", false, statFixture(t, dir, "data.xyz", 10)))
}

func TestClassifyNoExtension(t *testing.T) {
	dir := t.TempDir()
	cls := NewClassifier(newTestConfig(), dir)

	assert.Equal(t, IncludeFile, cls.Classify("Makefile", "Makefile", false, statFixture(t, dir, "Makefile", 10)))
	assert.Equal(t, ExcludeByWhitelist, cls.Classify("randomfile", "randomfile", false, statFixture(t, dir, "randomfile", 10)))
}

func TestClassifySizeCeiling(t *testing.T) {
	dir := t.TempDir()
	cfg := newTestConfig()
	cfg.MaxFileSize = 100
	cls := NewClassifier(cfg, dir)

	// Size wins over the whitelist even for an eligible extension.
	assert.Equal(t, ExcludeBySize, cls.Classify("big.py", "big.py", false, statFixture(t, dir, "big.py", 101)))
	assert.Equal(t, IncludeFile, cls.Classify("small.py", "small.py", false, statFixture(t, dir, "small.py", 100)))
	// And over a non-whitelisted extension: oversized is its own category.
	assert.Equal(t, ExcludeBySize, cls.Classify("huge.xyz", "huge.xyz", false, statFixture(t, dir, "huge.xyz", 200)))
}

func TestClassifyGitignore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("generated.go\nlogs/\n"), 0o644))
	cls := NewClassifier(newTestConfig(), dir)

	assert.Equal(t, ExcludeByPattern, cls.Classify("generated.go", "generated.go", false, statFixture(t, dir, "generated.go", 10)))
	assert.Equal(t, PruneDirectory, cls.Classify("logs", "logs", true, nil))
	assert.Equal(t, IncludeFile, cls.Classify("kept.go", "kept.go", false, statFixture(t, dir, "kept.go", 10)))
}

func TestClassifyGitignoreDisabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("generated.go\n"), 0o644))
	cfg := newTestConfig()
	cfg.RespectGitignore = false
	cls := NewClassifier(cfg, dir)

	assert.Equal(t, IncludeFile, cls.Classify("generated.go", "generated.go", false, statFixture(t, dir, "generated.go", 10)))
}
