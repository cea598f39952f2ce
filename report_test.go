package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func runPipeline(t *testing.T, roots []string, cfg *Config) (*TraversalResult, []ReadResult) {
	t.Helper()
	tr, err := Traverse(roots, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	results := NewReader(cfg, nil, zaptest.NewLogger(t)).ReadAll(tr.Candidates, tr.Stats)
	return tr, results
}

func testLangData(t *testing.T) *LanguageData {
	t.Helper()
	ld, err := loadLanguageData()
	require.NoError(t, err)
	return ld
}

func TestReportFixtureScenario(t *testing.T) {
	proj := buildFixtureProject(t)
	cfg := newTestConfig()
	tr, results := runPipeline(t, []string{proj}, cfg)

	report := formatReport(tr, results, testLangData(t), time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), false)

	// Tree lists everything, pruned directory childless.
	assert.Contains(t, report, "node_modules/ [excluded]")
	assert.NotContains(t, report, "x.js")
	assert.Contains(t, report, "app.min.js [excluded]")
	assert.Contains(t, report, "img.png [excluded]")

	// Contents carry only the one text file, with its comment-marker header.
	assert.Contains(t, report, "# FILE: proj/a.py")
	assert.Contains(t, report, "print('hello')")
	assert.NotContains(t, report, "module.exports")

	// Excluded-by-pattern contributes zero bytes to the contents block.
	contents := report[strings.Index(report, "===== FILE CONTENTS ====="):]
	assert.NotContains(t, contents, "app.min.js")

	assert.Equal(t, 1, tr.Stats.Processed)
	assert.Equal(t, 1, tr.Stats.SkippedPattern)
	assert.Equal(t, 1, tr.Stats.SkippedWhitelist)
	assert.Equal(t, 1, tr.Stats.PrunedDirs)
	assert.Contains(t, report, "Files merged: 1")
}

func TestReportByteIdenticalForFixedClock(t *testing.T) {
	proj := buildFixtureProject(t)
	cfg := newTestConfig()
	clock := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tr1, res1 := runPipeline(t, []string{proj}, cfg)
	tr2, res2 := runPipeline(t, []string{proj}, cfg)

	assert.Equal(t,
		formatReport(tr1, res1, testLangData(t), clock, false),
		formatReport(tr2, res2, testLangData(t), clock, false))
}

func TestReportOrdersCodeBeforeDocs(t *testing.T) {
	dir := t.TempDir()
	proj := filepath.Join(dir, "proj")
	require.NoError(t, os.MkdirAll(proj, 0o755))
	// "README.md" sorts before "zz.go"; grouping must still put the code
	// file first.
	require.NoError(t, os.WriteFile(filepath.Join(proj, "README.md"), []byte("# readme\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(proj, "zz.go"), []byte("package zz\n"), 0o644))

	cfg := newTestConfig()
	tr, results := runPipeline(t, []string{proj}, cfg)
	report := formatReport(tr, results, testLangData(t), time.Now(), false)

	goIdx := strings.Index(report, "// FILE: proj/zz.go")
	mdIdx := strings.Index(report, "<!-- FILE: proj/README.md -->")
	require.GreaterOrEqual(t, goIdx, 0)
	require.GreaterOrEqual(t, mdIdx, 0)
	assert.Less(t, goIdx, mdIdx)
}

func TestReportModifiedTimestamp(t *testing.T) {
	dir := t.TempDir()
	proj := filepath.Join(dir, "proj")
	require.NoError(t, os.MkdirAll(proj, 0o755))
	path := filepath.Join(proj, "a.go")
	require.NoError(t, os.WriteFile(path, []byte("package a\n"), 0o644))
	stamp := time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	cfg := newTestConfig()
	tr, results := runPipeline(t, []string{proj}, cfg)
	report := formatReport(tr, results, testLangData(t), time.Now(), false)

	assert.Contains(t, report, "// MODIFIED: 2025-01-02 03:04:05")
}

func TestReportEmptyRunIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	proj := filepath.Join(dir, "proj")
	require.NoError(t, os.MkdirAll(proj, 0o755))

	cfg := newTestConfig()
	tr, results := runPipeline(t, []string{proj}, cfg)
	report := formatReport(tr, results, testLangData(t), time.Now(), false)

	assert.Contains(t, report, "Files merged: 0")
	assert.Contains(t, report, "===== FILE CONTENTS =====")
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short.go", truncatePath("short.go", 80))

	long := strings.Repeat("a", 50) + "/" + strings.Repeat("b", 50)
	got := truncatePath(long, 20)
	assert.Len(t, got, 20)
	assert.Contains(t, got, "...")
	assert.True(t, strings.HasPrefix(long, got[:8]))
	assert.True(t, strings.HasSuffix(long, got[len(got)-9:]))
}
