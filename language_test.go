package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkerFor(t *testing.T) {
	ld, err := loadLanguageData()
	require.NoError(t, err)

	tests := []struct {
		path    string
		open    string
		closing string
	}{
		{"main.go", "//", ""},
		{"script.py", "#", ""},
		{"setup.sh", "#", ""},
		{"query.sql", "--", ""},
		{"index.html", "<!--", "-->"},
		{"notes.md", "<!--", "-->"},
		{"styles.css", "/*", "*/"},
		{"Makefile", "#", ""},
		{"unknown.zzz", "#", ""},
	}
	for _, tt := range tests {
		open, closing := ld.MarkerFor(tt.path)
		assert.Equal(t, tt.open, open, tt.path)
		assert.Equal(t, tt.closing, closing, tt.path)
	}
}

func TestIsDocFile(t *testing.T) {
	ld, err := loadLanguageData()
	require.NoError(t, err)

	assert.True(t, ld.IsDocFile("README.md"))
	assert.True(t, ld.IsDocFile("guide.rst"))
	assert.True(t, ld.IsDocFile("index.html"))
	assert.False(t, ld.IsDocFile("main.go"))
	assert.False(t, ld.IsDocFile("config.yaml"))
	assert.False(t, ld.IsDocFile("unknown.zzz"))
}

func TestLanguageForFilePrefersFilename(t *testing.T) {
	ld, err := loadLanguageData()
	require.NoError(t, err)

	lang, ok := ld.LanguageForFile("sub/dir/Makefile")
	require.True(t, ok)
	assert.Equal(t, "Makefile", lang)
}

// chdir is t.Chdir for toolchains before Go 1.24: change into dir and
// restore the original working directory when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoadLanguageDataOverride(t *testing.T) {
	dir := t.TempDir()
	override := `Cobol:
  type: programming
  marker: "*>"
  extensions: [".cob"]
Markdown:
  type: prose
  marker: ";;"
  extensions: [".md"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "languages.yml"), []byte(override), 0o644))
	chdir(t, dir)

	ld, err := loadLanguageData()
	require.NoError(t, err)

	open, _ := ld.MarkerFor("legacy.cob")
	assert.Equal(t, "*>", open)
	open, _ = ld.MarkerFor("notes.md")
	assert.Equal(t, ";;", open)
}

func TestLoadLanguageDataBadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "languages.yml"), []byte(":\n\t- broken"), 0o644))
	chdir(t, dir)

	_, err := loadLanguageData()
	assert.Error(t, err)
}
