package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LanguageInfo describes how files of one language are labelled in the
// contents section of the report.
type LanguageInfo struct {
	Type        string   `yaml:"type"` // "programming", "data", "markup" or "prose"
	MarkerOpen  string   `yaml:"marker"`
	MarkerClose string   `yaml:"marker_close"`
	Extensions  []string `yaml:"extensions"`
	Filenames   []string `yaml:"filenames"`
}

// LanguageMap maps language names to their details.
type LanguageMap map[string]LanguageInfo

// LanguageData holds the merged language table plus extension/filename
// lookup indexes.
type LanguageData struct {
	Langs        LanguageMap
	extensionMap map[string]string
	filenameMap  map[string]string
}

// builtinLanguages is the default table; a languages.yml in the config
// directory or the working directory overrides or extends it.
var builtinLanguages = LanguageMap{
	"Go":         {Type: "programming", MarkerOpen: "//", Extensions: []string{".go"}},
	"C":          {Type: "programming", MarkerOpen: "//", Extensions: []string{".c", ".h"}},
	"C++":        {Type: "programming", MarkerOpen: "//", Extensions: []string{".cpp", ".cc", ".cxx", ".hpp"}},
	"C#":         {Type: "programming", MarkerOpen: "//", Extensions: []string{".cs"}},
	"Java":       {Type: "programming", MarkerOpen: "//", Extensions: []string{".java"}},
	"Kotlin":     {Type: "programming", MarkerOpen: "//", Extensions: []string{".kt", ".kts"}},
	"Rust":       {Type: "programming", MarkerOpen: "//", Extensions: []string{".rs"}},
	"Swift":      {Type: "programming", MarkerOpen: "//", Extensions: []string{".swift"}},
	"Dart":       {Type: "programming", MarkerOpen: "//", Extensions: []string{".dart"}},
	"JavaScript": {Type: "programming", MarkerOpen: "//", Extensions: []string{".js", ".jsx", ".mjs", ".cjs"}},
	"TypeScript": {Type: "programming", MarkerOpen: "//", Extensions: []string{".ts", ".tsx"}},
	"PHP":        {Type: "programming", MarkerOpen: "//", Extensions: []string{".php"}},
	"Scala":      {Type: "programming", MarkerOpen: "//", Extensions: []string{".scala"}},
	"Protobuf":   {Type: "data", MarkerOpen: "//", Extensions: []string{".proto"}},
	"GraphQL":    {Type: "data", MarkerOpen: "#", Extensions: []string{".graphql", ".gql"}},

	"Python": {Type: "programming", MarkerOpen: "#", Extensions: []string{".py", ".pyi", ".pyw"}},
	"Ruby":   {Type: "programming", MarkerOpen: "#", Extensions: []string{".rb", ".erb"}, Filenames: []string{"Rakefile", "Gemfile"}},
	"Perl":   {Type: "programming", MarkerOpen: "#", Extensions: []string{".pl", ".pm"}},
	"R":      {Type: "programming", MarkerOpen: "#", Extensions: []string{".r"}},
	"Shell": {Type: "programming", MarkerOpen: "#",
		Extensions: []string{".sh", ".bash", ".zsh", ".fish"}},
	"PowerShell": {Type: "programming", MarkerOpen: "#", Extensions: []string{".ps1", ".psm1"}},
	"Makefile": {Type: "programming", MarkerOpen: "#",
		Extensions: []string{".mk"}, Filenames: []string{"Makefile", "CMakeLists.txt", "Jenkinsfile"}},
	"Dockerfile": {Type: "programming", MarkerOpen: "#", Filenames: []string{"Dockerfile"}},
	"YAML":       {Type: "data", MarkerOpen: "#", Extensions: []string{".yaml", ".yml"}},
	"TOML":       {Type: "data", MarkerOpen: "#", Extensions: []string{".toml"}},
	"INI": {Type: "data", MarkerOpen: "#",
		Extensions: []string{".ini", ".cfg", ".conf", ".properties", ".env"}, Filenames: []string{".gitignore", ".gitattributes", ".editorconfig", ".env"}},
	"CMake": {Type: "programming", MarkerOpen: "#", Extensions: []string{".cmake"}},

	"SQL": {Type: "data", MarkerOpen: "--", Extensions: []string{".sql"}},
	"Lua": {Type: "programming", MarkerOpen: "--", Extensions: []string{".lua"}},

	"HTML":     {Type: "markup", MarkerOpen: "<!--", MarkerClose: "-->", Extensions: []string{".html", ".htm"}},
	"XML":      {Type: "data", MarkerOpen: "<!--", MarkerClose: "-->", Extensions: []string{".xml", ".svg"}},
	"Markdown": {Type: "prose", MarkerOpen: "<!--", MarkerClose: "-->", Extensions: []string{".md", ".mdx"}},
	"Vue":      {Type: "markup", MarkerOpen: "<!--", MarkerClose: "-->", Extensions: []string{".vue"}},
	"Svelte":   {Type: "markup", MarkerOpen: "<!--", MarkerClose: "-->", Extensions: []string{".svelte"}},

	"CSS":  {Type: "markup", MarkerOpen: "/*", MarkerClose: "*/", Extensions: []string{".css", ".scss", ".sass", ".less"}},
	"JSON": {Type: "data", MarkerOpen: "//", Extensions: []string{".json", ".jsonc"}},

	"reStructuredText": {Type: "prose", MarkerOpen: "..", Extensions: []string{".rst"}},
	"AsciiDoc":         {Type: "prose", MarkerOpen: "//", Extensions: []string{".adoc"}},
	"Org":              {Type: "prose", MarkerOpen: "#", Extensions: []string{".org"}},
	"LaTeX":            {Type: "prose", MarkerOpen: "%", Extensions: []string{".tex"}},
	"Text":             {Type: "prose", MarkerOpen: "#", Extensions: []string{".txt"}, Filenames: []string{"LICENSE", "README"}},

	"Batch": {Type: "programming", MarkerOpen: "REM", Extensions: []string{".bat", ".cmd"}},
	"Gradle": {Type: "programming", MarkerOpen: "//",
		Extensions: []string{".gradle"}},
}

// loadLanguageData builds the lookup table, merging an optional
// languages.yml over the builtin defaults. A missing file is not an error.
func loadLanguageData() (*LanguageData, error) {
	langs := make(LanguageMap, len(builtinLanguages))
	for name, info := range builtinLanguages {
		langs[name] = info
	}

	configPaths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		configPaths = append([]string{filepath.Join(home, ".config", "mergencopy")}, configPaths...)
	}
	for _, p := range configPaths {
		candidate := filepath.Join(p, "languages.yml")
		raw, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		var overrides LanguageMap
		if err := yaml.Unmarshal(raw, &overrides); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", candidate, err)
		}
		for name, info := range overrides {
			langs[name] = info
		}
		break
	}

	data := &LanguageData{
		Langs:        langs,
		extensionMap: make(map[string]string),
		filenameMap:  make(map[string]string),
	}
	for name, info := range langs {
		for _, ext := range info.Extensions {
			lower := strings.ToLower(ext)
			if data.extensionMap[lower] == "" {
				data.extensionMap[lower] = name
			}
		}
		for _, fname := range info.Filenames {
			if data.filenameMap[fname] == "" {
				data.filenameMap[fname] = name
			}
		}
	}
	return data, nil
}

// LanguageForFile resolves the language for a path. Exact filename matches
// take precedence over extensions.
func (ld *LanguageData) LanguageForFile(path string) (string, bool) {
	if ld == nil {
		return "", false
	}
	base := filepath.Base(path)
	if lang, ok := ld.filenameMap[base]; ok {
		return lang, true
	}
	if ext := strings.ToLower(filepath.Ext(base)); ext != "" {
		if lang, ok := ld.extensionMap[ext]; ok {
			return lang, true
		}
	}
	return "", false
}

// MarkerFor returns the comment marker pair used to label a file's header in
// the contents block. Unknown files get "#", which is cosmetic anyway.
func (ld *LanguageData) MarkerFor(path string) (open, closing string) {
	if lang, ok := ld.LanguageForFile(path); ok {
		info := ld.Langs[lang]
		if info.MarkerOpen != "" {
			return info.MarkerOpen, info.MarkerClose
		}
	}
	return "#", ""
}

// IsDocFile reports whether a path counts as documentation rather than
// code/config. Documentation is rendered after code in the contents block.
func (ld *LanguageData) IsDocFile(path string) bool {
	if lang, ok := ld.LanguageForFile(path); ok {
		t := ld.Langs[lang].Type
		return t == "prose" || t == "markup"
	}
	return false
}
