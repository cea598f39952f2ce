package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config carries every knob the classification/decode pipeline needs. It is
// built once from viper at startup and passed by reference into the
// classifier, detector, traversal and formatter; nothing mutates it after
// construction.
type Config struct {
	// Whitelist is the exhaustive set of extensions (with dot, lowercased)
	// eligible for content inclusion. Absence means exclusion.
	Whitelist map[string]bool

	// NoExtNames lists extensionless file names that are still eligible
	// (Makefile, Dockerfile, ...).
	NoExtNames map[string]bool

	// ExcludeDirs holds directory names or globs that prune traversal.
	ExcludeDirs []string

	// ExcludeGlobs holds file globs (doublestar syntax) for generated or
	// minified artifacts: visible in the tree, never read.
	ExcludeGlobs []string

	// MaxFileSize is the per-file byte ceiling, checked via stat before any
	// read.
	MaxFileSize int64

	// MaxPathDisplayLen bounds paths printed in live status lines; longer
	// paths are shortened in the middle with "...".
	MaxPathDisplayLen int

	// NonPrintableThreshold is the ratio of non-printable runes in the
	// leading sample above which content is classified as binary.
	NonPrintableThreshold float64

	// SampleSize is how many leading bytes are sniffed before committing to
	// a full decode.
	SampleSize int

	// MinSampleRunes disables the garbage check for samples shorter than
	// this, so tiny legitimate files are not misjudged.
	MinSampleRunes int

	// Workers sizes the read pool; 0 means runtime.NumCPU().
	Workers int

	ShowHidden       bool
	RespectGitignore bool
	CountTokens      bool
	TokenModel       string
}

const (
	defaultMaxFileSize    = 20 * 1024 * 1024
	defaultSampleSize     = 8192
	defaultMinSampleRunes = 100
	defaultNPThreshold    = 0.05
	defaultMaxPathDisplay = 80
)

var defaultWhitelist = []string{
	".go", ".py", ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs",
	".c", ".h", ".cpp", ".cc", ".hpp", ".cs", ".java", ".kt", ".rs",
	".rb", ".php", ".swift", ".dart", ".lua", ".pl", ".r", ".scala",
	".sh", ".bash", ".zsh", ".fish", ".ps1", ".bat", ".cmd",
	".html", ".htm", ".css", ".scss", ".sass", ".less", ".vue", ".svelte",
	".json", ".jsonc", ".yaml", ".yml", ".toml", ".xml", ".ini", ".cfg",
	".conf", ".env", ".properties", ".sql", ".graphql", ".proto",
	".md", ".mdx", ".rst", ".txt", ".tex", ".adoc", ".org",
	".gradle", ".cmake", ".mk",
}

var defaultNoExtNames = []string{
	"Makefile", "Dockerfile", "Jenkinsfile", "Rakefile", "Gemfile",
	"LICENSE", "README", "CMakeLists.txt", ".gitignore", ".gitattributes",
	".editorconfig", ".env",
}

var defaultExcludeDirs = []string{
	".git", ".hg", ".svn", ".idea", ".vscode",
	"node_modules", "vendor", "target", "dist", "build", "out",
	"__pycache__", ".venv", "venv", ".tox", ".mypy_cache",
	"coverage", ".next", ".cache",
}

var defaultExcludeGlobs = []string{
	"*.min.js", "*.min.css", "*.bundle.js", "*.map",
	"package-lock.json", "yarn.lock", "pnpm-lock.yaml", "Cargo.lock",
	"go.sum", "*.snap",
}

func setConfigDefaults() {
	viper.SetDefault("extensions", defaultWhitelist)
	viper.SetDefault("no_ext_names", defaultNoExtNames)
	viper.SetDefault("exclude_dirs", defaultExcludeDirs)
	viper.SetDefault("exclude_globs", defaultExcludeGlobs)
	viper.SetDefault("max_size", defaultMaxFileSize)
	viper.SetDefault("max_path_len", defaultMaxPathDisplay)
	viper.SetDefault("non_printable_threshold", defaultNPThreshold)
	viper.SetDefault("sample_size", defaultSampleSize)
	viper.SetDefault("min_sample_runes", defaultMinSampleRunes)
	viper.SetDefault("workers", 0)
	viper.SetDefault("hidden", false)
	viper.SetDefault("no_ignore", false)
	viper.SetDefault("no_tokens", false)
	viper.SetDefault("model", "gpt-4o")
}

// buildConfig materializes the immutable pipeline configuration from the
// merged viper state (defaults < config file < env < flags).
func buildConfig() (*Config, error) {
	cfg := &Config{
		Whitelist:             make(map[string]bool),
		NoExtNames:            make(map[string]bool),
		ExcludeDirs:           viper.GetStringSlice("exclude_dirs"),
		ExcludeGlobs:          viper.GetStringSlice("exclude_globs"),
		MaxFileSize:           viper.GetInt64("max_size"),
		MaxPathDisplayLen:     viper.GetInt("max_path_len"),
		NonPrintableThreshold: viper.GetFloat64("non_printable_threshold"),
		SampleSize:            viper.GetInt("sample_size"),
		MinSampleRunes:        viper.GetInt("min_sample_runes"),
		Workers:               viper.GetInt("workers"),
		ShowHidden:            viper.GetBool("hidden"),
		RespectGitignore:      !viper.GetBool("no_ignore"),
		CountTokens:           !viper.GetBool("no_tokens"),
		TokenModel:            viper.GetString("model"),
	}

	for _, ext := range viper.GetStringSlice("extensions") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.Whitelist[ext] = true
	}
	if len(cfg.Whitelist) == 0 {
		return nil, fmt.Errorf("extension whitelist is empty; nothing could ever be included")
	}

	for _, name := range viper.GetStringSlice("no_ext_names") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.NoExtNames[name] = true
		}
	}

	if cfg.MaxFileSize <= 0 {
		return nil, fmt.Errorf("max_size must be positive, got %d", cfg.MaxFileSize)
	}
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = defaultSampleSize
	}
	if cfg.NonPrintableThreshold <= 0 || cfg.NonPrintableThreshold >= 1 {
		return nil, fmt.Errorf("non_printable_threshold must be in (0, 1), got %v", cfg.NonPrintableThreshold)
	}

	return cfg, nil
}
