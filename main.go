package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	// Filtering
	excludeGlobsFlag string
	excludeDirsFlag  string
	extensionsFlag   string
	maxSizeFlag      int64
	showHiddenFlag   bool
	noIgnoreFlag     bool

	// Output
	outputFileFlag  string
	pdfFileFlag     string
	noClipboardFlag bool
	noDesktopFlag   bool
	maxPathLenFlag  int

	// Processing
	workersFlag     int
	noTokensFlag    bool
	tokenModelFlag  string
	interactiveFlag bool
	verboseFlag     bool
)

// version is set via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "mergencopy [PATHS...]",
	Short: "Merge the text files under the given paths into one report on your clipboard.",
	Long: `mergencopy walks the given files and directories, picks out the text files,
and merges them into a single report (summary, directory tree, file contents)
placed on the clipboard and saved to the desktop for pasting into an AI
assistant.`,
	Version:       version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := zap.NewNop()
		if verboseFlag {
			var err error
			logger, err = zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer logger.Sync()
		}

		cfg, err := buildConfig()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		inputPaths := args
		if interactiveFlag {
			inputPaths, err = runInteractiveFinder(cfg)
			if err != nil {
				return fmt.Errorf("interactive selection: %w", err)
			}
			if inputPaths == nil {
				fmt.Println("Selection aborted.")
				return nil
			}
		}
		if len(inputPaths) == 0 {
			return fmt.Errorf("no input paths; pass one or more files or directories (or use --interactive)")
		}

		langData, err := loadLanguageData()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load language definitions: %v\n", err)
			langData = &LanguageData{}
		}

		var tok Tokenizer
		withTokens := cfg.CountTokens
		if withTokens {
			tok, err = newTokenizer(cfg.TokenModel)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: token counting disabled: %v\n", err)
				withTokens = false
			}
		}

		start := time.Now()

		tr, err := Traverse(inputPaths, cfg, logger)
		if err != nil {
			return err
		}
		logger.Debug("traversal complete",
			zap.Int("candidates", len(tr.Candidates)),
			zap.Int("prunedDirs", tr.Stats.PrunedDirs))

		reader := NewReader(cfg, tok, logger)
		reader.OnResult(func(res ReadResult) {
			printStatusLine(res, cfg.MaxPathDisplayLen)
		})
		results := reader.ReadAll(tr.Candidates, tr.Stats)

		now := time.Now()
		report := formatReport(tr, results, langData, now, withTokens)

		if pdfFileFlag != "" {
			if err := generatePDF(tr, results, langData, now, withTokens, pdfFileFlag); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: PDF generation failed: %v\n", err)
			} else {
				fmt.Printf("PDF saved to %s\n", pdfFileFlag)
			}
		}

		if outputFileFlag != "" {
			if err := os.WriteFile(outputFileFlag, []byte(report), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not write %s: %v\n", outputFileFlag, err)
			} else {
				fmt.Printf("Report saved to %s\n", outputFileFlag)
			}
		}

		if !noClipboardFlag {
			// Some clipboard providers choke on NUL bytes.
			if err := clipboard.WriteAll(strings.ReplaceAll(report, "\x00", "")); err != nil {
				color.Yellow("Clipboard write failed (%v); the desktop copy still has your report.", err)
			} else {
				color.Green("Report copied to clipboard.")
			}
		}

		if !noDesktopFlag {
			path, err := writeDesktopArtifact(report, now, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			} else {
				fmt.Printf("Report saved to %s\n", path)
			}
		}

		printRunReport(tr.Stats, time.Since(start), withTokens)
		return nil
	},
}

func printStatusLine(res ReadResult, maxLen int) {
	display := truncatePath(res.Candidate.RelPath, maxLen)
	switch res.Kind {
	case ReadOK:
		fmt.Printf("%s ===> %s\n", display, color.GreenString("ok (%s)", res.Encoding))
	case ReadTooLarge:
		fmt.Printf("%s ===> %s\n", display, color.YellowString("skipped (too large)"))
	case ReadDecodeFailure:
		fmt.Printf("%s ===> %s\n", display, color.YellowString("skipped (binary)"))
	case ReadIOError:
		fmt.Printf("%s ===> %s\n", display, color.RedString("failed (%v)", res.Err))
	}
}

func printRunReport(stats *RunStats, elapsed time.Duration, withTokens bool) {
	fmt.Println("\n----- Run report -----")
	fmt.Printf("Merged text files:    %d\n", stats.Processed)
	fmt.Printf("Binary/undecodable:   %d\n", stats.Binary)
	fmt.Printf("Skipped (size):       %d\n", stats.SkippedSize)
	fmt.Printf("Skipped (pattern):    %d\n", stats.SkippedPattern)
	fmt.Printf("Skipped (whitelist):  %d\n", stats.SkippedWhitelist)
	fmt.Printf("Pruned directories:   %d\n", stats.PrunedDirs)
	fmt.Printf("Errors:               %d\n", stats.Errors)
	if withTokens {
		fmt.Printf("Total tokens:         %d\n", stats.TotalTokens)
	}
	fmt.Printf("Elapsed:              %.2fs\n", elapsed.Seconds())
}

func init() {
	cobra.OnInitialize(initConfig)

	// Filtering
	rootCmd.Flags().StringVarP(&excludeGlobsFlag, "exclude", "e", "", "Additional file globs to exclude (comma-separated, e.g. *.min.js,*.gen.go)")
	rootCmd.Flags().StringVar(&excludeDirsFlag, "exclude-dir", "", "Additional directory names to prune (comma-separated)")
	rootCmd.Flags().StringVar(&extensionsFlag, "ext", "", "Override the extension whitelist (comma-separated, e.g. go,py,md)")
	rootCmd.Flags().Int64VarP(&maxSizeFlag, "max-size", "s", 0, "Maximum file size in bytes")
	viper.BindPFlag("max_size", rootCmd.Flags().Lookup("max-size"))
	rootCmd.Flags().BoolVarP(&showHiddenFlag, "hidden", "H", false, "Include hidden files and directories")
	viper.BindPFlag("hidden", rootCmd.Flags().Lookup("hidden"))
	rootCmd.Flags().BoolVar(&noIgnoreFlag, "no-ignore", false, "Don't respect .gitignore files")
	viper.BindPFlag("no_ignore", rootCmd.Flags().Lookup("no-ignore"))

	// Output
	rootCmd.Flags().StringVarP(&outputFileFlag, "out", "f", "", "Also save the report to this file")
	rootCmd.Flags().StringVar(&pdfFileFlag, "pdf", "", "Also save the report as a PDF")
	rootCmd.Flags().BoolVar(&noClipboardFlag, "no-clipboard", false, "Skip the clipboard sink")
	rootCmd.Flags().BoolVar(&noDesktopFlag, "no-desktop", false, "Skip the desktop file sink")
	rootCmd.Flags().IntVar(&maxPathLenFlag, "max-path-len", 0, "Maximum displayed path length in status lines")
	viper.BindPFlag("max_path_len", rootCmd.Flags().Lookup("max-path-len"))

	// Processing
	rootCmd.Flags().IntVarP(&workersFlag, "workers", "t", 0, "Worker pool size for parallel reads (0 for auto)")
	viper.BindPFlag("workers", rootCmd.Flags().Lookup("workers"))
	rootCmd.Flags().BoolVar(&noTokensFlag, "no-tokens", false, "Disable token counting")
	viper.BindPFlag("no_tokens", rootCmd.Flags().Lookup("no-tokens"))
	rootCmd.Flags().StringVar(&tokenModelFlag, "model", "", "Model name for the tiktoken tokenizer")
	viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
	rootCmd.Flags().BoolVar(&interactiveFlag, "interactive", false, "Pick paths with a fuzzy finder instead of arguments")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	setConfigDefaults()
}

// initConfig reads the config file and environment, then layers any
// comma-separated list flags over the viper state so buildConfig sees the
// final values.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "mergencopy"))
	}
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.SetEnvPrefix("MERGENCOPY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}

	if rootCmd.Flags().Changed("exclude") {
		viper.Set("exclude_globs", append(viper.GetStringSlice("exclude_globs"), parseList(excludeGlobsFlag)...))
	}
	if rootCmd.Flags().Changed("exclude-dir") {
		viper.Set("exclude_dirs", append(viper.GetStringSlice("exclude_dirs"), parseList(excludeDirsFlag)...))
	}
	if rootCmd.Flags().Changed("ext") {
		viper.Set("extensions", parseList(extensionsFlag))
	}
}

// parseList splits a comma-separated flag value, dropping empty items.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
