package main

import "time"

// Decision is the classification outcome assigned to a filesystem entry
// during traversal.
type Decision int

const (
	// Recurse marks a directory whose children should be walked.
	Recurse Decision = iota
	// PruneDirectory marks a directory that is shown in the tree but never
	// descended into.
	PruneDirectory
	// IncludeFile marks a file whose content will be read and merged.
	IncludeFile
	// ExcludeBySize marks a file over the configured size ceiling.
	ExcludeBySize
	// ExcludeByPattern marks a file matching an exclude glob (or an ignore
	// rule); it stays visible in the tree but is never opened.
	ExcludeByPattern
	// ExcludeByWhitelist marks a file whose extension is not whitelisted.
	ExcludeByWhitelist
)

func (d Decision) String() string {
	switch d {
	case Recurse:
		return "recurse"
	case PruneDirectory:
		return "prune"
	case IncludeFile:
		return "include"
	case ExcludeBySize:
		return "exclude-size"
	case ExcludeByPattern:
		return "exclude-pattern"
	case ExcludeByWhitelist:
		return "exclude-whitelist"
	default:
		return "unknown"
	}
}

// FileCandidate describes one filesystem entry discovered by the traversal
// engine. Candidates are immutable once emitted.
type FileCandidate struct {
	AbsPath  string    // absolute path on disk
	RelPath  string    // display path relative to the traversal base
	Size     int64     // size in bytes (files only)
	ModTime  time.Time // last modification time
	Ext      string    // lowercased extension including the dot
	Decision Decision
	IsDir    bool
}

// ReadErrKind categorizes a per-file read failure.
type ReadErrKind int

const (
	ReadOK ReadErrKind = iota
	ReadTooLarge
	ReadDecodeFailure
	ReadIOError
)

// ReadResult holds the outcome of reading and decoding one included file.
// One result exists per IncludeFile candidate; results are never mutated
// after the worker produces them.
type ReadResult struct {
	Candidate *FileCandidate
	Text      string // decoded content, empty unless Kind == ReadOK
	Encoding  string // "utf-8" or "gb18030" when Kind == ReadOK
	Tokens    int    // token count, 0 when counting is disabled
	Kind      ReadErrKind
	Err       error // underlying error for ReadIOError / ReadDecodeFailure
}

// RunStats aggregates counts for the final report. The traversal engine
// fills the skip categories; the concurrent reader updates the rest under
// its own lock (see reader.go).
type RunStats struct {
	Processed        int // files successfully read and decoded
	SkippedSize      int
	SkippedPattern   int
	SkippedWhitelist int
	Binary           int // decode failures / binary content
	Errors           int // I/O and traversal errors
	PrunedDirs       int
	TotalTokens      int
	ExtCounts        map[string]int // extension -> files seen in the tree
}

// NewRunStats returns an empty stats accumulator.
func NewRunStats() *RunStats {
	return &RunStats{ExtCounts: make(map[string]int)}
}

// TotalSkipped sums the deliberate exclusion categories.
func (s *RunStats) TotalSkipped() int {
	return s.SkippedSize + s.SkippedPattern + s.SkippedWhitelist
}
