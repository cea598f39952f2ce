package main

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// formatReport renders the final artifact: summary block, directory tree,
// then file contents with code/config files ahead of documentation. The
// clock is injected so identical inputs plus an identical clock produce
// byte-identical output.
func formatReport(tr *TraversalResult, results []ReadResult, langData *LanguageData, now time.Time, withTokens bool) string {
	var b strings.Builder
	stats := tr.Stats

	// --- Summary ---
	b.WriteString("===== SUMMARY =====\n")
	fmt.Fprintf(&b, "Base path: %s\n", tr.BasePath)
	fmt.Fprintf(&b, "Generated: %s\n", now.Format(timestampLayout))
	fmt.Fprintf(&b, "Files in tree: %d\n", len(tr.Candidates))
	fmt.Fprintf(&b, "Files merged: %d\n", stats.Processed)
	if withTokens {
		fmt.Fprintf(&b, "Total tokens: %d\n", stats.TotalTokens)
	}
	fmt.Fprintf(&b, "Skipped: size=%d pattern=%d whitelist=%d\n",
		stats.SkippedSize, stats.SkippedPattern, stats.SkippedWhitelist)
	fmt.Fprintf(&b, "Binary/undecodable: %d, errors: %d, pruned dirs: %d\n",
		stats.Binary, stats.Errors, stats.PrunedDirs)

	if len(stats.ExtCounts) > 0 {
		b.WriteString("Extensions:\n")
		exts := make([]string, 0, len(stats.ExtCounts))
		for ext := range stats.ExtCounts {
			exts = append(exts, ext)
		}
		sort.Strings(exts)
		for _, ext := range exts {
			fmt.Fprintf(&b, "  %-12s %d\n", ext, stats.ExtCounts[ext])
		}
	}
	b.WriteString("\n")

	// --- Directory structure ---
	b.WriteString("===== DIRECTORY STRUCTURE =====\n")
	b.WriteString(renderTree(tr.Root))
	b.WriteString("\n")

	// --- File contents, code before documentation ---
	b.WriteString("===== FILE CONTENTS =====\n")
	var code, docs []ReadResult
	for _, res := range results {
		if res.Kind != ReadOK {
			continue
		}
		if langData.IsDocFile(res.Candidate.RelPath) {
			docs = append(docs, res)
		} else {
			code = append(code, res)
		}
	}
	for _, res := range code {
		writeContentBlock(&b, res, langData)
	}
	for _, res := range docs {
		writeContentBlock(&b, res, langData)
	}

	return b.String()
}

// writeContentBlock emits one file: a FILE/MODIFIED header rendered as a
// comment in the file's own language, then the raw text.
func writeContentBlock(b *strings.Builder, res ReadResult, langData *LanguageData) {
	open, closing := langData.MarkerFor(res.Candidate.RelPath)
	writeMarkerLine(b, open, closing, fmt.Sprintf("FILE: %s", res.Candidate.RelPath))
	writeMarkerLine(b, open, closing, fmt.Sprintf("MODIFIED: %s", res.Candidate.ModTime.Format(timestampLayout)))
	b.WriteString(res.Text)
	if !strings.HasSuffix(res.Text, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeMarkerLine(b *strings.Builder, open, closing, text string) {
	b.WriteString(open)
	b.WriteString(" ")
	b.WriteString(text)
	if closing != "" {
		b.WriteString(" ")
		b.WriteString(closing)
	}
	b.WriteString("\n")
}

// truncatePath shortens a path for display by replacing its middle with
// "..." once it exceeds maxLen characters.
func truncatePath(path string, maxLen int) string {
	if maxLen <= 3 || len(path) <= maxLen {
		return path
	}
	keep := maxLen - 3
	head := keep / 2
	tail := keep - head
	return path[:head] + "..." + path[len(path)-tail:]
}
