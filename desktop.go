package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// writeDesktopArtifact writes the report to a timestamp-named file on the
// user's desktop, so the merge survives even when the clipboard sink fails.
// When no Desktop directory exists the file lands in the working directory.
// Returns the path written.
func writeDesktopArtifact(content string, now time.Time, logger *zap.Logger) (string, error) {
	dir := "."
	if home, err := os.UserHomeDir(); err == nil {
		desktop := filepath.Join(home, "Desktop")
		if info, err := os.Stat(desktop); err == nil && info.IsDir() {
			dir = desktop
		} else {
			logger.Debug("no desktop directory, using working directory", zap.String("tried", desktop))
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("merged_%s.txt", now.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing desktop artifact: %w", err)
	}
	logger.Debug("wrote desktop artifact", zap.String("path", path), zap.Int("bytes", len(content)))
	return path, nil
}
