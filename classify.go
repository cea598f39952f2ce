package main

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/monochromegane/go-gitignore"
)

// Classifier assigns a Decision to every filesystem entry the traversal
// encounters. It owns the exclude-glob, whitelist and size rules; the
// optional gitignore matcher is loaded per traversal root.
type Classifier struct {
	cfg    *Config
	root   string
	ignore gitignore.IgnoreMatcher // nil when no .gitignore applies
}

// NewClassifier builds a classifier for one traversal root. When the config
// asks for it and the root carries a .gitignore, its rules are honored:
// ignored directories prune, ignored files are treated as pattern-excluded.
func NewClassifier(cfg *Config, root string) *Classifier {
	c := &Classifier{cfg: cfg, root: root}
	if cfg.RespectGitignore {
		if matcher, err := gitignore.NewGitIgnore(filepath.Join(root, ".gitignore")); err == nil {
			c.ignore = matcher
		}
	}
	return c
}

// Classify decides what to do with one entry. relPath is the slash-separated
// path relative to the traversal root; info may be nil for directories that
// could not be stat'ed (they still recurse, errors surface on descent).
func (c *Classifier) Classify(relPath string, name string, isDir bool, info fs.FileInfo) Decision {
	if isDir {
		if c.matchesExcludedDir(name) {
			return PruneDirectory
		}
		if c.ignore != nil && c.ignore.Match(filepath.Join(c.root, relPath), true) {
			return PruneDirectory
		}
		return Recurse
	}

	// Exclude globs are a stronger, explicit signal than the whitelist and
	// are checked first: a whitelisted extension can still be pattern-banned.
	if c.matchesExcludeGlob(relPath, name) {
		return ExcludeByPattern
	}
	if c.ignore != nil && c.ignore.Match(filepath.Join(c.root, relPath), false) {
		return ExcludeByPattern
	}

	// Size is a stat-only check; the actual read never happens for oversized
	// files. Oversized wins over the whitelist outcome either way.
	if info != nil && info.Size() > c.cfg.MaxFileSize {
		return ExcludeBySize
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		if !c.cfg.NoExtNames[name] {
			return ExcludeByWhitelist
		}
	} else if !c.cfg.Whitelist[ext] && !c.cfg.NoExtNames[name] {
		return ExcludeByWhitelist
	}

	return IncludeFile
}

func (c *Classifier) matchesExcludedDir(name string) bool {
	for _, pattern := range c.cfg.ExcludeDirs {
		if pattern == name {
			return true
		}
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

func (c *Classifier) matchesExcludeGlob(relPath, name string) bool {
	for _, pattern := range c.cfg.ExcludeGlobs {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
		// Patterns with a slash are matched against the whole relative path.
		if strings.Contains(pattern, "/") {
			if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// isHidden reports whether a base name is a dotfile. "." and ".." are not
// considered hidden.
func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.' && name != ".."
}
