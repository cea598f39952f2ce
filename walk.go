package main

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// TraversalResult is everything the walk produces: the tree that mirrors the
// walked hierarchy, the ordered candidate list, the partially-filled stats
// and the base path used for the report header.
type TraversalResult struct {
	Root       *TreeNode
	Candidates []*FileCandidate
	Stats      *RunStats
	BasePath   string
}

type traversal struct {
	cfg     *Config
	log     *zap.Logger
	stats   *RunStats
	visited map[string]bool // real paths of walked directories, symlink cycle guard
	out     []*FileCandidate
}

// Traverse walks the supplied roots in caller order and collects the tree
// and candidate list. Candidate order is deterministic: roots in argument
// order, directory entries in os.ReadDir name order. Only the absence of any
// usable root is fatal; everything else is recorded in stats and skipped.
func Traverse(roots []string, cfg *Config, logger *zap.Logger) (*TraversalResult, error) {
	t := &traversal{
		cfg:     cfg,
		log:     logger,
		stats:   NewRunStats(),
		visited: make(map[string]bool),
	}

	type validRoot struct {
		abs  string
		info fs.FileInfo
	}
	var valid []validRoot
	seen := make(map[string]bool)
	for _, r := range roots {
		abs, err := filepath.Abs(r)
		if err != nil {
			t.log.Warn("cannot resolve root", zap.String("path", r), zap.Error(err))
			t.stats.Errors++
			continue
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		info, err := os.Stat(abs)
		if err != nil {
			t.log.Warn("cannot stat root", zap.String("path", abs), zap.Error(err))
			t.stats.Errors++
			continue
		}
		valid = append(valid, validRoot{abs: abs, info: info})
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("no usable input paths among %d argument(s)", len(roots))
	}

	res := &TraversalResult{Stats: t.stats}

	if len(valid) == 1 && valid[0].info.IsDir() {
		root := valid[0]
		res.BasePath = root.abs
		res.Root = &TreeNode{Name: filepath.Base(root.abs), IsDir: true}
		cls := NewClassifier(cfg, root.abs)
		t.markVisited(root.abs)
		t.walkDir(root.abs, filepath.Base(root.abs), "", res.Root, cls)
		res.Candidates = t.out
		return res, nil
	}

	if wd, err := os.Getwd(); err == nil {
		res.BasePath = wd
	}
	res.Root = &TreeNode{Name: ".", IsDir: true}
	for _, root := range valid {
		base := filepath.Base(root.abs)
		if root.info.IsDir() {
			child := res.Root.addChild(&TreeNode{Name: base, IsDir: true})
			cls := NewClassifier(cfg, root.abs)
			t.markVisited(root.abs)
			t.walkDir(root.abs, base, "", child, cls)
		} else {
			cls := NewClassifier(cfg, filepath.Dir(root.abs))
			res.Root.addChild(t.emitFile(root.abs, base, base, root.info, cls))
		}
	}
	res.Candidates = t.out
	return res, nil
}

// walkDir descends one directory. displayDir is the slash-separated display
// path (rooted at the root's base name), rootRel the path below the
// traversal root used for glob and gitignore matching. Entries come back
// from os.ReadDir sorted by name, which is what keeps repeated runs
// byte-identical.
func (t *traversal) walkDir(absDir, displayDir, rootRel string, node *TreeNode, cls *Classifier) {
	entries, err := os.ReadDir(absDir)
	if err != nil {
		t.log.Warn("cannot read directory", zap.String("path", absDir), zap.Error(err))
		t.stats.Errors++
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !t.cfg.ShowHidden && isHidden(name) {
			continue
		}

		absChild := filepath.Join(absDir, name)
		displayChild := path.Join(displayDir, name)
		relChild := path.Join(rootRel, name)

		if entry.Type()&fs.ModeSymlink != 0 {
			t.handleSymlink(absChild, displayChild, relChild, node, cls)
			continue
		}

		if entry.IsDir() {
			switch cls.Classify(relChild, name, true, nil) {
			case PruneDirectory:
				node.addChild(&TreeNode{Name: name, IsDir: true, Excluded: true})
				t.stats.PrunedDirs++
			default:
				child := node.addChild(&TreeNode{Name: name, IsDir: true})
				t.markVisited(absChild)
				t.walkDir(absChild, displayChild, relChild, child, cls)
			}
			continue
		}

		info, err := entry.Info()
		if err != nil {
			t.log.Warn("cannot stat entry", zap.String("path", absChild), zap.Error(err))
			t.stats.Errors++
			node.addChild(&TreeNode{Name: name, Excluded: true})
			continue
		}
		node.addChild(t.emitFile(absChild, displayChild, relChild, info, cls))
	}
}

// handleSymlink records symlinked entries without ever following a directory
// link: a link that closes a cycle counts as an error, any other directory
// link shows up pruned. File links are classified through their target.
func (t *traversal) handleSymlink(abs, display, rel string, node *TreeNode, cls *Classifier) {
	name := filepath.Base(abs)
	target, err := filepath.EvalSymlinks(abs)
	if err != nil {
		t.log.Warn("broken symlink", zap.String("path", abs), zap.Error(err))
		t.stats.Errors++
		node.addChild(&TreeNode{Name: name, Excluded: true})
		return
	}
	info, err := os.Stat(target)
	if err != nil {
		t.stats.Errors++
		node.addChild(&TreeNode{Name: name, Excluded: true})
		return
	}
	if info.IsDir() {
		if t.visited[target] {
			t.log.Warn("symlink cycle detected", zap.String("path", abs), zap.String("target", target))
			t.stats.Errors++
		} else {
			t.stats.PrunedDirs++
		}
		node.addChild(&TreeNode{Name: name, IsDir: true, Excluded: true})
		return
	}
	node.addChild(t.emitFile(abs, display, rel, info, cls))
}

// emitFile records a candidate for every surviving file, whatever its
// Decision, and returns the matching tree leaf.
func (t *traversal) emitFile(abs, display, rel string, info fs.FileInfo, cls *Classifier) *TreeNode {
	decision := cls.Classify(rel, info.Name(), false, info)

	ext := strings.ToLower(filepath.Ext(info.Name()))
	key := ext
	if key == "" {
		key = "(none)"
	}
	t.stats.ExtCounts[key]++

	switch decision {
	case ExcludeBySize:
		t.stats.SkippedSize++
	case ExcludeByPattern:
		t.stats.SkippedPattern++
	case ExcludeByWhitelist:
		t.stats.SkippedWhitelist++
	}

	t.out = append(t.out, &FileCandidate{
		AbsPath:  abs,
		RelPath:  display,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		Ext:      ext,
		Decision: decision,
	})
	return &TreeNode{Name: info.Name(), Excluded: decision != IncludeFile}
}

func (t *traversal) markVisited(dir string) {
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		t.visited[real] = true
	}
}
