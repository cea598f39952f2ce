package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTreeConnectors(t *testing.T) {
	root := &TreeNode{Name: "proj", IsDir: true}
	src := root.addChild(&TreeNode{Name: "src", IsDir: true})
	src.addChild(&TreeNode{Name: "a.go"})
	src.addChild(&TreeNode{Name: "b.go"})
	root.addChild(&TreeNode{Name: "vendor", IsDir: true, Excluded: true})
	root.addChild(&TreeNode{Name: "main.go"})

	expected := "proj/\n" +
		"├── src/\n" +
		"│   ├── a.go\n" +
		"│   └── b.go\n" +
		"├── vendor/ [excluded]\n" +
		"└── main.go\n"
	assert.Equal(t, expected, renderTree(root))
}

func TestRenderTreeSingleLeaf(t *testing.T) {
	root := &TreeNode{Name: "only.go"}
	assert.Equal(t, "only.go\n", renderTree(root))
}
