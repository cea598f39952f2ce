package main

import "strings"

// TreeNode mirrors the walked hierarchy. Excluded files still appear as
// leaves and pruned directories appear childless, so the tree conveys the
// complete project shape regardless of content decisions.
type TreeNode struct {
	Name     string
	IsDir    bool
	Excluded bool // pruned directory or excluded file
	Children []*TreeNode
}

func (n *TreeNode) addChild(child *TreeNode) *TreeNode {
	n.Children = append(n.Children, child)
	return child
}

// renderTree writes the classic connector rendering of a tree: directories
// get a trailing slash, excluded entries a trailing tag. Children are
// emitted in insertion order, which the traversal keeps name-sorted, so the
// rendering is deterministic.
func renderTree(root *TreeNode) string {
	var b strings.Builder
	b.WriteString(root.label())
	b.WriteString("\n")
	renderChildren(&b, root.Children, "")
	return b.String()
}

func renderChildren(b *strings.Builder, children []*TreeNode, prefix string) {
	for i, node := range children {
		connector := "├── "
		childPrefix := prefix + "│   "
		if i == len(children)-1 {
			connector = "└── "
			childPrefix = prefix + "    "
		}
		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(node.label())
		b.WriteString("\n")
		if len(node.Children) > 0 {
			renderChildren(b, node.Children, childPrefix)
		}
	}
}

func (n *TreeNode) label() string {
	name := n.Name
	if n.IsDir {
		name += "/"
	}
	if n.Excluded {
		name += " [excluded]"
	}
	return name
}
