package classdoc

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// nodeText extracts the source text covered by a node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// fieldText returns the text of a node's named field, or "".
func fieldText(node *sitter.Node, field string, source []byte) string {
	return nodeText(node.ChildByFieldName(field), source)
}

// walkTree recursively walks a tree and calls the visitor for each node.
// Returning false from the visitor skips that node's children.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// findChildByType finds the first direct child with the given kind.
func findChildByType(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

// findChildrenByType finds all direct children with the given kind.
func findChildrenByType(node *sitter.Node, kind string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child != nil && child.Kind() == kind {
			results = append(results, child)
		}
	}
	return results
}

// modifiers returns the text of every modifier child, e.g. public, static, partial.
func modifiers(node *sitter.Node, source []byte) []string {
	var mods []string
	for _, m := range findChildrenByType(node, "modifier") {
		mods = append(mods, strings.TrimSpace(nodeText(m, source)))
	}
	return mods
}

func hasModifier(node *sitter.Node, source []byte, want string) bool {
	for _, m := range modifiers(node, source) {
		if m == want {
			return true
		}
	}
	return false
}

// hasAccessModifier reports whether any explicit accessibility is declared.
func hasAccessModifier(node *sitter.Node, source []byte) bool {
	for _, m := range modifiers(node, source) {
		switch m {
		case "public", "private", "protected", "internal":
			return true
		}
	}
	return false
}

// precedingComments collects the contiguous run of comment siblings directly
// above node, top to bottom. Doc comments are siblings of the declaration,
// not children.
func precedingComments(node *sitter.Node, source []byte) string {
	var comments []string
	for prev := node.PrevSibling(); prev != nil && prev.Kind() == "comment"; prev = prev.PrevSibling() {
		comments = append(comments, nodeText(prev, source))
	}

	for i, j := 0, len(comments)-1; i < j; i, j = i+1, j-1 {
		comments[i], comments[j] = comments[j], comments[i]
	}
	return strings.Join(comments, "\n")
}

// collapseSpace renders multi-line text (parameter lists) on one line.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
