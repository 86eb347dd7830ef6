package dom

import "strings"

// Traversal helpers used by post-layout transforms. All of these are pure:
// they return fresh slices and never thread mutable state through the walk,
// so callers can hold the result while continuing to mutate the tree.

// TextNodes returns every text node in n's subtree in depth-first,
// document (pre-) order. n itself is included if it is a text node.
func TextNodes(n *Node) []*Node {
	if n.Type == TextNode {
		return []*Node{n}
	}
	var out []*Node
	for _, child := range n.Children {
		out = append(out, TextNodes(child)...)
	}
	return out
}

// NonEmptyTextNodes returns the text nodes in n's subtree whose content is
// non-empty after trimming whitespace, in document order.
func NonEmptyTextNodes(n *Node) []*Node {
	var out []*Node
	for _, t := range TextNodes(n) {
		if strings.TrimSpace(t.Text) != "" {
			out = append(out, t)
		}
	}
	return out
}

// FirstNonEmptyText returns the first text node in document order whose
// trimmed content is non-empty, or nil if the subtree has none.
func FirstNonEmptyText(n *Node) *Node {
	if n.Type == TextNode {
		if strings.TrimSpace(n.Text) != "" {
			return n
		}
		return nil
	}
	for _, child := range n.Children {
		if t := FirstNonEmptyText(child); t != nil {
			return t
		}
	}
	return nil
}
