package domain

import "strings"

// Node is a lossless syntax tree node. Leaves carry the token text and the
// whitespace that preceded it in the source, so concatenating Leading+Text
// over all leaves in order reproduces the original bytes exactly.
type Node struct {
	Kind     string  `json:"kind"`
	Text     string  `json:"text,omitempty"`
	Leading  string  `json:"leading,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Leaf creates a token node.
func Leaf(kind, leading, text string) *Node {
	return &Node{Kind: kind, Leading: leading, Text: text}
}

// Branch creates an inner node over the given children.
func Branch(kind string, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Kind: n.Kind, Text: n.Text, Leading: n.Leading}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Source renders the node exactly, including the leading trivia of its
// first token.
func (n *Node) Source() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		b.WriteString(n.Leading)
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.write(b)
	}
}

// String renders the node without the trivia in front of its first token.
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	return strings.TrimPrefix(n.Source(), n.FirstLeaf().Leading)
}

// FirstLeaf returns the first token of the subtree.
func (n *Node) FirstLeaf() *Node {
	for n != nil && !n.IsLeaf() {
		n = n.Children[0]
	}
	return n
}

// Leaves returns every token of the subtree in source order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(m *Node) bool {
		if m.IsLeaf() {
			out = append(out, m)
		}
		return true
	})
	return out
}

// Tokens returns the token texts of the subtree, ignoring all trivia.
func (n *Node) Tokens() []string {
	leaves := n.Leaves()
	out := make([]string, 0, len(leaves))
	for _, l := range leaves {
		if l.Text != "" {
			out = append(out, l.Text)
		}
	}
	return out
}

// Child returns the first direct child of the given kind.
func (n *Node) Child(kind string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// At follows a path of child indices from n.
func (n *Node) At(path []int) *Node {
	cur := n
	for _, i := range path {
		if cur == nil || i < 0 || i >= len(cur.Children) {
			return nil
		}
		cur = cur.Children[i]
	}
	return cur
}

// Reindent shifts every token that starts a line one indent unit to the
// right.
func Reindent(n *Node, unit string) {
	if unit == "" {
		return
	}
	for _, l := range n.Leaves() {
		l.Leading = ReindentTrivia(l.Leading, unit)
	}
}

// ReindentTrivia inserts unit after the last newline of s. Blank lines in
// between are left alone.
func ReindentTrivia(s, unit string) string {
	i := strings.LastIndex(s, "\n")
	if i < 0 {
		return s
	}
	return s[:i+1] + unit + s[i+1:]
}

// LineIndent returns the whitespace after the last newline of a trivia run,
// and whether a newline was present at all.
func LineIndent(trivia string) (string, bool) {
	i := strings.LastIndex(trivia, "\n")
	if i < 0 {
		return "", false
	}
	return trivia[i+1:], true
}

// CloneNodes deep-copies a node list.
func CloneNodes(nodes []*Node) []*Node {
	if nodes == nil {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// RenderNodes concatenates the exact source of a node list.
func RenderNodes(nodes []*Node) string {
	var b strings.Builder
	for _, n := range nodes {
		n.write(&b)
	}
	return b.String()
}
