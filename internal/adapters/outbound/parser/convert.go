package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/abdidvp/expectfix/internal/domain"
)

// Tokens kept whole even though the grammar gives them children.
var atomic = map[string]bool{
	"string_literal":    true,
	"text_block":        true,
	"character_literal": true,
	"line_comment":      true,
	"block_comment":     true,
}

// converter copies a tree-sitter subtree into domain nodes. prev is the end
// of the last emitted token; the bytes between it and the next token become
// that token's leading trivia.
type converter struct {
	src  []byte
	prev uint
}

func (c *converter) convert(n *sitter.Node) *domain.Node {
	kind := n.Kind()
	if n.ChildCount() == 0 || atomic[kind] {
		start, end := n.StartByte(), n.EndByte()
		if start < c.prev {
			start = c.prev
		}
		leaf := domain.Leaf(kind, string(c.src[c.prev:start]), string(c.src[start:end]))
		c.prev = end
		return leaf
	}

	out := &domain.Node{Kind: kind, Children: make([]*domain.Node, 0, n.ChildCount())}
	for i := uint(0); i < n.ChildCount(); i++ {
		out.Children = append(out.Children, c.convert(n.Child(i)))
	}
	return out
}
