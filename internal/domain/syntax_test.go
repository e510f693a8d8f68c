package domain_test

import (
	"testing"

	"github.com/abdidvp/expectfix/internal/domain"
	"github.com/stretchr/testify/assert"
)

// call(x);
func sampleStatement() *domain.Node {
	return domain.Branch("expression_statement",
		domain.Branch("method_invocation",
			domain.Leaf("identifier", "\n        ", "call"),
			domain.Branch("argument_list",
				domain.Leaf("(", "", "("),
				domain.Leaf("identifier", "", "x"),
				domain.Leaf(")", "", ")"),
			),
		),
		domain.Leaf(";", "", ";"),
	)
}

func TestNode_SourceAndString(t *testing.T) {
	n := sampleStatement()
	assert.Equal(t, "\n        call(x);", n.Source())
	assert.Equal(t, "call(x);", n.String())
	assert.Equal(t, []string{"call", "(", "x", ")", ";"}, n.Tokens())
	assert.Equal(t, "", (*domain.Node)(nil).String())
}

func TestNode_CloneIsDeep(t *testing.T) {
	n := sampleStatement()
	c := n.Clone()
	c.FirstLeaf().Text = "other"

	assert.Equal(t, "call", n.FirstLeaf().Text)
	assert.Nil(t, (*domain.Node)(nil).Clone())
}

func TestNode_ChildAndAt(t *testing.T) {
	n := sampleStatement()
	assert.Equal(t, "method_invocation", n.Child("method_invocation").Kind)
	assert.Nil(t, n.Child("block"))
	assert.Equal(t, "x", n.At([]int{0, 1, 1}).Text)
	assert.Nil(t, n.At([]int{0, 5}))
}

func TestNode_WalkSkipsChildren(t *testing.T) {
	n := sampleStatement()
	var kinds []string
	n.Walk(func(m *domain.Node) bool {
		kinds = append(kinds, m.Kind)
		return m.Kind != "argument_list"
	})
	assert.Equal(t, []string{"expression_statement", "method_invocation", "identifier", "argument_list", ";"}, kinds)
}

func TestReindent(t *testing.T) {
	n := domain.Branch("block",
		domain.Leaf("{", " ", "{"),
		domain.Leaf("identifier", "\n\n        ", "a"),
		domain.Leaf(";", "", ";"),
		domain.Leaf("}", "\n    ", "}"),
	)
	domain.Reindent(n, "    ")
	assert.Equal(t, " {\n\n            a;\n        }", n.Source())
}

func TestReindentTrivia(t *testing.T) {
	assert.Equal(t, " ", domain.ReindentTrivia(" ", "\t"))
	assert.Equal(t, "\n\n\t  ", domain.ReindentTrivia("\n\n  ", "\t"))
	assert.Equal(t, "\n  // c\n\t  ", domain.ReindentTrivia("\n  // c\n  ", "\t"))
}

func TestLineIndent(t *testing.T) {
	ind, ok := domain.LineIndent("\n\n        ")
	assert.True(t, ok)
	assert.Equal(t, "        ", ind)

	_, ok = domain.LineIndent(" ")
	assert.False(t, ok)
}

func TestRenderNodes(t *testing.T) {
	nodes := []*domain.Node{sampleStatement(), sampleStatement()}
	assert.Equal(t, "\n        call(x);\n        call(x);", domain.RenderNodes(nodes))
	assert.Nil(t, domain.CloneNodes(nil))
}
