package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/domain"
)

// JavaParser implements domain.SourceParser using tree-sitter.
type JavaParser struct{}

func New() *JavaParser {
	return &JavaParser{}
}

// Parse builds a compilation unit from Java source. Files that do not parse
// cleanly are rejected so they are never rewritten.
func (p *JavaParser) Parse(path string, src []byte) (*domain.CompilationUnit, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(sitter.NewLanguage(tree_sitter_java.Language())); err != nil {
		return nil, errors.Errorf("loading java grammar: %w", err)
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, errors.Errorf("parsing %s: no tree produced", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		line := 0
		if n := firstError(root); n != nil {
			line = int(n.StartPosition().Row) + 1
		}
		return nil, errors.Errorf("parsing %s: syntax error near line %d", path, line)
	}

	b := &builder{
		src: src,
		unit: &domain.CompilationUnit{
			Path:   path,
			Source: src,
			Fields: make(map[string]map[string]string),
		},
	}
	b.topLevel(root)
	return b.unit, nil
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c != nil && (c.HasError() || c.IsMissing()) {
			if e := firstError(c); e != nil {
				return e
			}
		}
	}
	return nil
}

type builder struct {
	src  []byte
	unit *domain.CompilationUnit
}

func (b *builder) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(b.src)
}

func (b *builder) topLevel(root *sitter.Node) {
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		switch child.Kind() {
		case "package_declaration":
			for j := uint(0); j < child.ChildCount(); j++ {
				if k := child.Child(j).Kind(); k == "scoped_identifier" || k == "identifier" {
					b.unit.Package = b.text(child.Child(j))
				}
			}
			b.unit.ImportAnchor = int(child.EndByte())
		case "import_declaration":
			b.importDecl(child)
			b.unit.ImportAnchor = int(child.EndByte())
		default:
			b.typeDecl(child)
		}
	}
}

func (b *builder) importDecl(n *sitter.Node) {
	var imp domain.Import
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "static":
			imp.Static = true
		case "scoped_identifier", "identifier":
			imp.Path = b.text(child)
		case "asterisk":
			imp.Wildcard = true
		}
	}
	if imp.Path != "" {
		b.unit.Imports = append(b.unit.Imports, imp)
	}
}

var typeDeclarations = map[string]bool{
	"class_declaration":     true,
	"interface_declaration": true,
	"enum_declaration":      true,
	"record_declaration":    true,
}

func (b *builder) typeDecl(n *sitter.Node) {
	if !typeDeclarations[n.Kind()] {
		return
	}
	class := b.text(n.ChildByFieldName("name"))
	if body := n.ChildByFieldName("body"); body != nil {
		b.members(class, body)
	}
}

func (b *builder) members(class string, body *sitter.Node) {
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		switch child.Kind() {
		case "method_declaration":
			b.unit.Methods = append(b.unit.Methods, b.method(class, child))
		case "field_declaration", "constant_declaration":
			b.field(class, child)
		case "enum_body_declarations":
			b.members(class, child)
		default:
			b.typeDecl(child)
		}
	}
}

func (b *builder) field(class string, n *sitter.Node) {
	typ := b.text(n.ChildByFieldName("type"))
	if typ == "" {
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() != "variable_declarator" {
			continue
		}
		if b.unit.Fields[class] == nil {
			b.unit.Fields[class] = make(map[string]string)
		}
		b.unit.Fields[class][b.text(child.ChildByFieldName("name"))] = typ
	}
}

func (b *builder) method(class string, n *sitter.Node) *domain.MethodDeclaration {
	name := n.ChildByFieldName("name")
	m := &domain.MethodDeclaration{
		Name:       b.text(name),
		Class:      class,
		ReturnType: b.text(n.ChildByFieldName("type")),
		Span:       domain.Span{Start: int(n.StartByte()), End: int(n.EndByte())},
		Indent:     b.lineIndent(n.StartByte()),
		Line:       int(name.StartPosition().Row) + 1,
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		if child := n.Child(i); child.Kind() == "modifiers" {
			b.modifiers(m, child)
		}
	}

	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := uint(0); i < params.ChildCount(); i++ {
			p := params.Child(i)
			switch p.Kind() {
			case "formal_parameter":
				m.Parameters = append(m.Parameters, domain.Parameter{
					Name: b.text(p.ChildByFieldName("name")),
					Type: b.text(p.ChildByFieldName("type")),
				})
			case "spread_parameter":
				m.Parameters = append(m.Parameters, b.spreadParameter(p))
			}
		}
	}

	if body := n.ChildByFieldName("body"); body != nil && body.Kind() == "block" {
		b.body(m, body)
	}
	return m
}

func (b *builder) spreadParameter(p *sitter.Node) domain.Parameter {
	var param domain.Parameter
	for i := uint(0); i < p.ChildCount(); i++ {
		c := p.Child(i)
		switch {
		case c.Kind() == "variable_declarator":
			param.Name = b.text(c.ChildByFieldName("name"))
		case c.IsNamed() && param.Type == "" && c.Kind() != "modifiers":
			param.Type = b.text(c) + "[]"
		}
	}
	return param
}

func (b *builder) modifiers(m *domain.MethodDeclaration, mods *sitter.Node) {
	count := mods.ChildCount()
	for i := uint(0); i < count; i++ {
		child := mods.Child(i)
		switch child.Kind() {
		case "marker_annotation", "annotation":
			deleteEnd := int(child.EndByte())
			if next := child.NextSibling(); next != nil {
				deleteEnd = int(next.StartByte())
			} else if next := mods.NextSibling(); next != nil {
				deleteEnd = int(next.StartByte())
			}
			m.Annotations = append(m.Annotations, b.annotation(child, deleteEnd))
		case "line_comment", "block_comment":
		default:
			m.Modifiers = append(m.Modifiers, b.text(child))
		}
	}
}

func (b *builder) annotation(n *sitter.Node, deleteEnd int) *domain.Annotation {
	ann := &domain.Annotation{
		Name:      b.text(n.ChildByFieldName("name")),
		Span:      domain.Span{Start: int(n.StartByte()), End: int(n.EndByte())},
		DeleteEnd: deleteEnd,
		Line:      int(n.StartPosition().Row) + 1,
	}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return ann
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		arg := args.Child(i)
		if !arg.IsNamed() || arg.IsExtra() {
			continue
		}
		if arg.Kind() == "element_value_pair" {
			node := b.convertFrom(arg, arg.StartByte())
			attr := &domain.Attribute{Name: b.text(arg.ChildByFieldName("key")), Node: node}
			// key, "=", value
			if len(node.Children) == 3 {
				attr.Value = node.Children[2]
			}
			ann.Attributes = append(ann.Attributes, attr)
			continue
		}
		value := b.convertFrom(arg, arg.StartByte())
		ann.Attributes = append(ann.Attributes, &domain.Attribute{Name: "value", Value: value, Node: value, Implicit: true})
	}
	return ann
}

func (b *builder) body(m *domain.MethodDeclaration, block *sitter.Node) {
	m.HasBody = true
	m.BodySpan = domain.Span{Start: int(block.StartByte()), End: int(block.EndByte())}

	count := block.ChildCount()
	if count < 2 {
		return
	}
	open, closing := block.Child(0), block.Child(count-1)
	c := &converter{src: b.src, prev: open.EndByte()}
	for i := uint(1); i < count-1; i++ {
		m.Body = append(m.Body, c.convert(block.Child(i)))
	}
	m.BodyTrailing = string(b.src[c.prev:closing.StartByte()])
}

func (b *builder) convertFrom(n *sitter.Node, from uint) *domain.Node {
	c := &converter{src: b.src, prev: from}
	return c.convert(n)
}

// lineIndent returns the whitespace between the start of the line and pos.
func (b *builder) lineIndent(pos uint) string {
	start := strings.LastIndexByte(string(b.src[:pos]), '\n') + 1
	prefix := string(b.src[start:pos])
	if strings.TrimSpace(prefix) == "" {
		return prefix
	}
	return prefix[:len(prefix)-len(strings.TrimLeft(prefix, " \t"))]
}
