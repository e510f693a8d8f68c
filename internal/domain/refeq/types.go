package refeq

import (
	"strings"

	"github.com/abdidvp/expectfix/internal/domain"
)

// scope resolves names to declared types without any classpath: locals,
// then parameters, then fields of the enclosing class.
type scope struct {
	unit   *domain.CompilationUnit
	class  string
	locals map[string]string
	params map[string]string
}

func newScope(unit *domain.CompilationUnit, m *domain.MethodDeclaration) *scope {
	s := &scope{
		unit:   unit,
		class:  m.Class,
		locals: make(map[string]string),
		params: make(map[string]string),
	}
	for _, p := range m.Parameters {
		s.params[p.Name] = p.Type
	}
	for _, stmt := range m.Body {
		stmt.Walk(func(n *domain.Node) bool {
			if n.Kind == "local_variable_declaration" {
				s.declare(n)
			}
			return true
		})
	}
	return s
}

func (s *scope) declare(decl *domain.Node) {
	typ := ""
	for _, c := range decl.Children {
		if c.Kind == "modifiers" {
			continue
		}
		if typ == "" {
			typ = typeName(c)
			continue
		}
		if c.Kind != "variable_declarator" || len(c.Children) == 0 || c.Children[0].Kind != "identifier" {
			continue
		}
		t := typ
		if t == "var" && len(c.Children) == 3 {
			t = s.typeOf(c.Children[2])
		}
		s.locals[c.Children[0].Text] = t
	}
}

func (s *scope) typeOf(n *domain.Node) string {
	switch n.Kind {
	case "string_literal", "text_block":
		return "String"
	case "object_creation_expression":
		for _, c := range n.Children {
			switch c.Kind {
			case "type_identifier", "scoped_type_identifier", "generic_type":
				return typeName(c)
			}
		}
	case "parenthesized_expression":
		if len(n.Children) == 3 {
			return s.typeOf(n.Children[1])
		}
	case "identifier":
		return s.lookup(n.Text)
	case "field_access":
		// this.name
		if len(n.Children) == 3 && n.Children[0].Kind == "this" {
			t, _ := s.unit.FieldType(s.class, n.Children[2].Text)
			return t
		}
	}
	return ""
}

func (s *scope) lookup(name string) string {
	if t, ok := s.locals[name]; ok {
		return t
	}
	if t, ok := s.params[name]; ok {
		return t
	}
	t, _ := s.unit.FieldType(s.class, name)
	return t
}

// typeName returns a type without generic arguments or array brackets.
func typeName(n *domain.Node) string {
	t := strings.Join(n.Tokens(), "")
	if i := strings.IndexAny(t, "<["); i >= 0 {
		t = t[:i]
	}
	return t
}
