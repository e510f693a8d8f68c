package rewrite_test

import (
	"github.com/abdidvp/expectfix/internal/domain"
)

const methodIndent = "    "

func stmt(text string) *domain.Node {
	return domain.Branch("expression_statement",
		domain.Leaf("identifier", "\n"+methodIndent+methodIndent, text),
		domain.Leaf(";", "", ";"),
	)
}

func classLiteral(name string) *domain.Node {
	return domain.Branch("class_literal",
		domain.Leaf("type_identifier", " ", name),
		domain.Leaf(".", "", "."),
		domain.Leaf("class", "", "class"),
	)
}

func attr(name string, value *domain.Node) *domain.Attribute {
	return &domain.Attribute{
		Name:  name,
		Value: value,
		Node:  domain.Branch("element_value_pair", domain.Leaf("identifier", "", name), domain.Leaf("=", " ", "="), value),
	}
}

func intLiteral(v string) *domain.Node {
	return domain.Leaf("decimal_integer_literal", " ", v)
}

func annotation(name string, attrs ...*domain.Attribute) *domain.Annotation {
	return &domain.Annotation{Name: name, Attributes: attrs, Line: 3}
}

func method(name string, anns []*domain.Annotation, body ...*domain.Node) *domain.MethodDeclaration {
	return &domain.MethodDeclaration{
		Name:         name,
		Class:        "CalculatorTest",
		Annotations:  anns,
		Modifiers:    []string{"public"},
		ReturnType:   "void",
		Body:         body,
		BodyTrailing: "\n" + methodIndent,
		HasBody:      true,
		Indent:       methodIndent,
		Line:         4,
	}
}

func expectedMethod(name, errorType string, body ...*domain.Node) *domain.MethodDeclaration {
	return method(name, []*domain.Annotation{annotation("Test", attr("expected", classLiteral(errorType)))}, body...)
}

func unitOf(methods ...*domain.MethodDeclaration) *domain.CompilationUnit {
	return &domain.CompilationUnit{
		Path:    "src/test/java/CalculatorTest.java",
		Package: "com.example",
		Imports: []domain.Import{{Path: "org.junit.Test"}},
		Methods: methods,
	}
}

func defaultCfg() domain.ExpectedExceptionConfig {
	return domain.DefaultConfig().Inspections.ExpectedException
}

// bodyText renders the statement list the way the printer would.
func bodyText(m *domain.MethodDeclaration) string {
	return domain.RenderNodes(m.Body) + m.BodyTrailing
}
