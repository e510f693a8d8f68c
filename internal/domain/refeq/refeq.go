// Package refeq flags == and != between values of classes that must be
// compared with equals().
package refeq

import (
	"fmt"
	"strings"

	"github.com/abdidvp/expectfix/internal/domain"
)

const fixName = "Replace with equals()"

type Inspection struct {
	checked []string
}

func NewInspection(cfg domain.ReferenceEqualityConfig) *Inspection {
	return &Inspection{checked: cfg.CheckedClasses}
}

func (i *Inspection) ID() string { return domain.InspectionReferenceEquality }

// Check walks every method body. Comparisons against null are never flagged.
func (i *Inspection) Check(unit *domain.CompilationUnit) []domain.Problem {
	var problems []domain.Problem
	for idx, m := range unit.Methods {
		if !m.HasBody {
			continue
		}
		sc := newScope(unit, m)
		for _, c := range comparisons(m.Body) {
			left, op, right := operands(c.node)
			if left.Kind == "null_literal" || right.Kind == "null_literal" {
				continue
			}
			typ, ok := i.checkedType(sc.typeOf(left))
			if !ok {
				typ, ok = i.checkedType(sc.typeOf(right))
			}
			if !ok {
				continue
			}
			problems = append(problems, domain.Problem{
				Issue: domain.Issue{
					Inspection: i.ID(),
					Severity:   domain.SeverityWarning,
					File:       unit.Path,
					Line:       lineOf(unit, m, c.node),
					Method:     m.Name,
					Message: fmt.Sprintf("%s values compared with %s: %s",
						domain.SimpleName(typ), op, strings.Join(c.node.Tokens(), " ")),
					FixName:      fixName,
					FixAvailable: true,
				},
				Fix: &equalsFix{
					index: idx,
					path:  c.path,
					op:    op,
					left:  left.String(),
					right: right.String(),
				},
			})
		}
	}
	return problems
}

func (i *Inspection) checkedType(t string) (string, bool) {
	if t == "" {
		return "", false
	}
	for _, c := range i.checked {
		if t == c || t == domain.SimpleName(c) {
			return c, true
		}
	}
	return "", false
}

type comparison struct {
	node *domain.Node
	path []int // from the body: statement index, then child indices
}

func comparisons(body []*domain.Node) []comparison {
	var out []comparison
	var visit func(n *domain.Node, path []int)
	visit = func(n *domain.Node, path []int) {
		if n.Kind == "binary_expression" && len(n.Children) == 3 {
			if op := n.Children[1].Text; op == "==" || op == "!=" {
				out = append(out, comparison{node: n, path: append([]int(nil), path...)})
			}
		}
		for i, c := range n.Children {
			visit(c, append(path, i))
		}
	}
	for i, s := range body {
		visit(s, []int{i})
	}
	return out
}

func operands(n *domain.Node) (*domain.Node, string, *domain.Node) {
	return n.Children[0], n.Children[1].Text, n.Children[2]
}

// lineOf returns the 1-based line of n, or the method line when the unit
// has no source attached.
func lineOf(unit *domain.CompilationUnit, m *domain.MethodDeclaration, n *domain.Node) int {
	if len(unit.Source) == 0 || m.BodySpan.Start > len(unit.Source) {
		return m.Line
	}
	line := 1 + strings.Count(string(unit.Source[:m.BodySpan.Start]), "\n")
	first := n.FirstLeaf()
	for _, s := range m.Body {
		for _, l := range s.Leaves() {
			line += strings.Count(l.Leading, "\n")
			if l == first {
				return line
			}
			line += strings.Count(l.Text, "\n")
		}
	}
	return m.Line
}
