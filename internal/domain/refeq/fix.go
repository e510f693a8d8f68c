package refeq

import (
	"fmt"
	"strings"

	"github.com/abdidvp/expectfix/internal/domain"
)

// equalsFix rewrites one comparison. It is located by declaration index and
// child path, and re-checked against the operator and operands it was found
// with before anything changes.
type equalsFix struct {
	index int
	path  []int
	op    string
	left  string
	right string
}

func (f *equalsFix) Apply(unit *domain.CompilationUnit) error {
	if f.index < 0 || f.index >= len(unit.Methods) {
		return domain.NewRewriteError(domain.ErrInvariantViolation, nil,
			fmt.Sprintf("declaration %d no longer exists", f.index), nil)
	}
	old := unit.Methods[f.index]
	if err := f.check(old, locate(old.Body, f.path)); err != nil {
		return err
	}

	next := old.Clone()
	target := locate(next.Body, f.path)
	replacement := equalsCall(target)
	if !replaceAt(next.Body, f.path, replacement) {
		return domain.NewRewriteError(domain.ErrInvariantViolation, old, "comparison has no parent", nil)
	}

	if err := unit.Replace(f.index, old, next); err != nil {
		return domain.NewRewriteError(domain.ErrTreeMutation, old, "commit failed", err)
	}
	return nil
}

func (f *equalsFix) check(m *domain.MethodDeclaration, n *domain.Node) error {
	if n == nil || n.Kind != "binary_expression" || len(n.Children) != 3 {
		return domain.NewRewriteError(domain.ErrInvariantViolation, m, "comparison is gone", nil)
	}
	left, op, right := operands(n)
	if op != f.op || left.String() != f.left || right.String() != f.right {
		return domain.NewRewriteError(domain.ErrInvariantViolation, m,
			fmt.Sprintf("comparison changed since it was inspected (now %s)", strings.Join(n.Tokens(), " ")), nil)
	}
	return nil
}

func locate(body []*domain.Node, path []int) *domain.Node {
	if len(path) == 0 || path[0] < 0 || path[0] >= len(body) {
		return nil
	}
	return body[path[0]].At(path[1:])
}

func replaceAt(body []*domain.Node, path []int, n *domain.Node) bool {
	if len(path) < 2 {
		return false
	}
	parent := locate(body, path[:len(path)-1])
	if parent == nil {
		return false
	}
	parent.Children[path[len(path)-1]] = n
	return true
}

// primary expressions can take a method call without parentheses.
var primary = map[string]bool{
	"identifier":                 true,
	"field_access":               true,
	"method_invocation":          true,
	"array_access":               true,
	"object_creation_expression": true,
	"parenthesized_expression":   true,
	"string_literal":             true,
	"text_block":                 true,
	"this":                       true,
	"class_literal":              true,
}

// equalsCall turns `a == b` into `a.equals(b)` and `a != b` into
// `!a.equals(b)`. The leading trivia of the comparison moves to the front of
// the new expression.
func equalsCall(cmp *domain.Node) *domain.Node {
	left, op, right := operands(cmp)
	leading := left.FirstLeaf().Leading

	recv := left.Clone()
	recv.FirstLeaf().Leading = ""
	if !primary[recv.Kind] {
		recv = domain.Branch("parenthesized_expression",
			domain.Leaf("(", "", "("), recv, domain.Leaf(")", "", ")"))
	}

	arg := right.Clone()
	arg.FirstLeaf().Leading = ""

	call := domain.Branch("method_invocation",
		recv,
		domain.Leaf(".", "", "."),
		domain.Leaf("identifier", "", "equals"),
		domain.Branch("argument_list", domain.Leaf("(", "", "("), arg, domain.Leaf(")", "", ")")),
	)

	if op == "==" {
		call.FirstLeaf().Leading = leading
		return call
	}
	return domain.Branch("unary_expression", domain.Leaf("!", leading, "!"), call)
}
