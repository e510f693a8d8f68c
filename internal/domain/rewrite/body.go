package rewrite

import (
	"strings"

	"github.com/abdidvp/expectfix/internal/domain"
)

// WrapOptions controls the synthesized assertion call.
type WrapOptions struct {
	// Callee is the invoked method, either a simple name or a qualified
	// Class.method form.
	Callee string
	// IndentUnit is used when the body does not reveal its own indentation.
	IndentUnit string
}

// Wrap replaces the statement list of method with a single
// Callee(errorType, () -> { <statements> }); statement. The original
// statements are moved into the lambda as deep copies, in order.
func Wrap(method *domain.MethodDeclaration, errorType *domain.Node, opts WrapOptions) error {
	if !method.HasBody {
		return domain.NewRewriteError(domain.ErrInvariantViolation, method, "declaration has no body", nil)
	}
	if errorType == nil {
		return domain.NewRewriteError(domain.ErrInvariantViolation, method, "missing error type", nil)
	}
	if opts.Callee == "" {
		opts.Callee = "assertThrows"
	}

	unit := bodyIndentUnit(method, opts.IndentUnit)

	stmts := domain.CloneNodes(method.Body)
	for _, s := range stmts {
		domain.Reindent(s, unit)
	}

	closing := domain.Leaf("}", domain.ReindentTrivia(method.BodyTrailing, unit), "}")
	if len(stmts) == 0 && !strings.Contains(method.BodyTrailing, "\n") {
		closing.Leading = " "
	}

	block := domain.Branch("block", append(append([]*domain.Node{domain.Leaf("{", " ", "{")}, stmts...), closing)...)
	lambda := domain.Branch("lambda_expression",
		domain.Branch("formal_parameters", domain.Leaf("(", " ", "("), domain.Leaf(")", "", ")")),
		domain.Leaf("->", " ", "->"),
		block,
	)

	typ := errorType.Clone()
	typ.FirstLeaf().Leading = ""

	args := domain.Branch("argument_list",
		domain.Leaf("(", "", "("),
		typ,
		domain.Leaf(",", "", ","),
		lambda,
		domain.Leaf(")", "", ")"),
	)

	call := domain.Branch("expression_statement",
		callNode("\n"+method.Indent+unit, opts.Callee, args),
		domain.Leaf(";", "", ";"),
	)

	method.Body = []*domain.Node{call}
	method.BodyTrailing = "\n" + method.Indent
	return nil
}

func callNode(leading, callee string, args *domain.Node) *domain.Node {
	i := strings.LastIndex(callee, ".")
	if i < 0 {
		return domain.Branch("method_invocation", domain.Leaf("identifier", leading, callee), args)
	}
	return domain.Branch("method_invocation",
		domain.Leaf("scoped_identifier", leading, callee[:i]),
		domain.Leaf(".", "", "."),
		domain.Leaf("identifier", "", callee[i+1:]),
		args,
	)
}

// bodyIndentUnit derives one indentation step from the first statement
// relative to the declaration.
func bodyIndentUnit(method *domain.MethodDeclaration, fallback string) string {
	if len(method.Body) > 0 {
		if ind, ok := domain.LineIndent(method.Body[0].FirstLeaf().Leading); ok {
			if strings.HasPrefix(ind, method.Indent) && len(ind) > len(method.Indent) {
				return ind[len(method.Indent):]
			}
		}
	}
	if fallback != "" {
		return fallback
	}
	return domain.DefaultIndent
}
