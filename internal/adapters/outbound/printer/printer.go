package printer

import (
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/domain"
)

// Printer implements domain.SourcePrinter. Only regions of replaced
// declarations are re-rendered; every other byte is copied from the source.
type Printer struct{}

func New() *Printer {
	return &Printer{}
}

func (p *Printer) Print(unit *domain.CompilationUnit) ([]byte, error) {
	if !unit.Modified() {
		return append([]byte(nil), unit.Source...), nil
	}

	b := NewEditBuilder()
	for _, i := range unit.Changed() {
		orig, _ := unit.Original(i)
		if err := declarationEdits(b, orig, unit.Methods[i]); err != nil {
			return nil, errors.Errorf("printing %s: %w", unit.Path, err)
		}
	}
	importEdits(b, unit)

	out, err := b.Apply(unit.Source)
	if err != nil {
		return nil, errors.Errorf("printing %s: %w", unit.Path, err)
	}
	return out, nil
}

func declarationEdits(b *EditBuilder, orig, cur *domain.MethodDeclaration) error {
	current := make(map[int]*domain.Annotation, len(cur.Annotations))
	for _, a := range cur.Annotations {
		current[a.Span.Start] = a
	}

	for _, a := range orig.Annotations {
		next, ok := current[a.Span.Start]
		if !ok {
			b.Delete(a.Span.Start, a.DeleteEnd)
			continue
		}
		delete(current, a.Span.Start)
		if renderAnnotation(next) != renderAnnotation(a) {
			b.Replace(a.Span.Start, a.Span.End, renderAnnotation(next))
		}
	}
	if len(current) > 0 {
		return errors.Errorf("%s: annotations added after parsing cannot be printed: %w", cur.Name, domain.ErrTreeMutation)
	}

	if cur.HasBody != orig.HasBody {
		return errors.Errorf("%s: body added or removed: %w", cur.Name, domain.ErrTreeMutation)
	}
	if !cur.HasBody {
		return nil
	}
	body := renderBody(cur)
	if body != renderBody(orig) {
		b.Replace(orig.BodySpan.Start, orig.BodySpan.End, body)
	}
	return nil
}

// renderAnnotation writes the annotation in canonical form, keeping each
// attribute as it was written.
func renderAnnotation(a *domain.Annotation) string {
	if len(a.Attributes) == 0 {
		return "@" + a.Name
	}
	parts := make([]string, len(a.Attributes))
	for i, attr := range a.Attributes {
		parts[i] = attr.Node.String()
	}
	return "@" + a.Name + "(" + strings.Join(parts, ", ") + ")"
}

func renderBody(m *domain.MethodDeclaration) string {
	return "{" + domain.RenderNodes(m.Body) + m.BodyTrailing + "}"
}

func importEdits(b *EditBuilder, unit *domain.CompilationUnit) {
	pending := unit.PendingStaticImports()
	if len(pending) == 0 {
		return
	}
	lines := make([]string, len(pending))
	for i, s := range pending {
		lines[i] = "import static " + s + ";"
	}
	block := strings.Join(lines, "\n")

	switch {
	case len(unit.Imports) > 0:
		b.Insert(unit.ImportAnchor, "\n"+block)
	case unit.Package != "":
		b.Insert(unit.ImportAnchor, "\n\n"+block)
	default:
		b.Insert(0, block+"\n\n")
	}
}
