package rewrite

import (
	"fmt"

	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/domain"
)

// Driver finds candidate declarations in a unit and rewrites them one at a
// time.
type Driver struct {
	matcher *Matcher
	cfg     domain.ExpectedExceptionConfig
	indent  string
}

func NewDriver(cfg domain.ExpectedExceptionConfig, indentUnit string) *Driver {
	return &Driver{matcher: NewMatcher(cfg), cfg: cfg, indent: indentUnit}
}

// Cursor yields matches lazily in declaration order. It is exhausted after
// one pass and cannot be rewound.
type Cursor struct {
	d       *Driver
	unit    *domain.CompilationUnit
	next    int
	skipped []*domain.RewriteError
}

// Scan returns a cursor over the declarations of unit. Scanning never
// modifies the unit.
func (d *Driver) Scan(unit *domain.CompilationUnit) *Cursor {
	return &Cursor{d: d, unit: unit}
}

// Next advances to the next matching declaration.
func (c *Cursor) Next() (domain.MatchResult, bool) {
	for c.next < len(c.unit.Methods) {
		i := c.next
		c.next++
		m, ok, err := c.d.matcher.Match(c.unit, c.unit.Methods[i])
		if err != nil {
			var re *domain.RewriteError
			if errors.As(err, &re) {
				c.skipped = append(c.skipped, re)
			} else {
				c.skipped = append(c.skipped, domain.NewRewriteError(domain.ErrMalformedAttribute, c.unit.Methods[i], "", err))
			}
			continue
		}
		if ok {
			m.Index = i
			return m, true
		}
	}
	return domain.MatchResult{}, false
}

// Skipped lists declarations whose marker attribute could not be used.
func (c *Cursor) Skipped() []*domain.RewriteError {
	return c.skipped
}

// All drains the cursor.
func (c *Cursor) All() []domain.MatchResult {
	var out []domain.MatchResult
	for {
		m, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}

// Apply rewrites the declaration described by m. The unit is left untouched
// unless every step succeeds.
func (d *Driver) Apply(unit *domain.CompilationUnit, m domain.MatchResult) error {
	if err := d.validate(unit, m); err != nil {
		return err
	}

	callee, needImport := d.callee(unit)

	next := m.Method.Clone()
	ann := next.Annotations[indexOf(m.Method.Annotations, m.Annotation)]
	if err := Strip(next, ann, m.Attribute, d.cfg.KeepEmptyMarker); err != nil {
		return err
	}
	if err := Wrap(next, m.ErrorType, WrapOptions{Callee: callee, IndentUnit: d.indent}); err != nil {
		return err
	}

	if err := unit.Replace(m.Index, m.Method, next); err != nil {
		return domain.NewRewriteError(domain.ErrTreeMutation, m.Method, "commit failed", err)
	}
	if needImport {
		unit.RequireStaticImport(d.cfg.AssertionClass, d.cfg.AssertionMethod)
	}
	return nil
}

func (d *Driver) validate(unit *domain.CompilationUnit, m domain.MatchResult) error {
	if m.Method == nil || m.Annotation == nil {
		return domain.NewRewriteError(domain.ErrInvariantViolation, m.Method, "empty match", nil)
	}
	if m.Index < 0 || m.Index >= len(unit.Methods) || unit.Methods[m.Index] != m.Method {
		return domain.NewRewriteError(domain.ErrInvariantViolation, m.Method, "declaration changed since it was scanned", nil)
	}
	if indexOf(m.Method.Annotations, m.Annotation) < 0 {
		return domain.NewRewriteError(domain.ErrInvariantViolation, m.Method,
			fmt.Sprintf("annotation @%s is gone", m.Annotation.Name), nil)
	}
	attr, _ := m.Annotation.Attribute(m.Attribute)
	if attr == nil || attr.Value != m.ErrorType {
		return domain.NewRewriteError(domain.ErrInvariantViolation, m.Method,
			fmt.Sprintf("attribute %q changed since it was scanned", m.Attribute), nil)
	}
	return nil
}

// callee picks the assertion call form. The unqualified name is used when
// the static import already exists or can be added.
func (d *Driver) callee(unit *domain.CompilationUnit) (string, bool) {
	class, method := d.cfg.AssertionClass, d.cfg.AssertionMethod
	if unit.HasStaticImport(class, method) {
		return method, false
	}
	if d.cfg.StaticImport && !unit.ConflictingStaticImport(class, method) {
		return method, true
	}
	return class + "." + method, false
}

func indexOf(anns []*domain.Annotation, ann *domain.Annotation) int {
	for i, a := range anns {
		if a == ann {
			return i
		}
	}
	return -1
}
