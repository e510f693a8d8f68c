package rewrite

import (
	"fmt"

	"github.com/abdidvp/expectfix/internal/domain"
)

const fixName = "Replace 'expected' with assertThrows"

// Inspection reports marker annotations with an expected-exception
// attribute and offers the assertThrows rewrite as the fix.
type Inspection struct {
	driver *Driver
	cfg    domain.ExpectedExceptionConfig
}

func NewInspection(cfg domain.ExpectedExceptionConfig, indentUnit string) *Inspection {
	return &Inspection{driver: NewDriver(cfg, indentUnit), cfg: cfg}
}

func (i *Inspection) ID() string { return domain.InspectionExpectedException }

func (i *Inspection) Check(unit *domain.CompilationUnit) []domain.Problem {
	var problems []domain.Problem
	cur := i.driver.Scan(unit)
	for _, m := range cur.All() {
		problems = append(problems, domain.Problem{
			Issue: domain.Issue{
				Inspection: i.ID(),
				Severity:   domain.SeverityWarning,
				File:       unit.Path,
				Line:       m.Annotation.Line,
				Method:     m.Method.Name,
				Message: fmt.Sprintf("@%s(%s = %s) can be replaced with %s",
					m.Annotation.Name, m.Attribute, m.ErrorType.String(), i.cfg.AssertionMethod),
				FixName:      fixName,
				FixAvailable: true,
			},
			Fix: &wrapFix{driver: i.driver, match: m},
		})
	}
	for _, e := range cur.Skipped() {
		problems = append(problems, domain.Problem{
			Issue: domain.Issue{
				Inspection: i.ID(),
				Severity:   domain.SeverityWarning,
				File:       unit.Path,
				Line:       e.Line,
				Method:     e.Method,
				Message:    e.Reason,
			},
		})
	}
	return problems
}

type wrapFix struct {
	driver *Driver
	match  domain.MatchResult
}

func (f *wrapFix) Apply(unit *domain.CompilationUnit) error {
	return f.driver.Apply(unit, f.match)
}
