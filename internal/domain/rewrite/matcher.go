// Package rewrite turns JUnit 4 expected-exception tests into assertThrows
// blocks on the owned syntax tree.
package rewrite

import (
	"fmt"
	"strings"

	"github.com/abdidvp/expectfix/internal/domain"
)

// Matcher finds the marker annotation and its expected-like attribute.
type Matcher struct {
	Marker    string
	Attribute string
}

func NewMatcher(cfg domain.ExpectedExceptionConfig) *Matcher {
	return &Matcher{Marker: cfg.Marker, Attribute: cfg.Attribute}
}

// Match inspects one declaration. ok is false when the method carries no
// marker with a matching attribute. A matching attribute whose value is not
// a class literal yields ErrMalformedAttribute. unit may be nil, in which case
// imports are not consulted.
func (m *Matcher) Match(unit *domain.CompilationUnit, method *domain.MethodDeclaration) (domain.MatchResult, bool, error) {
	if method == nil || !method.HasBody {
		return domain.MatchResult{}, false, nil
	}

	ann := m.findMarker(unit, method)
	if ann == nil {
		return domain.MatchResult{}, false, nil
	}

	for _, attr := range ann.Attributes {
		if !strings.Contains(attr.Name, m.Attribute) {
			continue
		}
		if attr.Value == nil || attr.Value.Kind != "class_literal" {
			reason := fmt.Sprintf("@%s(%s = %s) is not a class literal", ann.Name, attr.Name, attr.Value.String())
			return domain.MatchResult{}, false, domain.NewRewriteError(domain.ErrMalformedAttribute, method, reason, nil)
		}
		return domain.MatchResult{
			Method:        method,
			Annotation:    ann,
			Attribute:     attr.Name,
			ErrorType:     attr.Value,
			OnlyAttribute: len(ann.Attributes) == 1,
		}, true, nil
	}

	return domain.MatchResult{}, false, nil
}

func (m *Matcher) findMarker(unit *domain.CompilationUnit, method *domain.MethodDeclaration) *domain.Annotation {
	for _, ann := range method.Annotations {
		if m.isMarker(unit, ann.Name) {
			return ann
		}
	}
	return nil
}

// isMarker accepts the qualified marker, or its simple name unless the file
// imports a different type under that name.
func (m *Matcher) isMarker(unit *domain.CompilationUnit, name string) bool {
	if name == m.Marker {
		return true
	}
	if name != domain.SimpleName(m.Marker) {
		return false
	}
	return unit == nil || !unit.ImportsOtherType(m.Marker)
}
