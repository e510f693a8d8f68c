package application

import (
	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/domain"
	"github.com/abdidvp/expectfix/internal/domain/refeq"
	"github.com/abdidvp/expectfix/internal/domain/rewrite"
)

// BuildInspections returns the enabled inspections, narrowed to only when it
// is non-empty. The order is fixed: expected-exception runs first.
func BuildInspections(cfg domain.Config, only []string) ([]domain.Inspection, error) {
	for _, id := range only {
		if !domain.IsValidInspection(id) {
			return nil, errors.Errorf("unknown inspection %q (valid: %v)", id, domain.ValidInspections)
		}
	}
	selected := domain.FixOptions{Only: only}

	var out []domain.Inspection
	if cfg.Enabled(domain.InspectionExpectedException) && selected.Selected(domain.InspectionExpectedException) {
		out = append(out, rewrite.NewInspection(cfg.Inspections.ExpectedException, cfg.IndentUnit()))
	}
	if cfg.Enabled(domain.InspectionReferenceEquality) && selected.Selected(domain.InspectionReferenceEquality) {
		out = append(out, refeq.NewInspection(cfg.Inspections.ReferenceEquality))
	}
	return out, nil
}

// jupiterWarning reports a build that does not declare JUnit Jupiter while
// the assertThrows rewrite is active.
func jupiterWarning(build *domain.BuildInfo, inspections []domain.Inspection) string {
	if build == nil || build.Tool == "none" || build.HasJupiter {
		return ""
	}
	for _, in := range inspections {
		if in.ID() == domain.InspectionExpectedException {
			return "junit-jupiter is not declared in " + build.File + "; rewritten tests need it to compile"
		}
	}
	return ""
}
