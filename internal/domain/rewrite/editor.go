package rewrite

import (
	"fmt"

	"github.com/abdidvp/expectfix/internal/domain"
)

// Strip removes the named attribute from ann. When no attributes remain the
// annotation itself is dropped from method, unless keepEmpty is set. Relative
// order of everything else is preserved.
func Strip(method *domain.MethodDeclaration, ann *domain.Annotation, attribute string, keepEmpty bool) error {
	annIdx := -1
	for i, a := range method.Annotations {
		if a == ann {
			annIdx = i
			break
		}
	}
	if annIdx < 0 {
		return domain.NewRewriteError(domain.ErrInvariantViolation, method,
			fmt.Sprintf("annotation @%s is not on the declaration", ann.Name), nil)
	}

	_, attrIdx := ann.Attribute(attribute)
	if attrIdx < 0 {
		return domain.NewRewriteError(domain.ErrInvariantViolation, method,
			fmt.Sprintf("attribute %q is not present on @%s", attribute, ann.Name), nil)
	}

	ann.Attributes = append(ann.Attributes[:attrIdx:attrIdx], ann.Attributes[attrIdx+1:]...)
	if len(ann.Attributes) > 0 || keepEmpty {
		return nil
	}

	method.Annotations = append(method.Annotations[:annIdx:annIdx], method.Annotations[annIdx+1:]...)
	return nil
}
