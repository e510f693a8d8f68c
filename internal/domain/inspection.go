package domain

// Issue represents a problem found during inspection.
type Issue struct {
	Inspection   string `json:"inspection"`
	Severity     string `json:"severity"`
	File         string `json:"file,omitempty"`
	Line         int    `json:"line,omitempty"`
	Method       string `json:"method,omitempty"`
	Message      string `json:"message"`
	FixName      string `json:"fix_name,omitempty"`
	FixAvailable bool   `json:"fix_available"`
}

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Fix rewrites the unit a problem was found in.
type Fix interface {
	Apply(unit *CompilationUnit) error
}

// Problem is an Issue together with the fix that resolves it, if any.
type Problem struct {
	Issue
	Fix Fix `json:"-"`
}

// Inspection checks one compilation unit. Check must not modify the unit.
type Inspection interface {
	ID() string
	Check(unit *CompilationUnit) []Problem
}
