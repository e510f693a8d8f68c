package domain

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Span is a half-open byte range [Start, End) in a source file.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Import is a single import declaration of a compilation unit.
type Import struct {
	Path     string `json:"path"` // without the trailing ".*"
	Static   bool   `json:"static"`
	Wildcard bool   `json:"wildcard"`
}

// SimpleName returns the last segment of the imported path.
func (i Import) SimpleName() string {
	return SimpleName(i.Path)
}

// SimpleName returns the part of a dotted name after the last dot.
func SimpleName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// Attribute is a named value inside an annotation.
type Attribute struct {
	Name     string `json:"name"`
	Value    *Node  `json:"value"`
	Node     *Node  `json:"-"` // the whole name = value pair as written
	Implicit bool   `json:"implicit,omitempty"`
}

func (a *Attribute) clone() *Attribute {
	return &Attribute{Name: a.Name, Value: a.Value.Clone(), Node: a.Node.Clone(), Implicit: a.Implicit}
}

// Annotation is a marker attached to a declaration.
type Annotation struct {
	Name       string       `json:"name"`
	Attributes []*Attribute `json:"attributes,omitempty"`
	Span       Span         `json:"span"`
	DeleteEnd  int          `json:"-"` // start of the next token after the annotation
	Line       int          `json:"line"`
}

// Attribute returns the attribute with the given name.
func (a *Annotation) Attribute(name string) (*Attribute, int) {
	for i, attr := range a.Attributes {
		if attr.Name == name {
			return attr, i
		}
	}
	return nil, -1
}

func (a *Annotation) clone() *Annotation {
	c := *a
	c.Attributes = make([]*Attribute, len(a.Attributes))
	for i, attr := range a.Attributes {
		c.Attributes[i] = attr.clone()
	}
	return &c
}

// Parameter is a formal parameter of a method.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// MethodDeclaration is a method with its annotations and body statements.
type MethodDeclaration struct {
	Name         string        `json:"name"`
	Class        string        `json:"class"`
	Annotations  []*Annotation `json:"annotations,omitempty"`
	Modifiers    []string      `json:"modifiers,omitempty"`
	ReturnType   string        `json:"return_type"`
	Parameters   []Parameter   `json:"parameters,omitempty"`
	Body         []*Node       `json:"-"`
	BodyTrailing string        `json:"-"` // trivia before the closing brace
	HasBody      bool          `json:"has_body"`
	Span         Span          `json:"span"`
	BodySpan     Span          `json:"body_span"`
	Indent       string        `json:"-"`
	Line         int           `json:"line"`
}

// Clone deep-copies the declaration. Spans are kept so the clone still maps
// onto the original source.
func (m *MethodDeclaration) Clone() *MethodDeclaration {
	c := *m
	c.Annotations = make([]*Annotation, len(m.Annotations))
	for i, a := range m.Annotations {
		c.Annotations[i] = a.clone()
	}
	c.Modifiers = append([]string(nil), m.Modifiers...)
	c.Parameters = append([]Parameter(nil), m.Parameters...)
	c.Body = CloneNodes(m.Body)
	return &c
}

// CompilationUnit is one parsed source file. It owns its declarations; the
// only way to change one is Replace.
type CompilationUnit struct {
	Path     string                       `json:"path"`
	Package  string                       `json:"package,omitempty"`
	Imports  []Import                     `json:"imports,omitempty"`
	Fields   map[string]map[string]string `json:"fields,omitempty"` // class -> field -> type
	Methods  []*MethodDeclaration         `json:"methods"`
	Source   []byte                       `json:"-"`
	ReadOnly bool                         `json:"read_only,omitempty"`

	// ImportAnchor is where new imports are inserted: the end of the last
	// import, else the end of the package declaration, else 0.
	ImportAnchor int `json:"-"`

	originals     map[int]*MethodDeclaration
	staticImports []string
}

// Replace commits next in place of the declaration at index. old must still
// be the current declaration there.
func (u *CompilationUnit) Replace(index int, old, next *MethodDeclaration) error {
	if u.ReadOnly {
		return errors.Errorf("%s is read-only: %w", u.Path, ErrTreeMutation)
	}
	if index < 0 || index >= len(u.Methods) {
		return errors.Errorf("declaration %d out of range: %w", index, ErrInvariantViolation)
	}
	if u.Methods[index] != old {
		return errors.Errorf("declaration %d changed since it was read: %w", index, ErrInvariantViolation)
	}
	if u.originals == nil {
		u.originals = make(map[int]*MethodDeclaration)
	}
	if _, ok := u.originals[index]; !ok {
		u.originals[index] = old
	}
	u.Methods[index] = next
	return nil
}

// Original returns the declaration as parsed, if the one at index has been
// replaced since.
func (u *CompilationUnit) Original(index int) (*MethodDeclaration, bool) {
	m, ok := u.originals[index]
	return m, ok
}

// Changed returns the indices of replaced declarations in ascending order.
func (u *CompilationUnit) Changed() []int {
	var out []int
	for i := range u.Methods {
		if _, ok := u.originals[i]; ok {
			out = append(out, i)
		}
	}
	return out
}

// Modified reports whether anything needs to be written back.
func (u *CompilationUnit) Modified() bool {
	return len(u.originals) > 0 || len(u.staticImports) > 0
}

// HasStaticImport reports whether member of class is already statically
// imported, explicitly or through a wildcard.
func (u *CompilationUnit) HasStaticImport(class, member string) bool {
	for _, imp := range u.Imports {
		if !imp.Static {
			continue
		}
		if imp.Wildcard && imp.Path == class {
			return true
		}
		if !imp.Wildcard && imp.Path == class+"."+member {
			return true
		}
	}
	for _, s := range u.staticImports {
		if s == class+"."+member {
			return true
		}
	}
	return false
}

// ConflictingStaticImport reports whether a member with the same simple name
// is statically imported from a different class.
func (u *CompilationUnit) ConflictingStaticImport(class, member string) bool {
	for _, imp := range u.Imports {
		if imp.Static && !imp.Wildcard && imp.SimpleName() == member && imp.Path != class+"."+member {
			return true
		}
	}
	return false
}

// ImportsOtherType reports whether the unit imports a type whose simple name
// is simple but whose qualified name differs from qualified.
func (u *CompilationUnit) ImportsOtherType(qualified string) bool {
	simple := SimpleName(qualified)
	for _, imp := range u.Imports {
		if !imp.Static && !imp.Wildcard && imp.SimpleName() == simple && imp.Path != qualified {
			return true
		}
	}
	return false
}

// RequireStaticImport records a static import to add when the unit is
// printed.
func (u *CompilationUnit) RequireStaticImport(class, member string) {
	if u.HasStaticImport(class, member) {
		return
	}
	u.staticImports = append(u.staticImports, class+"."+member)
}

// PendingStaticImports lists static imports requested since parsing.
func (u *CompilationUnit) PendingStaticImports() []string {
	return append([]string(nil), u.staticImports...)
}

// FieldType resolves a field of class to its declared type.
func (u *CompilationUnit) FieldType(class, name string) (string, bool) {
	fields, ok := u.Fields[class]
	if !ok {
		return "", false
	}
	t, ok := fields[name]
	return t, ok
}

// MatchResult is a method found by the expected-exception matcher. It is
// only valid against the unit state it was scanned from.
type MatchResult struct {
	Index         int                `json:"index"`
	Method        *MethodDeclaration `json:"-"`
	Annotation    *Annotation        `json:"-"`
	Attribute     string             `json:"attribute"`
	ErrorType     *Node              `json:"-"`
	OnlyAttribute bool               `json:"only_attribute"`
}

// ErrorTypeName returns the referenced type without the ".class" suffix.
func (m MatchResult) ErrorTypeName() string {
	tokens := m.ErrorType.Tokens()
	if n := len(tokens); n >= 2 && tokens[n-1] == "class" && tokens[n-2] == "." {
		tokens = tokens[:n-2]
	}
	return strings.Join(tokens, "")
}
