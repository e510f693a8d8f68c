package domain

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// Inspection identifiers.
const (
	InspectionExpectedException = "expected-exception"
	InspectionReferenceEquality = "reference-equality"
)

// ValidInspections enumerates all known inspection ids.
var ValidInspections = []string{InspectionExpectedException, InspectionReferenceEquality}

// Config holds project-level configuration loaded from .expectfix.yaml.
type Config struct {
	Include      []string          `yaml:"include"       json:"include,omitempty"`
	ExcludePaths []string          `yaml:"exclude_paths" json:"exclude_paths,omitempty"`
	Indent       string            `yaml:"indent"        json:"indent,omitempty"`
	Jobs         int               `yaml:"jobs"          json:"jobs,omitempty"`
	Inspections  InspectionsConfig `yaml:"inspections"   json:"inspections"`
}

type InspectionsConfig struct {
	ExpectedException ExpectedExceptionConfig `yaml:"expected_exception" json:"expected_exception"`
	ReferenceEquality ReferenceEqualityConfig `yaml:"reference_equality" json:"reference_equality"`
}

// ExpectedExceptionConfig configures the marker annotation rewrite.
type ExpectedExceptionConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Marker is the annotation to look for. Simple-name usages match too.
	Marker string `yaml:"marker" json:"marker"`
	// Attribute is matched as a substring of the attribute name.
	Attribute       string `yaml:"attribute"         json:"attribute"`
	AssertionClass  string `yaml:"assertion_class"   json:"assertion_class"`
	AssertionMethod string `yaml:"assertion_method"  json:"assertion_method"`
	StaticImport    bool   `yaml:"static_import"     json:"static_import"`
	KeepEmptyMarker bool   `yaml:"keep_empty_marker" json:"keep_empty_marker"`
}

// ReferenceEqualityConfig configures the == / != inspection.
type ReferenceEqualityConfig struct {
	Enabled        bool     `yaml:"enabled"         json:"enabled"`
	CheckedClasses []string `yaml:"checked_classes" json:"checked_classes"`
}

const DefaultIndent = "    "

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Include: []string{"**/*.java"},
		Indent:  DefaultIndent,
		Inspections: InspectionsConfig{
			ExpectedException: ExpectedExceptionConfig{
				Enabled:         true,
				Marker:          "org.junit.Test",
				Attribute:       "expected",
				AssertionClass:  "org.junit.jupiter.api.Assertions",
				AssertionMethod: "assertThrows",
				StaticImport:    true,
			},
			ReferenceEquality: ReferenceEqualityConfig{
				Enabled:        true,
				CheckedClasses: []string{"java.lang.String", "java.util.Date"},
			},
		},
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	for _, p := range c.Include {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid include pattern %q", p)
		}
	}
	for _, p := range c.ExcludePaths {
		if strings.TrimSpace(p) == "" {
			return errors.New("exclude_paths must not contain empty entries")
		}
	}
	if strings.TrimSpace(c.Indent) != "" {
		return errors.Errorf("indent must be whitespace (got %q)", c.Indent)
	}
	if c.Jobs < 0 {
		return errors.Errorf("jobs must be >= 0 (got %d)", c.Jobs)
	}

	ee := c.Inspections.ExpectedException
	if ee.Enabled {
		required := []struct{ name, value string }{
			{"marker", ee.Marker},
			{"attribute", ee.Attribute},
			{"assertion_class", ee.AssertionClass},
			{"assertion_method", ee.AssertionMethod},
		}
		for _, r := range required {
			if strings.TrimSpace(r.value) == "" {
				return errors.Errorf("inspections.expected_exception.%s must not be empty", r.name)
			}
		}
	}

	re := c.Inspections.ReferenceEquality
	if re.Enabled {
		if len(re.CheckedClasses) == 0 {
			return errors.New("inspections.reference_equality.checked_classes must not be empty")
		}
		for i, cls := range re.CheckedClasses {
			if strings.TrimSpace(cls) == "" {
				return errors.Errorf("inspections.reference_equality.checked_classes[%d] must not be empty", i)
			}
		}
	}

	return nil
}

// IndentUnit returns the configured indent, falling back to four spaces.
func (c Config) IndentUnit() string {
	if c.Indent == "" {
		return DefaultIndent
	}
	return c.Indent
}

// Enabled reports whether the inspection with the given id is switched on.
func (c Config) Enabled(id string) bool {
	switch id {
	case InspectionExpectedException:
		return c.Inspections.ExpectedException.Enabled
	case InspectionReferenceEquality:
		return c.Inspections.ReferenceEquality.Enabled
	}
	return false
}

// IsValidInspection reports whether id names a known inspection.
func IsValidInspection(id string) bool {
	for _, v := range ValidInspections {
		if v == id {
			return true
		}
	}
	return false
}
