package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/domain"
	"github.com/abdidvp/expectfix/internal/domain/rewrite"
)

func TestMatch_ExpectedAttribute(t *testing.T) {
	m := expectedMethod("foo", "IllegalArgumentException", stmt("s1()"), stmt("s2()"))
	u := unitOf(m)

	res, ok, err := rewrite.NewMatcher(defaultCfg()).Match(u, m)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Same(t, m, res.Method)
	assert.Same(t, m.Annotations[0], res.Annotation)
	assert.Equal(t, "expected", res.Attribute)
	assert.Equal(t, "IllegalArgumentException", res.ErrorTypeName())
	assert.True(t, res.OnlyAttribute)
}

func TestMatch_NoExpectedAttribute(t *testing.T) {
	m := method("bar", []*domain.Annotation{annotation("Test", attr("timeout", intLiteral("100")))}, stmt("s1()"))

	_, ok, err := rewrite.NewMatcher(defaultCfg()).Match(unitOf(m), m)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatch_NoMarker(t *testing.T) {
	m := method("bar", []*domain.Annotation{annotation("Before")}, stmt("s1()"))

	_, ok, err := rewrite.NewMatcher(defaultCfg()).Match(unitOf(m), m)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatch_AttributeNameIsSubstring(t *testing.T) {
	m := method("foo", []*domain.Annotation{annotation("Test", attr("expectedException", classLiteral("IOException")))}, stmt("s1()"))

	res, ok, err := rewrite.NewMatcher(defaultCfg()).Match(unitOf(m), m)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "expectedException", res.Attribute)
}

func TestMatch_FirstMatchingAttributeWins(t *testing.T) {
	m := method("foo", []*domain.Annotation{annotation("Test",
		attr("timeout", intLiteral("10")),
		attr("expected", classLiteral("IOException")),
		attr("unexpected", classLiteral("RuntimeException")),
	)}, stmt("s1()"))

	res, ok, err := rewrite.NewMatcher(defaultCfg()).Match(unitOf(m), m)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "expected", res.Attribute)
	assert.Equal(t, "IOException", res.ErrorTypeName())
	assert.False(t, res.OnlyAttribute)
}

func TestMatch_MalformedValue(t *testing.T) {
	m := method("foo", []*domain.Annotation{annotation("Test",
		attr("expected", domain.Leaf("string_literal", " ", `"boom"`)),
	)}, stmt("s1()"))

	_, ok, err := rewrite.NewMatcher(defaultCfg()).Match(unitOf(m), m)
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, domain.ErrMalformedAttribute))
	assert.Equal(t, "malformed_attribute", domain.ErrorKind(err))
}

func TestMatch_QualifiedMarker(t *testing.T) {
	m := method("foo", []*domain.Annotation{annotation("org.junit.Test", attr("expected", classLiteral("IOException")))}, stmt("s1()"))
	u := unitOf(m)
	u.Imports = nil

	_, ok, err := rewrite.NewMatcher(defaultCfg()).Match(u, m)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMatch_SimpleNameOfOtherImportedType(t *testing.T) {
	m := expectedMethod("foo", "IOException", stmt("s1()"))
	u := unitOf(m)
	u.Imports = []domain.Import{{Path: "org.testng.annotations.Test"}}

	_, ok, err := rewrite.NewMatcher(defaultCfg()).Match(u, m)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatch_MethodWithoutBody(t *testing.T) {
	m := expectedMethod("foo", "IOException")
	m.HasBody = false

	_, ok, err := rewrite.NewMatcher(defaultCfg()).Match(unitOf(m), m)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatch_DoesNotModifyDeclaration(t *testing.T) {
	m := expectedMethod("foo", "IOException", stmt("s1()"))
	before := bodyText(m)

	_, _, err := rewrite.NewMatcher(defaultCfg()).Match(unitOf(m), m)
	require.NoError(t, err)
	assert.Equal(t, before, bodyText(m))
	assert.Len(t, m.Annotations[0].Attributes, 1)
}
