package application_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/expectfix/internal/domain"
)

func countBy(issues []domain.Issue, inspection string) int {
	n := 0
	for _, i := range issues {
		if i.Inspection == inspection {
			n++
		}
	}
	return n
}

func TestInspect_JUnit4Project(t *testing.T) {
	dir := copyFixture(t, "junit4")

	report, err := newInspectService().Inspect(testContext(), dir, domain.InspectOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.FilesScanned)
	assert.Equal(t, 3, countBy(report.Issues, domain.InspectionExpectedException))
	assert.Equal(t, 3, countBy(report.Issues, domain.InspectionReferenceEquality))
	assert.Equal(t, 5, report.Fixable())
	assert.Empty(t, report.FileErrors)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "junit-jupiter is not declared in pom.xml")
}

func TestInspect_IssuesInFileOrder(t *testing.T) {
	dir := copyFixture(t, "junit4")

	report, err := newInspectService().Inspect(testContext(), dir, domain.InspectOptions{NoCache: true})
	require.NoError(t, err)
	require.NotEmpty(t, report.Issues)

	first := report.Issues[0]
	assert.Equal(t, calculatorPath, first.File)
	assert.Equal(t, "rejectsNegativeInput", first.Method)
	assert.Equal(t, 20, first.Line)
}

func TestInspect_Only(t *testing.T) {
	dir := copyFixture(t, "junit4")

	report, err := newInspectService().Inspect(testContext(), dir, domain.InspectOptions{
		Only: []string{domain.InspectionReferenceEquality},
	})
	require.NoError(t, err)
	assert.Len(t, report.Issues, 3)
	assert.Empty(t, report.Warnings)
}

func TestInspect_JupiterProject(t *testing.T) {
	report, err := newInspectService().Inspect(testContext(), copyFixture(t, "jupiter"), domain.InspectOptions{})
	require.NoError(t, err)

	require.Len(t, report.Issues, 1)
	assert.Equal(t, "rejectsEmptyInput", report.Issues[0].Method)
	assert.Empty(t, report.Warnings)
}

func TestInspect_SyntaxErrorReported(t *testing.T) {
	report, err := newInspectService().Inspect(testContext(), copyFixture(t, "broken"), domain.InspectOptions{})
	require.NoError(t, err)

	require.Len(t, report.FileErrors, 1)
	assert.Equal(t, "Broken.java", report.FileErrors[0].File)
	assert.Contains(t, report.FileErrors[0].Message, "syntax error")
	assert.Empty(t, report.Issues)
}

func TestInspect_CacheSkipsCleanFiles(t *testing.T) {
	dir := copyFixture(t, "junit4")
	clean := filepath.Join(dir, "src/test/java/com/example/CleanTest.java")
	require.NoError(t, os.WriteFile(clean, []byte("package com.example;\n\nclass CleanTest {\n    void ok() {}\n}\n"), 0o644))

	svc := newInspectService()
	first, err := svc.Inspect(testContext(), dir, domain.InspectOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, first.FilesCached)
	assert.FileExists(t, filepath.Join(dir, ".expectfix", "cache", "inspect.json"))

	second, err := svc.Inspect(testContext(), dir, domain.InspectOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, second.FilesCached)
	assert.Len(t, second.Issues, len(first.Issues))

	// a content change invalidates the entry
	require.NoError(t, os.WriteFile(clean, []byte("package com.example;\n\nclass CleanTest {\n    void ok() { }\n}\n"), 0o644))
	third, err := svc.Inspect(testContext(), dir, domain.InspectOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, third.FilesCached)

	noCache, err := svc.Inspect(testContext(), dir, domain.InspectOptions{NoCache: true})
	require.NoError(t, err)
	assert.Equal(t, 0, noCache.FilesCached)
}

func TestInspect_ConfigChangeInvalidatesCache(t *testing.T) {
	dir := copyFixture(t, "jupiter")
	svc := newInspectService()

	_, err := svc.Inspect(testContext(), dir, domain.InspectOptions{Only: []string{domain.InspectionReferenceEquality}})
	require.NoError(t, err)

	report, err := svc.Inspect(testContext(), dir, domain.InspectOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.FilesCached)
	assert.Len(t, report.Issues, 1)
}

func TestInspect_InvalidConfig(t *testing.T) {
	dir := copyFixture(t, "jupiter")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".expectfix.yaml"), []byte("jobs: -1\n"), 0o644))

	_, err := newInspectService().Inspect(testContext(), dir, domain.InspectOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestInspect_MissingDir(t *testing.T) {
	_, err := newInspectService().Inspect(testContext(), "/nonexistent/path", domain.InspectOptions{})
	assert.Error(t, err)
}
