package printer_test

import (
	"os"
	"testing"

	"github.com/abdidvp/expectfix/internal/adapters/outbound/parser"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/printer"
	"github.com/abdidvp/expectfix/internal/domain"
	"github.com/abdidvp/expectfix/internal/domain/rewrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

const calculatorPath = "../../../../testdata/java/junit4/src/test/java/com/example/CalculatorTest.java"
const goldenPath = "../../../../testdata/java/golden/CalculatorTest.java"

func parse(t *testing.T, path string, src []byte) *domain.CompilationUnit {
	t.Helper()
	u, err := parser.New().Parse(path, src)
	require.NoError(t, err)
	return u
}

func fixAll(t *testing.T, u *domain.CompilationUnit) {
	t.Helper()
	d := rewrite.NewDriver(domain.DefaultConfig().Inspections.ExpectedException, "    ")
	for _, m := range d.Scan(u).All() {
		require.NoError(t, d.Apply(u, m))
	}
}

func TestPrinter_Unmodified(t *testing.T) {
	src, err := os.ReadFile(calculatorPath)
	require.NoError(t, err)
	u := parse(t, calculatorPath, src)

	out, err := printer.New().Print(u)
	require.NoError(t, err)
	assert.Equal(t, string(src), string(out))
}

func TestPrinter_Golden(t *testing.T) {
	src, err := os.ReadFile(calculatorPath)
	require.NoError(t, err)
	want, err := os.ReadFile(goldenPath)
	require.NoError(t, err)

	u := parse(t, calculatorPath, src)
	fixAll(t, u)

	out, err := printer.New().Print(u)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(out))

	// The output is valid Java and nothing is left to rewrite.
	again := parse(t, calculatorPath, out)
	d := rewrite.NewDriver(domain.DefaultConfig().Inspections.ExpectedException, "    ")
	assert.Empty(t, d.Scan(again).All())
}

func TestPrinter_TabsAndExistingWildcardImport(t *testing.T) {
	src := "package com.example;\n\nimport static org.junit.jupiter.api.Assertions.*;\n\nimport org.junit.Test;\n\nclass ParserTest {\n\t@Test(expected = IllegalStateException.class)\n\tvoid rejectsEmptyInput() {\n\t\tnew Parser(\"\").parse();\n\t}\n}\n"
	want := "package com.example;\n\nimport static org.junit.jupiter.api.Assertions.*;\n\nimport org.junit.Test;\n\nclass ParserTest {\n\tvoid rejectsEmptyInput() {\n\t\tassertThrows(IllegalStateException.class, () -> {\n\t\t\tnew Parser(\"\").parse();\n\t\t});\n\t}\n}\n"

	u := parse(t, "ParserTest.java", []byte(src))
	fixAll(t, u)

	out, err := printer.New().Print(u)
	require.NoError(t, err)
	assert.Equal(t, want, string(out))
}

func TestPrinter_ImportAfterPackageOnly(t *testing.T) {
	src := "package a;\n\nclass T {\n    @org.junit.Test(expected = X.class)\n    void t() {\n        run();\n    }\n}\n"
	want := "package a;\n\nimport static org.junit.jupiter.api.Assertions.assertThrows;\n\nclass T {\n    void t() {\n        assertThrows(X.class, () -> {\n            run();\n        });\n    }\n}\n"

	u := parse(t, "T.java", []byte(src))
	fixAll(t, u)

	out, err := printer.New().Print(u)
	require.NoError(t, err)
	assert.Equal(t, want, string(out))
}

func TestPrinter_NoPackageNoImports(t *testing.T) {
	src := "class T {\n    @org.junit.Test(expected = X.class)\n    void t() {\n        run();\n    }\n}\n"

	u := parse(t, "T.java", []byte(src))
	fixAll(t, u)

	out, err := printer.New().Print(u)
	require.NoError(t, err)
	assert.Equal(t, "import static org.junit.jupiter.api.Assertions.assertThrows;\n\n", string(out[:len("import static org.junit.jupiter.api.Assertions.assertThrows;\n\n")]))
}

func TestPrinter_KeepEmptyMarker(t *testing.T) {
	src := "import org.junit.Test;\nclass T {\n    @Test(expected = X.class)\n    void t() {\n        run();\n    }\n}\n"
	cfg := domain.DefaultConfig().Inspections.ExpectedException
	cfg.KeepEmptyMarker = true
	cfg.StaticImport = false

	u := parse(t, "T.java", []byte(src))
	d := rewrite.NewDriver(cfg, "    ")
	for _, m := range d.Scan(u).All() {
		require.NoError(t, d.Apply(u, m))
	}

	out, err := printer.New().Print(u)
	require.NoError(t, err)
	assert.Equal(t, "import org.junit.Test;\nclass T {\n    @Test\n    void t() {\n        org.junit.jupiter.api.Assertions.assertThrows(X.class, () -> {\n            run();\n        });\n    }\n}\n", string(out))
}

func TestEditBuilder_Apply(t *testing.T) {
	b := printer.NewEditBuilder()
	b.Replace(6, 11, "there")
	b.Insert(0, ">> ")
	b.Delete(5, 6)

	out, err := b.Apply([]byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, ">> hellothere", string(out))
}

func TestEditBuilder_Overlap(t *testing.T) {
	b := printer.NewEditBuilder()
	b.Replace(0, 5, "a")
	b.Replace(3, 8, "b")

	_, err := b.Apply([]byte("hello world"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTreeMutation))
}
