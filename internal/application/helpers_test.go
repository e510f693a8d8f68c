package application_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/expectfix/internal/adapters/outbound/cache"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/config"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/detector"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/history"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/parser"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/printer"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/scanner"
	"github.com/abdidvp/expectfix/internal/application"
)

const fixtureRoot = "../../testdata/java"

const calculatorPath = "src/test/java/com/example/CalculatorTest.java"

// copyFixture copies a fixture project into a temp dir so tests can modify it.
func copyFixture(t *testing.T, name string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, os.DirFS(filepath.Join(fixtureRoot, name))))
	return dir
}

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func newInspectService() *application.InspectService {
	return application.NewInspectService(
		scanner.New(),
		parser.New(),
		config.New(),
		detector.New(),
		cache.New(),
	)
}

func newFixService() *application.FixService {
	return application.NewFixService(
		scanner.New(),
		parser.New(),
		printer.New(),
		config.New(),
		detector.New(),
		gitinfo.New(),
		history.New(),
	)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
