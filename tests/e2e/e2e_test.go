package e2e_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/abdidvp/expectfix/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "expectfix-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "expectfix")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/expectfix")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

// fixtureCopy copies a Java fixture project so the binary can rewrite it.
func fixtureCopy(t *testing.T, name string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, os.DirFS(filepath.Join("../../testdata/java", name))))
	return dir
}

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return string(out), exitCode
}

func TestE2E_Inspect(t *testing.T) {
	out, code := run(t, "inspect", fixtureCopy(t, "junit4"))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "expectfix")
	assert.Contains(t, out, "6 issues")
}

func TestE2E_InspectCI(t *testing.T) {
	_, code := run(t, "inspect", fixtureCopy(t, "junit4"), "--ci")
	assert.Equal(t, 1, code)
}

func TestE2E_FixMatchesGolden(t *testing.T) {
	dir := fixtureCopy(t, "junit4")

	out, code := run(t, "fix", dir, "--json", "--only", "expected-exception")
	require.Equal(t, 0, code, out)

	var result domain.FixResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Applied, 2)

	got, err := os.ReadFile(filepath.Join(dir, "src/test/java/com/example/CalculatorTest.java"))
	require.NoError(t, err)
	want, err := os.ReadFile("../../testdata/java/golden/CalculatorTest.java")
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestE2E_FixThenInspectIsClean(t *testing.T) {
	dir := fixtureCopy(t, "jupiter")

	_, code := run(t, "fix", dir)
	require.Equal(t, 0, code)

	_, code = run(t, "inspect", dir, "--ci")
	assert.Equal(t, 0, code)

	out, code := run(t, "history", dir)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "1 applied")
}

func TestE2E_Version(t *testing.T) {
	out, code := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "expectfix")
}
