package e2e

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	stdout, stderr, err := runParnaso(t, binaryPath, home,
		"register", "--email", "ana@example.com", "--password", "secret1", "--name", "Ana",
	)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "(admin)")

	_, stderr, err = runParnaso(t, binaryPath, home, "project", "add", "Novel")
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runParnaso(t, binaryPath, home,
		"session", "add", "--project", "Novel", "--content", "a storm over the bay",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runParnaso(t, binaryPath, home, "session", "list", "--json")
	require.NoError(t, err, "stderr: %s", stderr)

	var sessions []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, "Novel", sessions[0]["project"])
	assert.EqualValues(t, 5, sessions[0]["word_count"])

	stdout, stderr, err = runParnaso(t, binaryPath, home, "stats")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "5/500 words")
}

func TestSmokeSQLiteStorage(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runParnaso(t, binaryPath, home,
		"register", "--email", "ana@example.com", "--password", "secret1",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runParnaso(t, binaryPath, home, "--storage", "sqlite", "session", "add", "--words", "300")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runParnaso(t, binaryPath, home, "--storage", "sqlite", "stats")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "300/500 words")

	stdout, stderr, err = runParnaso(t, binaryPath, home, "stats")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "0/500 words")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "parnaso-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/parnaso")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build parnaso binary: %s", string(output))
	return binaryPath
}

func runParnaso(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "PARNASO_SECRETS_BACKEND=file")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
