package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDocwriter(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("DOCWRITER_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	cmd := DocwriterCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func serviceFlags(t *testing.T, status int, body string) []string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return []string{"--host", u.Hostname(), "--port", u.Port()}
}

func writeSource(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestWritePrintsDocumentedFile(t *testing.T) {
	path := writeSource(t, "calc.py", "def add(a, b):\n    return a + b\n")
	args := append([]string{"write", "-f", path, "-l", "0"},
		serviceFlags(t, http.StatusOK, `{"docstring": "Adds.", "position": "below"}`)...)

	stdout, _, err := runDocwriter(t, args...)
	require.NoError(t, err)
	assert.Equal(t, "def add(a, b):\n\tAdds.\n    return a + b\n", stdout)
}

func TestWriteInPlaceSelection(t *testing.T) {
	path := writeSource(t, "app.js", "const x = compute(1);\n")
	args := append([]string{"write", "-f", path, "-l", "0", "-c", "10", "--end-col", "20", "-i"},
		serviceFlags(t, http.StatusOK, `{"docstring": "// calls compute", "position": "above"}`)...)

	stdout, _, err := runDocwriter(t, args...)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "const x = // calls compute\ncompute(1);\n", string(got))
}

func TestWriteReportsBackendError(t *testing.T) {
	path := writeSource(t, "calc.py", "x = 1\n")
	args := append([]string{"write", "-f", path},
		serviceFlags(t, http.StatusInternalServerError, `{"error": "Backend unavailable"}`)...)

	_, stderr, err := runDocwriter(t, args...)
	require.Error(t, err)
	assert.Contains(t, stderr, "Backend unavailable\n")
}

func TestWriteRequiresFile(t *testing.T) {
	_, _, err := runDocwriter(t, "write")
	require.Error(t, err)
}

func TestServicePortFlagIsValidated(t *testing.T) {
	path := writeSource(t, "calc.py", "x = 1\n")

	_, _, err := runDocwriter(t, "write", "-f", path, "--port", "70000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service.port 70000 out of range")

	_, _, err = runDocwriter(t, "serve", "--port", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service.port 0 out of range")
}
