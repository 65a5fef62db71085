package filehost

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"

	"github.com/harry-hov/docwriter/internal/docs"
)

func TestLanguageID(t *testing.T) {
	assert.Equal(t, "python", LanguageID("a/b.py"))
	assert.Equal(t, "javascript", LanguageID("x.JS"))
	assert.Equal(t, "plaintext", LanguageID("Makefile"))
}

func TestHostWriteAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.py")
	require.NoError(t, os.WriteFile(path, []byte("def add(a, b):\n    return a + b\n"), 0o600))

	doc, err := Open(path, "")
	require.NoError(t, err)
	assert.Equal(t, "python", doc.LanguageID)

	var stderr bytes.Buffer
	host := New(doc, []int{80}, &stderr)
	gen := generator{resp: &docs.DocResponse{Docstring: "\"\"\"Adds a and b.\"\"\"", Position: docs.PlacementBelow}}
	w := docs.NewWriter(host, gen, docs.Options{Languages: []string{"python"}, Source: "cli"})

	state, err := w.Write(context.Background(), &docs.Editor{
		Document:  host.Document(),
		Selection: docs.Caret(protocol.Position{Line: 0, Character: 4}),
	})
	require.NoError(t, err)
	assert.Equal(t, docs.StateInserted, state)
	assert.Empty(t, stderr.String())

	want := "def add(a, b):\n\t\"\"\"Adds a and b.\"\"\"\n    return a + b\n"
	assert.Equal(t, want, host.Document().Text)

	require.NoError(t, host.Save())
	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(saved))
}

func TestHostShowsErrors(t *testing.T) {
	var stderr bytes.Buffer
	doc := &docs.Document{URI: "file:///tmp/x.go", LanguageID: "go", Text: "package x"}
	host := New(doc, nil, &stderr)
	w := docs.NewWriter(host, generator{}, docs.Options{Languages: []string{"python"}})

	_, err := w.Write(context.Background(), &docs.Editor{Document: doc})
	assert.ErrorIs(t, err, docs.ErrUnsupportedLanguage)
	assert.Equal(t, "Please select code and try again..\n", stderr.String())
}

func TestHostRejectsOtherDocument(t *testing.T) {
	host := New(&docs.Document{URI: "file:///a.py"}, nil, &bytes.Buffer{})
	err := host.InsertSnippet(context.Background(), "file:///b.py", "x", protocol.Position{})
	assert.Error(t, err)
}

type generator struct {
	resp *docs.DocResponse
}

func (g generator) Generate(context.Context, *docs.DocRequest) (*docs.DocResponse, error) {
	return g.resp, nil
}
