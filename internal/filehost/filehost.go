// Package filehost runs docs commands against a file on disk instead of a
// live editor.
package filehost

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/harry-hov/docwriter/internal/docs"
)

var languageIDs = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".ts":   "typescript",
	".go":   "go",
	".rs":   "rust",
	".java": "java",
}

// LanguageID guesses an editor language id from the file extension.
func LanguageID(path string) string {
	if id, ok := languageIDs[strings.ToLower(filepath.Ext(path))]; ok {
		return id
	}
	return "plaintext"
}

// Open loads path into a document. An empty languageID is guessed from the
// extension.
func Open(path, languageID string) (*docs.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	if languageID == "" {
		languageID = LanguageID(abs)
	}
	return &docs.Document{
		URI:        protocol.DocumentURI(uri.File(abs)),
		LanguageID: languageID,
		Text:       string(src),
	}, nil
}

// Host edits an in-memory copy of a document. Errors are written to Stderr.
type Host struct {
	doc    *docs.Document
	rulers []int
	stderr io.Writer
}

func New(doc *docs.Document, rulers []int, stderr io.Writer) *Host {
	return &Host{
		doc:    doc,
		rulers: rulers,
		stderr: stderr,
	}
}

// Document is the current contents, including any insertions.
func (h *Host) Document() *docs.Document {
	return h.doc
}

func (h *Host) Rulers(_ context.Context, _ protocol.DocumentURI) ([]int, error) {
	return h.rulers, nil
}

func (h *Host) WithProgress(ctx context.Context, title string, fn func(context.Context) error) error {
	slog.Info(title + "...")
	err := fn(ctx)
	slog.Info(title+" done", "ok", err == nil)
	return err
}

func (h *Host) ShowError(_ context.Context, message string) error {
	_, err := fmt.Fprintln(h.stderr, message)
	return err
}

func (h *Host) InsertSnippet(_ context.Context, uri protocol.DocumentURI, snippet string, pos protocol.Position) error {
	if uri != h.doc.URI {
		return fmt.Errorf("document %s is not open", uri)
	}
	h.doc = h.doc.Insert(pos, snippet)
	return nil
}

// Save writes the current contents back to the document's file, keeping
// its permissions.
func (h *Host) Save() error {
	path := h.doc.URI.Filename()
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(h.doc.Text), info.Mode().Perm())
}
