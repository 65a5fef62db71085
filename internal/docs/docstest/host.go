// Package docstest provides a recording docs.Host for tests.
package docstest

import (
	"context"
	"sync"

	"go.lsp.dev/protocol"
)

// Insertion is one recorded InsertSnippet call.
type Insertion struct {
	URI      protocol.DocumentURI
	Snippet  string
	Position protocol.Position
}

// Host records everything docs asks of the editor.
type Host struct {
	// RulerSetting is returned from Rulers.
	RulerSetting []int
	RulersErr    error
	InsertErr    error

	mu         sync.Mutex
	Errors     []string
	Progress   []string
	Insertions []Insertion
	// InProgress is true while a WithProgress callback runs.
	InProgress bool
}

func (h *Host) Rulers(_ context.Context, _ protocol.DocumentURI) ([]int, error) {
	return h.RulerSetting, h.RulersErr
}

func (h *Host) WithProgress(ctx context.Context, title string, fn func(context.Context) error) error {
	h.mu.Lock()
	h.Progress = append(h.Progress, title)
	h.InProgress = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.InProgress = false
		h.mu.Unlock()
	}()
	return fn(ctx)
}

func (h *Host) ShowError(_ context.Context, message string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Errors = append(h.Errors, message)
	return nil
}

func (h *Host) InsertSnippet(_ context.Context, uri protocol.DocumentURI, snippet string, pos protocol.Position) error {
	if h.InsertErr != nil {
		return h.InsertErr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Insertions = append(h.Insertions, Insertion{URI: uri, Snippet: snippet, Position: pos})
	return nil
}
