package lsp

import (
	cmap "github.com/orcaman/concurrent-map/v2"
	"go.lsp.dev/protocol"

	"github.com/harry-hov/docwriter/internal/docs"
)

// Snapshot holds the latest text of every open document.
type Snapshot struct {
	file cmap.ConcurrentMap[string, *docs.Document]
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		file: cmap.New[*docs.Document](),
	}
}

func (s *Snapshot) Get(uri protocol.DocumentURI) (*docs.Document, bool) {
	return s.file.Get(string(uri))
}

func (s *Snapshot) Set(doc *docs.Document) {
	s.file.Set(string(doc.URI), doc)
}

func (s *Snapshot) Remove(uri protocol.DocumentURI) {
	s.file.Remove(string(uri))
}

// Editor pairs the open document at uri with sel. It is nil when the
// document is not open.
func (s *Snapshot) Editor(uri protocol.DocumentURI, sel docs.Selection) *docs.Editor {
	doc, ok := s.Get(uri)
	if !ok {
		return nil
	}
	return &docs.Editor{Document: doc, Selection: sel}
}
