package docs

import (
	"context"

	"go.lsp.dev/protocol"
)

// Host is the editor docs.write runs against.
type Host interface {
	// Rulers returns the editor.rulers setting for uri; nil when unset.
	Rulers(ctx context.Context, uri protocol.DocumentURI) ([]int, error)
	// WithProgress shows a non-cancellable progress indicator titled title
	// for as long as fn runs.
	WithProgress(ctx context.Context, title string, fn func(context.Context) error) error
	ShowError(ctx context.Context, message string) error
	// InsertSnippet inserts snippet at pos. Placeholder syntax in snippet is
	// left to the host.
	InsertSnippet(ctx context.Context, uri protocol.DocumentURI, snippet string, pos protocol.Position) error
}
