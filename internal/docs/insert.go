package docs

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"
)

// Placement says where a docstring goes relative to its target.
type Placement string

const (
	PlacementAbove Placement = "above"
	PlacementBelow Placement = "below"
)

// InsertArgs are the arguments of docs.insert.
type InsertArgs struct {
	Position  Placement `json:"position"`
	Content   string    `json:"content"`
	Selection Selection `json:"selection"`
}

// Plan computes the snippet and the position it is inserted at.
//
// Below: every line of content is indented by a tab and the block goes after
// the end of the line holding the selection start. Above: content and a
// newline go at the selection start, or at the first non-whitespace column
// of the cursor line when the selection is empty. Newlines follow the
// document's line terminator.
func Plan(doc *Document, args InsertArgs) (string, protocol.Position, error) {
	sel := args.Selection.normalize()
	eol := doc.EOL()
	lines := contentLines(args.Content)
	switch args.Position {
	case PlacementBelow:
		line := doc.LineAt(sel.Start.Line)
		for i, l := range lines {
			lines[i] = "\t" + l
		}
		return eol + strings.Join(lines, eol), line.End(), nil
	case PlacementAbove:
		snippet := strings.Join(lines, eol) + eol
		if !sel.IsEmpty() {
			return snippet, doc.Validate(sel.Start), nil
		}
		line := doc.LineAt(sel.Active.Line)
		return snippet, protocol.Position{Line: line.Number, Character: line.FirstNonWhitespace()}, nil
	default:
		return "", protocol.Position{}, ErrUnknownPosition
	}
}

// contentLines splits a docstring on either line terminator.
func contentLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Insert places a docstring into the editor's document through host.
func Insert(ctx context.Context, host Host, editor *Editor, args InsertArgs) error {
	if editor == nil || editor.Document == nil {
		return ErrNoActiveEditor
	}
	snippet, pos, err := Plan(editor.Document, args)
	if err != nil {
		return err
	}
	return host.InsertSnippet(ctx, editor.Document.URI, snippet, pos)
}
