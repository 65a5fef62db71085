package docs

import (
	"go.lsp.dev/protocol"
	"golang.org/x/text/cases"
)

// Selection is the editor selection. Active is the cursor end of the span.
type Selection struct {
	Start  protocol.Position `json:"start"`
	End    protocol.Position `json:"end"`
	Active protocol.Position `json:"active"`
}

// Caret is an empty selection at pos.
func Caret(pos protocol.Position) Selection {
	return Selection{Start: pos, End: pos, Active: pos}
}

func (s Selection) IsEmpty() bool {
	return s.Start == s.End
}

func (s Selection) Range() protocol.Range {
	return protocol.Range{Start: s.Start, End: s.End}
}

func before(a, b protocol.Position) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Character < b.Character)
}

// normalize orders Start before End.
func (s Selection) normalize() Selection {
	if before(s.End, s.Start) {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

// Editor is the document and selection a command operates on.
type Editor struct {
	Document  *Document
	Selection Selection
}

// Languages is the set of language ids accepted without a selection.
type Languages struct {
	ids map[string]struct{}
}

func NewLanguages(ids ...string) Languages {
	l := Languages{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		l.ids[foldID(id)] = struct{}{}
	}
	return l
}

// A Caser is stateful, so each call gets its own.
func foldID(id string) string {
	return cases.Fold().String(id)
}

func (l Languages) Supports(id string) bool {
	_, ok := l.ids[foldID(id)]
	return ok
}

// Target is the span docs.write documents.
type Target struct {
	Selection Selection
	// Code is the highlighted text; empty when the cursor line is used.
	Code string
	// Line is set when there was no highlighted text.
	Line *Line
	// Location is the document offset of the cursor on the line path.
	Location *int
	// Indent is the column width is measured from.
	Indent uint32
}

// Extract picks the span to document: the highlighted text when there is
// any, otherwise the cursor line. Only the cursor line path is gated on
// languages.
func Extract(editor *Editor, languages Languages) (*Target, error) {
	if editor == nil || editor.Document == nil {
		return nil, ErrNoActiveEditor
	}
	doc := editor.Document
	sel := editor.Selection.normalize()
	sel.Start = doc.Validate(sel.Start)
	sel.End = doc.Validate(sel.End)
	sel.Active = doc.Validate(sel.Active)

	code := doc.TextIn(sel.Range())
	if code != "" {
		return &Target{
			Selection: sel,
			Code:      code,
			Indent:    sel.Start.Character,
		}, nil
	}

	line := doc.LineAt(sel.Active.Line)
	if line.IsEmptyOrWhitespace() {
		return nil, ErrEmptyLineSelected
	}
	if !languages.Supports(doc.LanguageID) {
		return nil, ErrUnsupportedLanguage
	}
	location := doc.OffsetAt(sel.Active)
	return &Target{
		Selection: sel,
		Line:      &line,
		Location:  &location,
		Indent:    line.FirstNonWhitespace(),
	}, nil
}

// DefaultWidth applies when the editor has no rulers configured.
const DefaultWidth = 100

// Width is the column budget for generated text: the first ruler (or
// DefaultWidth) minus indent. It is not clamped at zero.
func Width(rulers []int, indent uint32) int {
	maxWidth := DefaultWidth
	if len(rulers) > 0 {
		maxWidth = rulers[0]
	}
	return maxWidth - int(indent)
}
