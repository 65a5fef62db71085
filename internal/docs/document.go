package docs

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go.lsp.dev/protocol"
)

// Document is an immutable view of an editor buffer. Positions follow the
// LSP convention: zero-based lines, characters counted in UTF-16 code units.
type Document struct {
	URI        protocol.DocumentURI
	LanguageID string
	Text       string
}

// Line is a single line of a Document without its line terminator.
type Line struct {
	Number uint32
	Text   string

	start int // byte offset of the line in the document
}

// IsEmptyOrWhitespace reports whether the line is only spaces and tabs.
func (l Line) IsEmptyOrWhitespace() bool {
	return indentLen(l.Text) == len(l.Text)
}

// FirstNonWhitespace is the column after the leading spaces and tabs. Other
// space characters, like a form feed, count as content.
func (l Line) FirstNonWhitespace() uint32 {
	return uint32(utf16Len(l.Text[:indentLen(l.Text)]))
}

func indentLen(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}

// End is the position just past the last character of the line.
func (l Line) End() protocol.Position {
	return protocol.Position{Line: l.Number, Character: uint32(utf16Len(l.Text))}
}

func (d *Document) lines() []Line {
	var lines []Line
	text := d.Text
	start := 0
	for n := uint32(0); ; n++ {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			lines = append(lines, Line{Number: n, Text: text[start:], start: start})
			return lines
		}
		end := start + i
		line := text[start:end]
		line = strings.TrimSuffix(line, "\r")
		lines = append(lines, Line{Number: n, Text: line, start: start})
		start = end + 1
	}
}

// EOL is the line terminator the document uses, judged by its first line.
func (d *Document) EOL() string {
	i := strings.IndexByte(d.Text, '\n')
	if i > 0 && d.Text[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// LineCount is the number of lines, counting a trailing empty line.
func (d *Document) LineCount() int {
	return strings.Count(d.Text, "\n") + 1
}

// LineAt returns line n, clamped to the last line.
func (d *Document) LineAt(n uint32) Line {
	lines := d.lines()
	if int(n) >= len(lines) {
		return lines[len(lines)-1]
	}
	return lines[n]
}

// Validate clamps pos into the document.
func (d *Document) Validate(pos protocol.Position) protocol.Position {
	lines := d.lines()
	if int(pos.Line) >= len(lines) {
		return lines[len(lines)-1].End()
	}
	end := lines[pos.Line].End()
	if pos.Character > end.Character {
		pos.Character = end.Character
	}
	return pos
}

func (d *Document) byteOffset(pos protocol.Position) int {
	pos = d.Validate(pos)
	line := d.LineAt(pos.Line)
	return line.start + byteIndex(line.Text, int(pos.Character))
}

// OffsetAt is the UTF-16 offset of pos from the start of the document.
func (d *Document) OffsetAt(pos protocol.Position) int {
	return utf16Len(d.Text[:d.byteOffset(pos)])
}

// TextIn returns the text covered by r.
func (d *Document) TextIn(r protocol.Range) string {
	start, end := d.byteOffset(r.Start), d.byteOffset(r.End)
	if start > end {
		start, end = end, start
	}
	return d.Text[start:end]
}

// Insert returns a copy of the document with text inserted at pos.
func (d *Document) Insert(pos protocol.Position, text string) *Document {
	off := d.byteOffset(pos)
	return &Document{
		URI:        d.URI,
		LanguageID: d.LanguageID,
		Text:       d.Text[:off] + text + d.Text[off:],
	}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}

// byteIndex converts a UTF-16 column into a byte index of s, clamped to len(s).
func byteIndex(s string, units int) int {
	i := 0
	for i < len(s) && units > 0 {
		r, size := utf8.DecodeRuneInString(s[i:])
		units -= len(utf16.Encode([]rune{r}))
		i += size
	}
	return i
}
