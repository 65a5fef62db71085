package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultLanguages = NewLanguages("python", "javascript")

func TestExtractHighlightedIgnoresLanguage(t *testing.T) {
	for _, lang := range []string{"python", "rust", ""} {
		doc := &Document{LanguageID: lang, Text: "x = 1\n    y = compute(x)\n"}
		editor := &Editor{Document: doc, Selection: Selection{Start: pos(1, 4), End: pos(1, 18), Active: pos(1, 18)}}

		target, err := Extract(editor, defaultLanguages)
		require.NoError(t, err, lang)
		assert.Equal(t, "y = compute(x)", target.Code)
		assert.Nil(t, target.Line)
		assert.Nil(t, target.Location)
		assert.Equal(t, uint32(4), target.Indent)
	}
}

func TestExtractReversedSelection(t *testing.T) {
	doc := &Document{LanguageID: "go", Text: "abc def"}
	editor := &Editor{Document: doc, Selection: Selection{Start: pos(0, 7), End: pos(0, 4), Active: pos(0, 4)}}

	target, err := Extract(editor, defaultLanguages)
	require.NoError(t, err)
	assert.Equal(t, "def", target.Code)
	assert.Equal(t, pos(0, 4), target.Selection.Start)
}

func TestExtractCursorLine(t *testing.T) {
	doc := &Document{LanguageID: "python", Text: "import os\n  def f(a):\n"}
	editor := &Editor{Document: doc, Selection: Caret(pos(1, 5))}

	target, err := Extract(editor, defaultLanguages)
	require.NoError(t, err)
	assert.Equal(t, "", target.Code)
	require.NotNil(t, target.Line)
	assert.Equal(t, "  def f(a):", target.Line.Text)
	require.NotNil(t, target.Location)
	assert.Equal(t, 15, *target.Location)
	assert.Equal(t, uint32(2), target.Indent)
}

func TestExtractErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		editor *Editor
		want   error
	}{
		{"no editor", nil, ErrNoActiveEditor},
		{"no document", &Editor{}, ErrNoActiveEditor},
		{
			"blank line",
			&Editor{Document: &Document{LanguageID: "python", Text: "x\n   \t\ny"}, Selection: Caret(pos(1, 2))},
			ErrEmptyLineSelected,
		},
		{
			// blank wins over language
			"blank line unsupported language",
			&Editor{Document: &Document{LanguageID: "rust", Text: "\n"}, Selection: Caret(pos(0, 0))},
			ErrEmptyLineSelected,
		},
		{
			"unsupported language",
			&Editor{Document: &Document{LanguageID: "rust", Text: "fn main() {}"}, Selection: Caret(pos(0, 3))},
			ErrUnsupportedLanguage,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Extract(tc.editor, defaultLanguages)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLanguagesFoldCase(t *testing.T) {
	langs := NewLanguages("Python")
	assert.True(t, langs.Supports("python"))
	assert.True(t, langs.Supports("PYTHON"))
	assert.False(t, langs.Supports("javascript"))
	assert.False(t, NewLanguages().Supports("python"))
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 100, Width(nil, 0))
	assert.Equal(t, 96, Width([]int{}, 4))
	assert.Equal(t, 76, Width([]int{80, 120}, 4))
	// never clamped
	assert.Equal(t, -20, Width([]int{10}, 30))
	assert.Equal(t, Width([]int{72}, 8), Width([]int{72}, 8))
}
