package txxt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentEmptyTrailingNewlineAppended(t *testing.T) {
	doc, perr := ParseDocument("Hello world")
	require.Nil(t, perr)
	require.Len(t, doc.Children, 1)
	p, ok := doc.Children[0].(*Paragraph)
	require.True(t, ok)
	assert.Equal(t, "Hello world", p.Lines[0].Text)
}

func TestParseDocumentInconsistentIndentIsFatal(t *testing.T) {
	doc, perr := ParseDocument("a\n    b\n        c\n  d\n")
	assert.Nil(t, doc)
	require.NotNil(t, perr)
	assert.Equal(t, InconsistentIndent, perr.Kind)
}

func TestLexStageReturnsPerStageTokens(t *testing.T) {
	src := "a\n"
	raw, ok := LexStage(src, RawTokens).([]Token)
	require.True(t, ok)
	assert.NotEmpty(t, raw)

	afterBlank, ok := LexStage(src, AfterBlankLines).([]Token)
	require.True(t, ok)
	assert.NotEmpty(t, afterBlank)
}

func TestLexStageLineTokensReturnsLineTokenSlice(t *testing.T) {
	src := "1. Intro\n\n    Body.\n"
	lines, ok := LexStage(src, LineTokens).([]LineToken)
	require.True(t, ok)
	assert.NotEmpty(t, lines)
}

func TestLexStageTokenTreeReturnsLineContainer(t *testing.T) {
	src := "1. Intro\n\n    Body.\n"
	root, ok := LexStage(src, TokenTree).(*LineContainer)
	require.True(t, ok)
	require.NotNil(t, root)
	assert.NotEmpty(t, root.Children)
}

func TestFindNodesAtPositionReturnsDeepestFirst(t *testing.T) {
	doc, perr := ParseDocument("1. Intro\n\n    Body.\n")
	require.Nil(t, perr)

	// "Body." sits on line 2 (0-indexed), somewhere past column 4.
	pos := Position{Line: 2, Column: 5}
	path := FindNodesAtPosition(doc, pos)
	require.NotEmpty(t, path)
	assert.Equal(t, "TextLine", path[0].NodeType())
	assert.Equal(t, "Session", path[len(path)-1].NodeType())
}

func TestElementAtReturnsInnermostNode(t *testing.T) {
	doc, perr := ParseDocument("Hello world\n")
	require.Nil(t, perr)

	el := ElementAt(doc, Position{Line: 0, Column: 2})
	require.NotNil(t, el)
	assert.Equal(t, "TextLine", el.NodeType())
}

func TestElementAtOutsideAnyRangeReturnsNil(t *testing.T) {
	doc, perr := ParseDocument("Hello world\n")
	require.Nil(t, perr)

	el := ElementAt(doc, Position{Line: 50, Column: 0})
	assert.Nil(t, el)
}
