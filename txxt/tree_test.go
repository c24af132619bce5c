package txxt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTreeFrom(t *testing.T, src string) *LineContainer {
	t.Helper()
	idx := NewSourceIndex([]byte(src))
	l1 := NormalizeWhitespace(Lex0([]byte(src)))
	l2, perr := AnalyzeIndentation(l1, idx)
	require.Nil(t, perr)
	l3 := AggregateBlankLines(l2)
	l4 := ClassifyLines(l3)
	return BuildTree(l4)
}

func TestBuildTreeInjectsRootParentBlank(t *testing.T) {
	root := buildTreeFrom(t, "Hello world\n")
	require.NotEmpty(t, root.Children)
	first := root.Children[0]
	assert.True(t, first.IsToken)
	assert.Equal(t, LTParentBlankMarker, first.Token.Type)
}

func TestBuildTreeSkipsInjectionWhenBlankAlready(t *testing.T) {
	root := buildTreeFrom(t, "\nHello world\n")
	require.NotEmpty(t, root.Children)
	first := root.Children[0]
	assert.True(t, first.IsToken)
	assert.Equal(t, LTBlankLine, first.Token.Type)
}

func TestBuildTreeNestsOnIndent(t *testing.T) {
	src := "1. Intro\n\n    Body.\n"
	root := buildTreeFrom(t, src)
	// root: [parent_blank, "1. Intro", blank, container{width 4}]
	require.Len(t, root.Children, 4)
	container := root.Children[3]
	assert.False(t, container.IsToken)
	assert.Equal(t, 4, container.Width)
	require.Len(t, container.Children, 2)
	assert.Equal(t, LTParentBlankMarker, container.Children[0].Token.Type)
	assert.Equal(t, "Body.", container.Children[1].Token.Text([]byte(src)))
}
