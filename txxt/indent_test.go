package txxt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexThroughL2(t *testing.T, src string) ([]Token, *ParseError) {
	t.Helper()
	idx := NewSourceIndex([]byte(src))
	l1 := NormalizeWhitespace(Lex0([]byte(src)))
	return AnalyzeIndentation(l1, idx)
}

func TestAnalyzeIndentationFlatLines(t *testing.T) {
	toks, perr := lexThroughL2(t, "a\nb\n")
	require.Nil(t, perr)
	for _, tok := range toks {
		assert.NotEqual(t, Indent, tok.Type)
		assert.NotEqual(t, Dedent, tok.Type)
	}
}

func TestAnalyzeIndentationOpensAndCloses(t *testing.T) {
	toks, perr := lexThroughL2(t, "a\n    b\nc\n")
	require.Nil(t, perr)

	var types []TokType
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	assert.Contains(t, types, Indent)
	assert.Contains(t, types, Dedent)

	var widths []int
	for _, tok := range toks {
		if tok.Type == Indent {
			widths = append(widths, tok.Width)
		}
	}
	assert.Equal(t, []int{4}, widths)
}

func TestAnalyzeIndentationInconsistentDedent(t *testing.T) {
	// Opens two levels (4, then 8) and tries to dedent to 2, which was
	// never an established level.
	_, perr := lexThroughL2(t, "a\n    b\n        c\n  d\n")
	require.NotNil(t, perr)
	assert.Equal(t, InconsistentIndent, perr.Kind)
}

func TestAnalyzeIndentationBlankLinesFoldLeadingWhitespace(t *testing.T) {
	// The second blank line has trailing spaces before its newline; it
	// must still aggregate as a blank run with the bare blank line before
	// it, rather than breaking adjacency at L3.
	toks, perr := lexThroughL2(t, "a\n\n    \nb\n")
	require.Nil(t, perr)

	l3 := AggregateBlankLines(toks)
	found := false
	for _, tok := range l3 {
		if tok.Type == BlankLine {
			found = true
		}
	}
	assert.True(t, found, "two blank lines (one with leading whitespace) must aggregate into a BlankLine")
}
