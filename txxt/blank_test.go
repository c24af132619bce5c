package txxt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countType(tokens []Token, typ TokType) int {
	n := 0
	for _, t := range tokens {
		if t.Type == typ {
			n++
		}
	}
	return n
}

func TestAggregateBlankLinesSingleNewlineUntouched(t *testing.T) {
	l1 := NormalizeWhitespace(Lex0([]byte("a\nb\n")))
	l2, perr := AnalyzeIndentation(l1, NewSourceIndex([]byte("a\nb\n")))
	require.Nil(t, perr)
	l3 := AggregateBlankLines(l2)
	assert.Equal(t, 0, countType(l3, BlankLine))
}

func TestAggregateBlankLinesFoldsRunIntoOneAggregate(t *testing.T) {
	src := "a\n\n\nb\n"
	l1 := NormalizeWhitespace(Lex0([]byte(src)))
	l2, perr := AnalyzeIndentation(l1, NewSourceIndex([]byte(src)))
	require.Nil(t, perr)
	l3 := AggregateBlankLines(l2)
	require.Equal(t, 1, countType(l3, BlankLine))

	var agg Token
	for _, tok := range l3 {
		if tok.Type == BlankLine {
			agg = tok
		}
	}
	// two extra newlines folded in (the run was 3 Newline tokens long,
	// the first stays as the ordinary line terminator).
	assert.Len(t, agg.Absorbed, 2)
}

func TestUnrollToL0RecoversBlankRun(t *testing.T) {
	src := "a\n\n\nb\n"
	raw := []byte(src)
	l0 := Lex0(raw)
	l1 := NormalizeWhitespace(l0)
	l2, perr := AnalyzeIndentation(l1, NewSourceIndex(raw))
	require.Nil(t, perr)
	l3 := AggregateBlankLines(l2)

	unrolled := UnrollToL0(l3)
	assert.Equal(t, l0, unrolled)
}
