package txxt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLex0Primitives(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []TokType
	}{
		{"empty", "", nil},
		{"word", "hello\n", []TokType{Text, Newline}},
		{"marker", ":: note ::\n", []TokType{LexMarker, Whitespace, Text, Whitespace, LexMarker, Newline}},
		{"list dash", "- a\n", []TokType{Dash, Whitespace, Text, Newline}},
		{"numbered", "1. Intro\n", []TokType{Number, Period, Whitespace, Text, Newline}},
		{"indent", "    body\n", []TokType{Indentation, Text, Newline}},
		{"sigils", "(a), \"x\"=1:\n", []TokType{OpenParen, Text, CloseParen, Comma, Whitespace, Quote, Text, Quote, Equals, Number, Colon, Newline}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := Lex0([]byte(tt.src))
			var got []TokType
			for _, tok := range toks {
				got = append(got, tok.Type)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLex0Spans(t *testing.T) {
	toks := Lex0([]byte("ab\n"))
	assert.Equal(t, Span{0, 2}, toks[0].Span)
	assert.Equal(t, "ab", toks[0].Text)
	assert.Equal(t, Span{2, 3}, toks[1].Span)
}

func TestUnrollToL0LosslessRoundtrip(t *testing.T) {
	src := "1. Intro\n\n    Body.\n"
	l0 := Lex0([]byte(src))

	idx := NewSourceIndex([]byte(src))
	l1 := NormalizeWhitespace(l0)
	l2, perr := AnalyzeIndentation(l1, idx)
	if !assert.Nil(t, perr) {
		return
	}
	l3 := AggregateBlankLines(l2)

	unrolled := UnrollToL0(l3)
	assert.Equal(t, l0, unrolled, "unrolling every later stage must reproduce the exact L0 stream")
}

func TestUnrollToL0LosslessRoundtripWithDedent(t *testing.T) {
	// Ends back at the top indentation level, so AnalyzeIndentation emits
	// a Dedent token. A Dedent carries no source bytes of its own; it
	// must vanish on unroll rather than surface as a spurious extra token.
	src := "a\n    b\nc\n"
	l0 := Lex0([]byte(src))

	idx := NewSourceIndex([]byte(src))
	l1 := NormalizeWhitespace(l0)
	l2, perr := AnalyzeIndentation(l1, idx)
	if !assert.Nil(t, perr) {
		return
	}
	l3 := AggregateBlankLines(l2)

	unrolled := UnrollToL0(l3)
	assert.Equal(t, l0, unrolled, "a Dedent token must not survive unrolling")
}
