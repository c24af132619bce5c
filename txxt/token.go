package txxt

// TokType is the closed primitive token alphabet L0 classifies raw bytes
// into. Later stages extend it with aggregate kinds (Indent, Dedent,
// BlankLine, ParentBlankMarker) that never come out of the byte lexer
// itself.
type TokType int

const (
	LexMarker TokType = iota // "::"
	Indentation              // run of spaces/tabs at start of line
	Whitespace                // intra-line run of spaces/tabs
	Newline                   // "\n"
	Dash                      // "-"
	Period                    // "."
	OpenParen                 // "("
	CloseParen                // ")"
	Colon                     // ":"
	Comma                     // ","
	Quote                     // `"`
	Equals                    // "="
	Number                    // [0-9]+
	Text                      // maximal run of remaining non-sigil bytes

	// Aggregate kinds, introduced by L2/L3/L5. A Token of one of these
	// kinds carries its absorbed constituents in Absorbed; it never
	// comes directly out of Lex0.
	Indent
	Dedent
	BlankLine
	ParentBlankMarker
)

func (t TokType) String() string {
	switch t {
	case LexMarker:
		return "LexMarker"
	case Indentation:
		return "Indentation"
	case Whitespace:
		return "Whitespace"
	case Newline:
		return "Newline"
	case Dash:
		return "Dash"
	case Period:
		return "Period"
	case OpenParen:
		return "OpenParen"
	case CloseParen:
		return "CloseParen"
	case Colon:
		return "Colon"
	case Comma:
		return "Comma"
	case Quote:
		return "Quote"
	case Equals:
		return "Equals"
	case Number:
		return "Number"
	case Text:
		return "Text"
	case Indent:
		return "Indent"
	case Dedent:
		return "Dedent"
	case BlankLine:
		return "BlankLine"
	case ParentBlankMarker:
		return "ParentBlankMarker"
	default:
		return "Unknown"
	}
}

// Token is the single representation used for both L0 primitives and every
// later stage's aggregates, in the spirit of the teacher's single Token
// struct carrying optional fields per kind rather than a sum type per
// stage. A primitive token (straight out of Lex0) always has Absorbed ==
// nil; it IS the atom. Every token built by a later stage sets Absorbed to
// the exact sequence of earlier-stage tokens it replaces, so that
// UnrollToL0 can recover the original byte-exact stream by recursively
// flattening Absorbed down to the primitive leaves.
type Token struct {
	Type     TokType
	Span     Span
	Text     string // populated for Number and Text primitives
	Absorbed []Token
	Width    int // populated for Indent: the newly established indentation width
}

// Span is a half-open byte range [Start, End) into the source buffer.
type Span struct {
	Start, End int
}

func (s Span) Len() int { return s.End - s.Start }

func isSigilByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '-', '.', '(', ')', ':', ',', '"', '=':
		return true
	}
	return b >= '0' && b <= '9'
}

// Lex0 classifies source bytes into primitive tokens by longest-match
// rules. The caller is responsible for ensuring source ends with a
// trailing newline (ParseDocument and LexStage do this).
func Lex0(source []byte) []Token {
	var out []Token
	i := 0
	atLineStart := true
	n := len(source)

	for i < n {
		b := source[i]
		switch {
		case b == ':' && i+1 < n && source[i+1] == ':':
			out = append(out, Token{Type: LexMarker, Span: Span{i, i + 2}})
			i += 2
			atLineStart = false

		case b == ' ' || b == '\t':
			j := i
			for j < n && (source[j] == ' ' || source[j] == '\t') {
				j++
			}
			kind := Whitespace
			if atLineStart {
				kind = Indentation
			}
			out = append(out, Token{Type: kind, Span: Span{i, j}})
			i = j
			// atLineStart unchanged: indentation doesn't end line-start
			// status until non-whitespace content appears.

		case b == '\n':
			out = append(out, Token{Type: Newline, Span: Span{i, i + 1}})
			i++
			atLineStart = true

		case b == '-':
			out = append(out, Token{Type: Dash, Span: Span{i, i + 1}})
			i++
			atLineStart = false

		case b == '.':
			out = append(out, Token{Type: Period, Span: Span{i, i + 1}})
			i++
			atLineStart = false

		case b == '(':
			out = append(out, Token{Type: OpenParen, Span: Span{i, i + 1}})
			i++
			atLineStart = false

		case b == ')':
			out = append(out, Token{Type: CloseParen, Span: Span{i, i + 1}})
			i++
			atLineStart = false

		case b == ':':
			out = append(out, Token{Type: Colon, Span: Span{i, i + 1}})
			i++
			atLineStart = false

		case b == ',':
			out = append(out, Token{Type: Comma, Span: Span{i, i + 1}})
			i++
			atLineStart = false

		case b == '"':
			out = append(out, Token{Type: Quote, Span: Span{i, i + 1}})
			i++
			atLineStart = false

		case b == '=':
			out = append(out, Token{Type: Equals, Span: Span{i, i + 1}})
			i++
			atLineStart = false

		case b >= '0' && b <= '9':
			j := i
			for j < n && source[j] >= '0' && source[j] <= '9' {
				j++
			}
			out = append(out, Token{Type: Number, Span: Span{i, j}, Text: string(source[i:j])})
			i = j
			atLineStart = false

		default:
			j := i
			for j < n && !isSigilByte(source[j]) {
				j++
			}
			if j == i {
				// Shouldn't happen given isSigilByte covers every
				// branch above, but guard against infinite loops.
				j = i + 1
			}
			out = append(out, Token{Type: Text, Span: Span{i, j}, Text: string(source[i:j])})
			i = j
			atLineStart = false
		}
	}
	return out
}

// UnrollToL0 recursively flattens a stream of (possibly aggregate) tokens
// back down to the primitive L0 stream it was built from.
func UnrollToL0(tokens []Token) []Token {
	var out []Token
	for _, t := range tokens {
		if t.Absorbed == nil {
			out = append(out, t)
			continue
		}
		out = append(out, UnrollToL0(t.Absorbed)...)
	}
	return out
}
