package txxt

// NormalizeWhitespace is L1: it removes or merges whitespace remainders
// that carry no structural meaning. Intra-line Whitespace runs are already
// single tokens out of Lex0 (longest-match), so the only work left here is
// folding a trailing Whitespace token into the Newline that ends its line,
// so the newline's Absorbed records the whitespace was there without a
// free-standing token surviving into L2. Every other token passes through
// unchanged, with Absorbed set to itself so later stages can unroll
// uniformly. L1 never fails; it only transforms.
func NormalizeWhitespace(tokens []Token) []Token {
	var out []Token
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if t.Type == Whitespace && i+1 < len(tokens) && tokens[i+1].Type == Newline {
			nl := tokens[i+1]
			out = append(out, Token{
				Type:     Newline,
				Span:     nl.Span,
				Absorbed: []Token{t, nl},
			})
			i += 2
			continue
		}
		out = append(out, Token{Type: t.Type, Span: t.Span, Text: t.Text, Absorbed: []Token{t}})
		i++
	}
	return out
}
