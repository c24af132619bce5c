package txxt

import "github.com/alecthomas/chroma/v2/lexers"

// detectChromaLanguage normalizes a verbatim block's declared language
// label against chroma's lexer registry, the same two-step lookup the
// teacher's example-rendering code performs: try an exact lexer match on
// the label first, and only fall back to content analysis when the label
// is missing or unrecognized. The result is chroma's canonical lexer name,
// suitable for round-tripping through a future serializer, or the label
// unchanged when neither lookup finds a lexer.
func detectChromaLanguage(label, content string) string {
	if label != "" {
		if lex := lexers.Get(label); lex != nil {
			return lex.Config().Name
		}
	}
	if content != "" {
		if lex := lexers.Analyse(content); lex != nil {
			return lex.Config().Name
		}
	}
	return label
}
