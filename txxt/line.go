package txxt

import "strings"

// LineType is the closed alphabet L4 tags every logical line with.
type LineType int

const (
	LTBlankLine LineType = iota
	LTDataLine
	LTSubjectLine
	LTSubjectOrListItemLine
	LTParagraphLine
	LTIndent
	LTDedent
	LTParentBlankMarker
)

func (lt LineType) String() string {
	switch lt {
	case LTBlankLine:
		return "BlankLine"
	case LTDataLine:
		return "DataLine"
	case LTSubjectLine:
		return "SubjectLine"
	case LTSubjectOrListItemLine:
		return "SubjectOrListItemLine"
	case LTParagraphLine:
		return "ParagraphLine"
	case LTIndent:
		return "Indent"
	case LTDedent:
		return "Dedent"
	case LTParentBlankMarker:
		return "ParentBlankMarker"
	default:
		return "Unknown"
	}
}

// MarkerType is the normalized decoration style of a list marker.
type MarkerType int

const (
	MarkerUnknown MarkerType = iota
	MarkerBullet
	MarkerNumeric
	MarkerAlphaLower
	MarkerAlphaUpper
	MarkerRomanLower
	MarkerRomanUpper
)

func (m MarkerType) String() string {
	switch m {
	case MarkerBullet:
		return "Bullet"
	case MarkerNumeric:
		return "Numeric"
	case MarkerAlphaLower:
		return "AlphaLower"
	case MarkerAlphaUpper:
		return "AlphaUpper"
	case MarkerRomanLower:
		return "RomanLower"
	case MarkerRomanUpper:
		return "RomanUpper"
	default:
		return "Unknown"
	}
}

// LineToken is one logical source line: its line-type tag plus the
// absorbed tokens that make it up (for unrolling) and the "content"
// sub-slice (tokens with leading indentation/whitespace and the
// terminating newline stripped) used for classification and text
// extraction.
type LineToken struct {
	Type     LineType
	All      []Token // every token absorbed by this line, in order
	Content  []Token // All minus leading Indentation/Whitespace and trailing Newline/BlankLine
	FullSpan Span
	// HasListMarker and MarkerStyle are filled in during classification
	// for any line whose content opens with a list-marker token
	// sequence; MarkerConsumed is how many Content tokens the marker
	// itself occupies.
	HasListMarker  bool
	MarkerStyle    MarkerType
	MarkerConsumed int
	Width          int // populated for Indent lines: the newly established indentation width
}

// Text renders a LineToken's content tokens back to a string, the same
// bytes that appeared in the source (sans leading indentation and
// trailing newline).
func (lt LineToken) Text(source []byte) string {
	if len(lt.Content) == 0 {
		return ""
	}
	start := lt.Content[0].Span.Start
	end := lt.Content[len(lt.Content)-1].Span.End
	return string(source[start:end])
}

// ClassifyLines is L4. It walks the L3 stream line by line (a "line" is
// everything up to and including a Newline, or a single Indent / Dedent /
// BlankLine aggregate token standing alone) and assigns each a LineType.
func ClassifyLines(tokens []Token) []LineToken {
	var out []LineToken
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		switch t.Type {
		case Indent:
			out = append(out, LineToken{Type: LTIndent, All: []Token{t}, FullSpan: t.Span, Width: t.Width})
			i++
			continue
		case Dedent:
			out = append(out, LineToken{Type: LTDedent, All: []Token{t}, FullSpan: t.Span})
			i++
			continue
		case BlankLine:
			sp := t.Span
			if unrolled := UnrollToL0(t.Absorbed); len(unrolled) > 0 {
				sp = Span{unrolled[0].Span.Start, unrolled[len(unrolled)-1].Span.End}
			}
			out = append(out, LineToken{Type: LTBlankLine, All: []Token{t}, FullSpan: sp})
			i++
			continue
		}

		j := i
		for j < len(tokens) && tokens[j].Type != Newline {
			j++
		}
		if j < len(tokens) {
			j++ // include the Newline
		}
		all := tokens[i:j]
		out = append(out, classifyContentLine(all))
		i = j
	}
	return out
}

func classifyContentLine(all []Token) LineToken {
	content := stripLineEnvelope(all)
	lt := LineToken{All: append([]Token{}, all...), Content: content, FullSpan: lineSpan(all)}

	if len(content) == 0 {
		lt.Type = LTBlankLine
		return lt
	}
	for _, t := range content {
		if t.Type == LexMarker {
			lt.Type = LTDataLine
			return lt
		}
	}

	consumed, style, ok := detectListMarker(content)
	endsColon := lineEndsWithColon(content)
	if ok {
		lt.HasListMarker = true
		lt.MarkerStyle = style
		lt.MarkerConsumed = consumed
		if endsColon {
			lt.Type = LTSubjectOrListItemLine
		} else {
			lt.Type = LTParagraphLine
		}
		return lt
	}
	if endsColon {
		lt.Type = LTSubjectLine
		return lt
	}
	lt.Type = LTParagraphLine
	return lt
}

// stripLineEnvelope trims a line's leading Indentation/Whitespace and its
// trailing Newline (and any absorbed whitespace folded into it).
func stripLineEnvelope(all []Token) []Token {
	start := 0
	for start < len(all) && (all[start].Type == Indentation || all[start].Type == Whitespace) {
		start++
	}
	end := len(all)
	for end > start && all[end-1].Type == Newline {
		end--
	}
	return all[start:end]
}

func lineSpan(all []Token) Span {
	if len(all) == 0 {
		return Span{}
	}
	return Span{all[0].Span.Start, all[len(all)-1].Span.End}
}

func lineEndsWithColon(content []Token) bool {
	end := len(content)
	for end > 0 && content[end-1].Type == Whitespace {
		end--
	}
	if end == 0 {
		return false
	}
	return content[end-1].Type == Colon
}

const romanLetters = "IVXLCDMivxlcdm"

func isRomanText(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !strings.ContainsRune(romanLetters, r) {
			return false
		}
	}
	return true
}

func isUpperRoman(text string) bool {
	return text == strings.ToUpper(text)
}

// detectListMarker inspects the start of content for a list marker token
// sequence: "Dash Whitespace", "(Number|Letter|Roman) (Period|CloseParen)
// Whitespace", optionally wrapped in a leading OpenParen/trailing
// CloseParen pair. Returns how many tokens the marker occupies and its
// decoded style.
func detectListMarker(content []Token) (consumed int, style MarkerType, ok bool) {
	if len(content) >= 2 && content[0].Type == Dash && content[1].Type == Whitespace {
		return 2, MarkerBullet, true
	}

	idx := 0
	wrapped := false
	if idx < len(content) && content[idx].Type == OpenParen {
		wrapped = true
		idx++
	}
	if idx >= len(content) {
		return 0, MarkerUnknown, false
	}

	markerTok := content[idx]
	var markerStyle MarkerType
	switch {
	case markerTok.Type == Number:
		markerStyle = MarkerNumeric
	case markerTok.Type == Text && isRomanText(markerTok.Text):
		if isUpperRoman(markerTok.Text) {
			markerStyle = MarkerRomanUpper
		} else {
			markerStyle = MarkerRomanLower
		}
	case markerTok.Type == Text && len([]rune(markerTok.Text)) == 1 && isAlpha(markerTok.Text):
		if isUpperRoman(markerTok.Text) {
			markerStyle = MarkerAlphaUpper
		} else {
			markerStyle = MarkerAlphaLower
		}
	default:
		return 0, MarkerUnknown, false
	}
	idx++

	if wrapped {
		if idx >= len(content) || content[idx].Type != CloseParen {
			return 0, MarkerUnknown, false
		}
		idx++
	} else {
		if idx >= len(content) || (content[idx].Type != Period && content[idx].Type != CloseParen) {
			return 0, MarkerUnknown, false
		}
		idx++
	}

	if idx >= len(content) || content[idx].Type != Whitespace {
		return 0, MarkerUnknown, false
	}
	idx++

	return idx, markerStyle, true
}

func isAlpha(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
