package txxt

// AnalyzeIndentation is L2. It walks the L1 stream one logical line at a
// time, maintaining a stack of established indentation widths (in bytes,
// tabs counted raw — four-space equivalence and tab normalization are a
// host concern, not this stage's). Blank lines get no marker (any
// whitespace on them is folded into their Newline); every other line
// either matches the current level (no
// marker), opens one (Indent), or closes one or more (Dedent per level
// popped).
func AnalyzeIndentation(tokens []Token, idx *SourceIndex) ([]Token, *ParseError) {
	lines := splitIntoLines(tokens)
	stack := []int{0}
	var out []Token

	for _, line := range lines {
		if lineIsBlank(line) {
			// Fold any leading Indentation (blank lines carry no
			// structural indentation meaning) into the line's Newline
			// token, so a run of blank lines becomes a run of adjacent
			// Newline tokens for L3 to aggregate, regardless of
			// whether some of them have trailing whitespace.
			if len(line) == 1 {
				out = append(out, line...)
			} else {
				nl := line[len(line)-1]
				out = append(out, Token{
					Type:     Newline,
					Span:     nl.Span,
					Absorbed: append([]Token{}, line...),
				})
			}
			continue
		}

		width := 0
		indentTok := -1
		if len(line) > 0 && line[0].Type == Indentation {
			width = line[0].Span.Len()
			indentTok = 0
		}
		top := stack[len(stack)-1]

		switch {
		case width == top:
			out = append(out, line...)

		case width > top:
			stack = append(stack, width)
			Log.Debugw("indent push", "width", width, "offset", line[0].Span.Start)
			absorbed := []Token{}
			rest := line
			if indentTok == 0 {
				absorbed = []Token{line[0]}
				rest = line[1:]
			}
			startOffset := line[0].Span.Start
			out = append(out, Token{
				Type:     Indent,
				Span:     Span{startOffset, startOffset},
				Absorbed: absorbed,
				Width:    width,
			})
			out = append(out, rest...)

		default: // width < top
			startOffset := line[0].Span.Start
			for len(stack) > 0 && stack[len(stack)-1] > width {
				Log.Debugw("indent pop", "width", stack[len(stack)-1], "offset", startOffset)
				stack = stack[:len(stack)-1]
				out = append(out, Token{
					Type:     Dedent,
					Span:     Span{startOffset, startOffset},
					Absorbed: []Token{},
				})
			}
			if len(stack) == 0 || stack[len(stack)-1] != width {
				return nil, newParseError(InconsistentIndent, idx, startOffset, "dedent does not return to a known indentation level")
			}
			out = append(out, line...)
		}
	}
	return out, nil
}

// splitIntoLines groups a flat token stream into per-logical-line slices,
// each ending with (and including) its terminating Newline token, if any.
func splitIntoLines(tokens []Token) [][]Token {
	var lines [][]Token
	var cur []Token
	for _, t := range tokens {
		cur = append(cur, t)
		if t.Type == Newline {
			lines = append(lines, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// lineIsBlank reports whether a line (as produced by splitIntoLines) has no
// content besides leading indentation and its terminating newline.
func lineIsBlank(line []Token) bool {
	for _, t := range line {
		switch t.Type {
		case Indentation, Whitespace, Newline:
			continue
		default:
			return false
		}
	}
	return true
}
