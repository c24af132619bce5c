package txxt

import "regexp"

// tag names the grammar engine's fixed projection alphabet.
type tag string

const (
	tagBlank       tag = "blank"
	tagData        tag = "data"
	tagSubject     tag = "subject"
	tagListItem    tag = "listitem"
	tagParagraph   tag = "paragraph"
	tagParentBlank tag = "parent_blank"
	tagContainer   tag = "container"
)

// grammarPattern is one entry of the declarative catalog: a name, the
// regex it matches against a space-joined tag string (always anchored at
// the cursor with ^), tried in declaration order.
type grammarPattern struct {
	name string
	re   *regexp.Regexp
}

// Pattern catalog, in match order. verbatim_block is matched imperatively
// by the Block Parser (see tryVerbatim in parser.go) and never appears
// here.
var grammarCatalog = []grammarPattern{
	{"annotation_block_with_end", regexp.MustCompile(`^data(?:\s+blank)*\s+container(?:\s+blank)*\s+data\b`)},
	{"annotation_block", regexp.MustCompile(`^data(?:\s+blank)*\s+container\b`)},
	{"annotation_single", regexp.MustCompile(`^data\b`)},
	{"list_no_blank", regexp.MustCompile(`^(?:listitem(?:\s+container)?\s*)+`)},
	{"list", regexp.MustCompile(`^parent_blank\s+listitem(?:\s+container)?(?:\s+listitem(?:\s+container)?)+`)},
	{"session", regexp.MustCompile(`^parent_blank\s+subject(?:\s+blank)+\s+container\b`)},
	{"definition", regexp.MustCompile(`^subject\s+container\b`)},
	{"paragraph", regexp.MustCompile(`^paragraph(?:\s+paragraph)*`)},
	{"blank_line_group", regexp.MustCompile(`^blank(?:\s+blank)*`)},
	// parent_blank_only: a lone ParentBlankMarker not absorbed by a list
	// or session match (e.g. the marker synthesized at document start
	// ahead of ordinary prose). It is pure context state, never an AST
	// node; buildNode drops it.
	{"parent_blank_only", regexp.MustCompile(`^parent_blank\b`)},
}

// projectTag maps one LineContainer to its fixed grammar tag. Ordinary
// paragraph-classified lines are re-examined here for a leading list
// marker, since the closed LineType alphabet has no dedicated "list item"
// member: a line only earns SubjectOrListItemLine when it *also* ends with
// ':'; a plain "- a" line is ParagraphLine at L4 and becomes <listitem>
// only at this projection step.
func projectTag(c *LineContainer) tag {
	if !c.IsToken {
		return tagContainer
	}
	switch c.Token.Type {
	case LTBlankLine:
		return tagBlank
	case LTDataLine:
		return tagData
	case LTParentBlankMarker:
		return tagParentBlank
	case LTSubjectLine:
		return tagSubject
	case LTParagraphLine:
		if c.Token.HasListMarker {
			return tagListItem
		}
		return tagParagraph
	case LTSubjectOrListItemLine:
		// Provisional only: resolveAmbiguousTags overwrites this for
		// every HasListMarker line before tagString is built.
		return tagSubject
	default:
		return tagParagraph
	}
}

// tagString builds the space-joined tag sequence for a run of siblings,
// used both for regex matching and for diagnostic logging.
func tagString(tags []tag) string {
	s := ""
	for i, t := range tags {
		if i > 0 {
			s += " "
		}
		s += string(t)
	}
	return s
}

// resolveAmbiguousTags computes the grammar tag for every child of a
// container up front. The Line Classifier marks any line whose first
// tokens look like a list marker with HasListMarker, regardless of
// whether it also ends with ':' (that distinction is not load-bearing
// for the list/subject decision — see the Note at the end of the Line
// Classifier's rules: that determination is finalized here, not at L4).
//
// A marker line that runs alongside another marker line at the same
// level (Open Question #2) is a real list item. A marker line standing
// alone, with no sibling item before or after it, is ambiguous between
// "a list item whose body follows" and "a subject line introducing a
// definition or session body" — resolved in favor of subject whenever a
// container (directly, or after intervening blanks) follows, since the
// list grammar patterns would otherwise swallow that body into a
// demoted single-item Paragraph and silently drop it. A marker line with
// neither a sibling nor a following body is left as a bare list item and
// demoted to Paragraph by buildList.
func resolveAmbiguousTags(children []*LineContainer) []tag {
	tags := make([]tag, len(children))
	isMarker := make([]bool, len(children))
	for i, c := range children {
		tags[i] = projectTag(c)
		if c.IsToken && c.Token.HasListMarker {
			isMarker[i] = true
		}
	}
	for i := range children {
		if !isMarker[i] {
			continue
		}
		if precededByMarker(tags, isMarker, i) || followedByMarker(isMarker, tags, i+1) {
			tags[i] = tagListItem
			continue
		}
		if followedByContainer(tags, i+1) {
			tags[i] = tagSubject
			continue
		}
		tags[i] = tagListItem
	}
	return tags
}

// precededByMarker reports whether the marker line at i is immediately
// preceded by another marker line's own body container, or by another
// marker line directly.
func precededByMarker(tags []tag, isMarker []bool, i int) bool {
	if i == 0 {
		return false
	}
	if tags[i-1] == tagContainer {
		return i >= 2 && isMarker[i-2]
	}
	return isMarker[i-1]
}

// followedByMarker looks ahead from index j (skipping a single optional
// container, the would-be body of the preceding item) for another
// marker-bearing line at the same level.
func followedByMarker(isMarker []bool, tags []tag, j int) bool {
	if j < len(tags) && tags[j] == tagContainer {
		j++
	}
	return j < len(isMarker) && isMarker[j]
}

// followedByContainer reports whether a container follows at j, either
// directly (a definition-shaped body) or after one or more blank lines
// (a session-shaped body).
func followedByContainer(tags []tag, j int) bool {
	if j < len(tags) && tags[j] == tagContainer {
		return true
	}
	for j < len(tags) && tags[j] == tagBlank {
		j++
	}
	return j < len(tags) && tags[j] == tagContainer
}

// matchGrammar tries the catalog in order against tags[cursor:], returning
// the pattern name and how many tags it consumed.
func matchGrammar(tags []tag) (name string, consumed int, ok bool) {
	s := tagString(tags)
	for _, p := range grammarCatalog {
		loc := p.re.FindStringIndex(s)
		if loc == nil || loc[0] != 0 {
			continue
		}
		matched := s[:loc[1]]
		n := countTokens(matched)
		if n == 0 || n > len(tags) {
			continue
		}
		return p.name, n, true
	}
	return "", 0, false
}

func countTokens(s string) int {
	n := 0
	inTok := false
	for _, r := range s {
		if r == ' ' {
			inTok = false
			continue
		}
		if !inTok {
			n++
			inTok = true
		}
	}
	return n
}
