package txxt

import "regexp"

// inlineSpanRe recognizes the closed set of inline spans in priority
// order (strong before emphasis so "**x**" isn't read as two emphasis
// runs), tried left to right; FindAllStringIndex gives non-overlapping,
// leftmost-first matches (at a given start, the earliest alternative
// above wins), so the spans are disjoint and non-nesting.
var inlineSpanRe = regexp.MustCompile(
	`\*\*[^*\n]+\*\*` + `|` +
		`\*[^*\n]+\*` + `|` +
		"`[^`\n]+`" + `|` +
		`\$[^$\n]+\$` + `|` +
		`\[\^[A-Za-z0-9_]+\]` + `|` +
		`\[@[^\]\n]+\]` + `|` +
		`\[[^\]\n]+\]`,
)

var linkLikeRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://|[./]`)

// ScanInlineSpans scans one TextLine's text for the closed set of inline
// spans and returns them sorted by start position.
func ScanInlineSpans(text string) []InlineSpan {
	matches := inlineSpanRe.FindAllStringIndex(text, -1)
	if matches == nil {
		return nil
	}
	spans := make([]InlineSpan, 0, len(matches))
	for _, m := range matches {
		raw := text[m[0]:m[1]]
		spans = append(spans, InlineSpan{Kind: classifyInlineSpan(raw), Start: m[0], End: m[1]})
	}
	return spans
}

func classifyInlineSpan(raw string) InlineSpanKind {
	switch {
	case len(raw) >= 4 && raw[:2] == "**" && raw[len(raw)-2:] == "**":
		return SpanStrong
	case raw[0] == '*':
		return SpanEmphasis
	case raw[0] == '`':
		return SpanCode
	case raw[0] == '$':
		return SpanMath
	case len(raw) >= 3 && raw[1] == '^':
		return SpanFootnote
	case len(raw) >= 3 && raw[1] == '@':
		return SpanCitation
	case raw[0] == '[':
		inner := raw[1 : len(raw)-1]
		if linkLikeRe.MatchString(inner) {
			return SpanLink
		}
		return SpanReference
	default:
		return SpanReference
	}
}

// AttachAnnotations is the second post-pass: it moves Annotation content
// items onto neighboring element nodes (or lifts them to the Document),
// then recurses into every container-shaped node. An Annotation's own
// Content is never recursed into: a detached container does not accept
// further attachments.
func AttachAnnotations(doc *Document) {
	doc.Children = attachAnnotationsIn(doc.Children, doc, true)
	recurseAttach(doc.Children)
}

func recurseAttach(nodes []Node) {
	for _, n := range nodes {
		switch v := n.(type) {
		case *Session:
			v.Children = attachAnnotationsIn(v.Children, v, false)
			recurseAttach(v.Children)
		case *Definition:
			v.Children = attachAnnotationsIn(v.Children, v, false)
			recurseAttach(v.Children)
		case *ListItem:
			v.Children = attachAnnotationsIn(v.Children, v, false)
			recurseAttach(v.Children)
		case *List:
			for _, it := range v.Items {
				it.Children = attachAnnotationsIn(it.Children, it, false)
				recurseAttach(it.Children)
			}
		}
	}
}

type attachEntry struct {
	node         Node
	isAnnotation bool
	isBlank      bool
}

// attachAnnotationsIn resolves every floating Annotation in one
// container's child list. owner is the Annotatable the "container itself"
// rule (and the document-lift rule, when isRoot) attaches to.
func attachAnnotationsIn(children []Node, owner Annotatable, isRoot bool) []Node {
	entries := make([]attachEntry, len(children))
	for i, n := range children {
		_, isAnn := n.(*Annotation)
		_, isBlank := n.(*BlankLineGroup)
		entries[i] = attachEntry{node: n, isAnnotation: isAnn, isBlank: isBlank}
	}

	attached := make([]bool, len(entries))

	for i, e := range entries {
		if !e.isAnnotation {
			continue
		}
		ann := e.node.(*Annotation)

		prevIdx, distPrev := findPrevContent(entries, i)
		nextIdx, distNext := findNextContent(entries, i)

		var target Node
		liftToDoc := false

		switch {
		case prevIdx < 0 && nextIdx < 0:
			if isRoot {
				liftToDoc = true
			}
		case prevIdx < 0:
			if isRoot && distNext >= 1 {
				liftToDoc = true
			} else {
				target = entries[nextIdx].node
			}
		case nextIdx < 0:
			distToEnd := countTrailingBlanks(entries, i)
			if distPrev < distToEnd {
				target = entries[prevIdx].node
			}
			// tie or container-closer: target stays nil, meaning "the
			// enclosing container", matching the tie-break ("next
			// wins") with the container standing in as "next".
		default:
			if distPrev < distNext {
				target = entries[prevIdx].node
			} else {
				target = entries[nextIdx].node
			}
		}

		if liftToDoc {
			owner.AddAnnotation(ann)
			attached[i] = true
			continue
		}
		if target == nil {
			owner.AddAnnotation(ann)
			attached[i] = true
			continue
		}
		if at, ok := target.(Annotatable); ok {
			at.AddAnnotation(ann)
			attached[i] = true
		}
	}

	var out []Node
	for i, e := range entries {
		if !attached[i] {
			out = append(out, e.node)
		}
	}
	return out
}

// findPrevContent walks backward from i, skipping blanks (counted as
// distance) and other annotations (not counted), stopping at the nearest
// real content sibling.
func findPrevContent(entries []attachEntry, i int) (idx, dist int) {
	for j := i - 1; j >= 0; j-- {
		if entries[j].isBlank {
			dist++
			continue
		}
		if entries[j].isAnnotation {
			continue
		}
		return j, dist
	}
	return -1, dist
}

func findNextContent(entries []attachEntry, i int) (idx, dist int) {
	for j := i + 1; j < len(entries); j++ {
		if entries[j].isBlank {
			dist++
			continue
		}
		if entries[j].isAnnotation {
			continue
		}
		return j, dist
	}
	return -1, dist
}

func countTrailingBlanks(entries []attachEntry, i int) int {
	dist := 0
	for j := i + 1; j < len(entries); j++ {
		if entries[j].isBlank {
			dist++
		}
	}
	return dist
}

// ScanDocumentInlineSpans runs the inline span scan over every TextLine
// reachable from doc, including ones inside annotations already lifted to
// Document/node metadata.
func ScanDocumentInlineSpans(doc *Document) {
	walkFull(doc, func(n Node) {
		if tl, ok := n.(*TextLine); ok {
			tl.Spans = ScanInlineSpans(tl.Text)
		}
	})
}

// walkFull visits n, its structural children, and (for any Annotatable)
// the content of every annotation attached to it.
func walkFull(n Node, visit func(Node)) {
	visit(n)
	for _, c := range n.NodeChildren() {
		walkFull(c, visit)
	}
	if an, ok := n.(Annotatable); ok {
		for _, a := range an.Annotations() {
			walkFull(a, visit)
		}
	}
}
