package txxt

// Stage names the staged-parse debugging API's checkpoints, each one the
// output of a named pipeline step.
type Stage int

const (
	RawTokens Stage = iota
	AfterWhitespace
	AfterIndentation
	AfterBlankLines
	LineTokens
	TokenTree
)

// ParseDocument runs the full pipeline: L0 lex, L1 whitespace
// normalization, L2 indentation analysis, L3 blank-line aggregation, L4
// line classification, L5 tree building, the Block Parser, and finally
// the Inline & Annotation Attachment post-pass. A source with no trailing
// newline gets one appended first, matching every stage's assumption that
// logical lines end in a Newline token.
//
// An empty source is not an error: it parses to a Document with no
// children and a nil *ParseError. A source of only blank lines is not
// trimmed; it parses to a Document holding a BlankLineGroup. InconsistentIndent,
// UnterminatedVerbatim, and MalformedAnnotation are fatal and returned
// immediately; Unmatched is only reported if, after the whole tree is
// walked, some line was never assigned to any node.
func ParseDocument(source string) (*Document, *ParseError) {
	raw := []byte(source)
	if len(raw) == 0 {
		return &Document{}, nil
	}
	if raw[len(raw)-1] != '\n' {
		raw = append(raw, '\n')
	}

	idx := NewSourceIndex(raw)

	tokens := Lex0(raw)
	tokens = NormalizeWhitespace(tokens)
	tokens, perr := AnalyzeIndentation(tokens, idx)
	if perr != nil {
		Log.Errorw("parse failed", "kind", perr.Kind.String(), "offset", perr.Offset)
		return nil, perr
	}
	tokens = AggregateBlankLines(tokens)
	lines := ClassifyLines(tokens)
	root := BuildTree(lines)

	ps := &parserState{source: raw, idx: idx, unmatchedOffset: -1}
	children := ps.ParseBlocks(root.Children)
	if ps.fatal != nil {
		Log.Errorw("parse failed", "kind", ps.fatal.Kind.String(), "offset", ps.fatal.Offset)
		return nil, ps.fatal
	}
	if ps.unmatchedOffset >= 0 {
		Log.Warnw("unmatched grammar at first offset", "offset", ps.unmatchedOffset)
		return nil, newParseError(Unmatched, idx, ps.unmatchedOffset, "no grammar pattern matched at this position")
	}

	doc := &Document{Children: children, Rng: BoundingBox(nodeRanges(children)...)}
	AttachAnnotations(doc)
	ScanDocumentInlineSpans(doc)
	return doc, nil
}

func nodeRanges(nodes []Node) []Range {
	out := make([]Range, len(nodes))
	for i, n := range nodes {
		out[i] = n.Range()
	}
	return out
}

// LexStage runs the pipeline only up to the named stage and returns its
// output, for tests and tooling that want to inspect one stage in
// isolation rather than the final AST. The concrete type returned depends
// on stage: RawTokens, AfterWhitespace, AfterIndentation, and
// AfterBlankLines return []Token; LineTokens returns []LineToken; TokenTree
// returns *LineContainer. Callers that know which stage they asked for can
// assert directly:
//
//	lines := LexStage(src, LineTokens).([]LineToken)
//
// A fatal indentation error below the requested stage yields a nil result.
func LexStage(source string, stage Stage) any {
	raw := []byte(source)
	if len(raw) > 0 && raw[len(raw)-1] != '\n' {
		raw = append(raw, '\n')
	}
	idx := NewSourceIndex(raw)

	tokens := Lex0(raw)
	if stage == RawTokens {
		return tokens
	}
	tokens = NormalizeWhitespace(tokens)
	if stage == AfterWhitespace {
		return tokens
	}
	tokens, perr := AnalyzeIndentation(tokens, idx)
	if perr != nil {
		return nil
	}
	if stage == AfterIndentation {
		return tokens
	}
	tokens = AggregateBlankLines(tokens)
	if stage == AfterBlankLines {
		return tokens
	}
	lineToks := ClassifyLines(tokens)
	if stage == LineTokens {
		return lineToks
	}
	return BuildTree(lineToks)
}

// FindNodesAtPosition returns every node along the root-to-leaf path whose
// Range contains pos, deepest first.
func FindNodesAtPosition(doc *Document, pos Position) []Node {
	var path []Node
	var walk func(n Node)
	walk = func(n Node) {
		if !n.Range().ContainsPosition(pos) {
			return
		}
		path = append(path, n)
		for _, c := range n.NodeChildren() {
			walk(c)
		}
	}
	for _, c := range doc.Children {
		walk(c)
	}
	// deepest first
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// ElementAt returns the innermost node containing pos, or nil if none does.
func ElementAt(doc *Document, pos Position) Node {
	nodes := FindNodesAtPosition(doc, pos)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}
