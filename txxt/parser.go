package txxt

import "strings"

// parserState threads the immutable inputs (source bytes, offset index)
// and the two pieces of mutable bookkeeping the Block Parser accumulates
// across the whole recursive descent: the first Unmatched position (later
// ones are dropped, per the propagation policy) and a fatal error that, if
// set, short-circuits all further work.
type parserState struct {
	source          []byte
	idx             *SourceIndex
	unmatchedOffset int // -1 until the first Unmatched position is seen
	fatal           *ParseError
}

// ParseBlocks is the Block Parser entry point for one container's
// children: it drives the grammar engine (and the imperative verbatim
// matcher) over the sibling sequence, builds AST nodes, and recurses into
// child containers via the grammar's own container-consuming patterns.
func (ps *parserState) ParseBlocks(children []*LineContainer) []Node {
	if ps.fatal != nil {
		return nil
	}
	tags := resolveAmbiguousTags(children)
	var nodes []Node
	cursor := 0
	for cursor < len(children) {
		if ps.fatal != nil {
			return nodes
		}
		if vb, consumed, ok := ps.tryVerbatim(children, tags, cursor); ok {
			nodes = append(nodes, vb)
			cursor += consumed
			continue
		}
		if ps.fatal != nil {
			return nodes
		}

		name, consumed, ok := matchGrammar(tags[cursor:])
		if !ok {
			if ps.unmatchedOffset < 0 {
				ps.unmatchedOffset = firstOffset(children[cursor])
			}
			cursor++
			continue
		}
		Log.Debugw("grammar match", "pattern", name, "cursor", cursor, "consumed", consumed)

		node := ps.buildNode(name, children, tags, cursor, consumed)
		if node != nil {
			nodes = append(nodes, node)
		}
		cursor += consumed
	}
	return nodes
}

// buildNode dispatches a successful grammar match to the right AST
// constructor, positionally inspecting children[cursor:cursor+consumed]
// rather than generic regex capture groups (the pattern shapes are fixed
// and known to each builder).
func (ps *parserState) buildNode(name string, children []*LineContainer, tags []tag, cursor, consumed int) Node {
	slice := children[cursor : cursor+consumed]
	tslice := tags[cursor : cursor+consumed]

	switch name {
	case "annotation_block_with_end":
		return ps.buildAnnotationBlock(slice, tslice, true)
	case "annotation_block":
		return ps.buildAnnotationBlock(slice, tslice, false)
	case "annotation_single":
		return ps.buildAnnotationSingle(slice[0])
	case "list_no_blank":
		return ps.buildList(slice, tslice)
	case "list":
		// drop the leading parent_blank marker; buildList wants only
		// the listitem/container run.
		return ps.buildList(slice[1:], tslice[1:])
	case "session":
		return ps.buildSession(slice, tslice)
	case "definition":
		return ps.buildDefinition(slice, tslice)
	case "paragraph":
		return ps.buildParagraph(slice)
	case "blank_line_group":
		return ps.buildBlankLineGroup(slice)
	case "parent_blank_only":
		// Pure context state (see Note, §4.6): never surfaces as a node.
		return nil
	default:
		return nil
	}
}

// --- Paragraph -------------------------------------------------------

func (ps *parserState) buildParagraph(slice []*LineContainer) Node {
	lines := make([]*TextLine, 0, len(slice))
	ranges := make([]Range, 0, len(slice))
	for _, c := range slice {
		text := c.Token.Text(ps.source)
		rng := ps.idx.RangeFromSpan(c.Token.FullSpan.Start, c.Token.FullSpan.End)
		lines = append(lines, &TextLine{Rng: rng, Text: text})
		ranges = append(ranges, rng)
	}
	return &Paragraph{Rng: BoundingBox(ranges...), Lines: lines}
}

// --- BlankLineGroup ---------------------------------------------------

func (ps *parserState) buildBlankLineGroup(slice []*LineContainer) Node {
	ranges := make([]Range, 0, len(slice))
	for _, c := range slice {
		ranges = append(ranges, ps.idx.RangeFromSpan(c.Token.FullSpan.Start, c.Token.FullSpan.End))
	}
	return &BlankLineGroup{Rng: BoundingBox(ranges...), Count: len(slice)}
}

// --- Definition / Session ---------------------------------------------

func subjectText(c *LineContainer, source []byte) string {
	raw := c.Token.Text(source)
	return strings.TrimRight(strings.TrimRight(raw, " \t"), ":")
}

func (ps *parserState) buildDefinition(slice []*LineContainer, tslice []tag) Node {
	subject := slice[0]
	body := slice[findTag(tslice, tagContainer)]
	children := ps.ParseBlocks(body.Children)
	subjRng := ps.idx.RangeFromSpan(subject.Token.FullSpan.Start, subject.Token.FullSpan.End)
	return &Definition{
		Rng:      boundingBoxOf(subjRng, children),
		Subject:  subjectText(subject, ps.source),
		Children: children,
	}
}

func (ps *parserState) buildSession(slice []*LineContainer, tslice []tag) Node {
	subjIdx := findTag(tslice, tagSubject)
	contIdx := findTag(tslice, tagContainer)
	subject := slice[subjIdx]
	body := slice[contIdx]
	children := ps.ParseBlocks(body.Children)
	subjRng := ps.idx.RangeFromSpan(subject.Token.FullSpan.Start, subject.Token.FullSpan.End)
	return &Session{
		Rng:      boundingBoxOf(subjRng, children),
		Title:    subjectText(subject, ps.source),
		Children: children,
	}
}

func findTag(tslice []tag, t tag) int {
	for i, x := range tslice {
		if x == t {
			return i
		}
	}
	return -1
}

func boundingBoxOf(head Range, children []Node) Range {
	ranges := []Range{head}
	for _, c := range children {
		ranges = append(ranges, c.Range())
	}
	return BoundingBox(ranges...)
}

// --- List / ListItem ---------------------------------------------------

func (ps *parserState) buildList(slice []*LineContainer, tslice []tag) Node {
	type rawItem struct {
		subject *LineContainer
		body    *LineContainer
	}
	var items []rawItem
	i := 0
	for i < len(slice) {
		if tslice[i] != tagListItem {
			i++
			continue
		}
		it := rawItem{subject: slice[i]}
		i++
		if i < len(tslice) && tslice[i] == tagContainer {
			it.body = slice[i]
			i++
		}
		items = append(items, it)
	}

	if len(items) < 2 {
		// Open Question #1: single-item lists are demoted to a
		// Paragraph built from the lone item's raw line text. The
		// cursor advances past the whole match, so a trailing body
		// container in it is not parsed; resolveAmbiguousTags tags a
		// lone marker line that has a body as subject, so ParseBlocks
		// does not hand that shape to this builder.
		if len(items) == 1 {
			c := items[0].subject
			rng := ps.idx.RangeFromSpan(c.Token.FullSpan.Start, c.Token.FullSpan.End)
			return &Paragraph{Rng: rng, Lines: []*TextLine{{Rng: rng, Text: c.Token.Text(ps.source)}}}
		}
		return nil
	}

	listItems := make([]*ListItem, 0, len(items))
	ranges := make([]Range, 0, len(items))
	style := MarkerUnknown
	for n, it := range items {
		var kids []Node
		hasBody := it.body != nil
		if hasBody {
			kids = ps.ParseBlocks(it.body.Children)
		}
		subjRng := ps.idx.RangeFromSpan(it.subject.Token.FullSpan.Start, it.subject.Token.FullSpan.End)
		itemRng := subjRng
		if len(kids) > 0 {
			itemRng = boundingBoxOf(subjRng, kids)
		}
		li := &ListItem{
			Rng:        itemRng,
			Marker:     it.subject.Token.Text(ps.source),
			MarkerType: it.subject.Token.MarkerStyle,
			Children:   kids,
		}
		if n == 0 {
			style = li.MarkerType
		}
		listItems = append(listItems, li)
		ranges = append(ranges, itemRng)
	}

	return &List{Rng: BoundingBox(ranges...), MarkerType: style, Items: listItems}
}

// --- Annotation ----------------------------------------------------------

func (ps *parserState) buildAnnotationSingle(c *LineContainer) Node {
	label, params, hasTerm, err := ps.parseAnnotationHeader(c.Token.Content)
	if err != nil {
		ps.fatal = err
		return nil
	}
	rng := ps.idx.RangeFromSpan(c.Token.FullSpan.Start, c.Token.FullSpan.End)
	return &Annotation{Rng: rng, Data: label, Params: params, HasTerminator: hasTerm}
}

func (ps *parserState) buildAnnotationBlock(slice []*LineContainer, tslice []tag, withEnd bool) Node {
	headerIdx := findTag(tslice, tagData)
	contIdx := findTag(tslice, tagContainer)
	header := slice[headerIdx]
	body := slice[contIdx]

	label, params, hasTerm, err := ps.parseAnnotationHeader(header.Token.Content)
	if err != nil {
		ps.fatal = err
		return nil
	}
	children := ps.ParseBlocks(body.Children)
	headerRng := ps.idx.RangeFromSpan(header.Token.FullSpan.Start, header.Token.FullSpan.End)

	if withEnd {
		hasTerm = true
	}

	return &Annotation{
		Rng:           boundingBoxOf(headerRng, children),
		Data:          label,
		Params:        params,
		HasTerminator: hasTerm,
		Content:       children,
	}
}

// parseAnnotationHeader parses a DataLine's content tokens
// (":: LABEL [KEY=VALUE ...] [::]") into a label, an ordered parameter
// list, and whether a trailing "::" terminator was present on the same
// line. Quoted values honor a backslash escape for an embedded '"'.
func (ps *parserState) parseAnnotationHeader(content []Token) (Label, []Param, bool, *ParseError) {
	i := 0
	if i >= len(content) || content[i].Type != LexMarker {
		return Label{}, nil, false, newParseError(MalformedAnnotation, ps.idx, firstContentOffset(content), "annotation header missing '::'")
	}
	i++
	i = skipWS(content, i)
	if i >= len(content) {
		// A bare "::" with nothing after it: used as a lone closing
		// terminator line. Treat as an empty label.
		return Label{}, nil, false, nil
	}
	if content[i].Type == LexMarker {
		return Label{}, nil, true, nil
	}
	if content[i].Type != Text && content[i].Type != Number {
		return Label{}, nil, false, newParseError(MalformedAnnotation, ps.idx, content[i].Span.Start, "annotation header missing label")
	}
	labelTok := content[i]
	label := Label{Value: string(ps.source[labelTok.Span.Start:labelTok.Span.End]), Rng: ps.idx.RangeFromSpan(labelTok.Span.Start, labelTok.Span.End)}
	i++

	var params []Param
	hasTerminator := false
	for i < len(content) {
		i = skipWS(content, i)
		if i >= len(content) {
			break
		}
		if content[i].Type == Comma {
			i++
			continue
		}
		if content[i].Type == LexMarker {
			hasTerminator = true
			i++
			continue
		}
		if content[i].Type != Text && content[i].Type != Number {
			return Label{}, nil, false, newParseError(MalformedAnnotation, ps.idx, content[i].Span.Start, "unexpected token in annotation parameters")
		}
		keyTok := content[i]
		keyStart := keyTok.Span.Start
		key := string(ps.source[keyTok.Span.Start:keyTok.Span.End])
		i++
		if i >= len(content) || content[i].Type != Equals {
			return Label{}, nil, false, newParseError(MalformedAnnotation, ps.idx, keyStart, "annotation parameter missing '='")
		}
		i++
		if i >= len(content) {
			return Label{}, nil, false, newParseError(MalformedAnnotation, ps.idx, keyStart, "annotation parameter missing value")
		}

		var value string
		valEnd := 0
		if content[i].Type == Quote {
			v, endOffset, ok := scanQuotedValue(ps.source, content[i].Span.End)
			if !ok {
				return Label{}, nil, false, newParseError(MalformedAnnotation, ps.idx, content[i].Span.Start, "unterminated quoted annotation value")
			}
			value = v
			valEnd = endOffset
			i++
			for i < len(content) && content[i].Span.Start < endOffset {
				i++
			}
		} else {
			valStart := content[i].Span.Start
			j := i
			for j < len(content) && content[j].Type != Whitespace && content[j].Type != Comma && content[j].Type != LexMarker {
				j++
			}
			if j == i {
				return Label{}, nil, false, newParseError(MalformedAnnotation, ps.idx, valStart, "annotation parameter missing value")
			}
			valEnd = content[j-1].Span.End
			value = string(ps.source[valStart:valEnd])
			i = j
		}
		params = append(params, Param{Key: key, Value: value, Rng: ps.idx.RangeFromSpan(keyStart, valEnd)})
	}

	return label, params, hasTerminator, nil
}

func scanQuotedValue(source []byte, start int) (string, int, bool) {
	var sb strings.Builder
	pos := start
	for pos < len(source) {
		b := source[pos]
		if b == '\\' && pos+1 < len(source) && source[pos+1] == '"' {
			sb.WriteByte('"')
			pos += 2
			continue
		}
		if b == '"' {
			return sb.String(), pos + 1, true
		}
		sb.WriteByte(b)
		pos++
	}
	return "", 0, false
}

func skipWS(content []Token, i int) int {
	for i < len(content) && content[i].Type == Whitespace {
		i++
	}
	return i
}

func firstContentOffset(content []Token) int {
	if len(content) == 0 {
		return 0
	}
	return content[0].Span.Start
}

// --- Verbatim matching (imperative) -------------------------------------

func (ps *parserState) tryVerbatim(children []*LineContainer, tags []tag, cursor int) (*VerbatimBlock, int, bool) {
	i := cursor
	for i < len(children) && (tags[i] == tagBlank || tags[i] == tagParentBlank) {
		i++
	}
	if i >= len(children) || tags[i] != tagSubject {
		return nil, 0, false
	}

	var groups []VerbatimGroup
	curSubjectIdx := i
	var pendingBody []*VerbatimLine
	committedFlat := false
	i++

	flush := func() {
		groups = append(groups, ps.buildVerbatimGroup(children[curSubjectIdx], pendingBody))
		pendingBody = nil
	}

	for {
		for i < len(children) && tags[i] == tagBlank {
			i++
		}
		if i >= len(children) {
			if committedFlat {
				flush()
				offset := firstOffset(children[cursor])
				ps.fatal = newParseError(UnterminatedVerbatim, ps.idx, offset, "verbatim block has no closing annotation")
			}
			return nil, 0, false
		}

		switch tags[i] {
		case tagContainer:
			pendingBody = append(pendingBody, ps.verbatimLinesFromContainer(children[i], children[i].Width)...)
			i++
			for i < len(children) && tags[i] == tagBlank {
				i++
			}
			if i < len(children) && tags[i] == tagData {
				flush()
				return ps.finishVerbatim(children, groups, cursor, i)
			}
			if i < len(children) && tags[i] == tagSubject {
				flush()
				curSubjectIdx = i
				i++
				continue
			}
			return nil, 0, false

		case tagData:
			flush()
			return ps.finishVerbatim(children, groups, cursor, i)

		case tagSubject:
			flush()
			curSubjectIdx = i
			i++
			continue

		default:
			committedFlat = true
			pendingBody = append(pendingBody, ps.verbatimLineFromFlatChild(children[i]))
			i++
			continue
		}
	}
}

func (ps *parserState) finishVerbatim(children []*LineContainer, groups []VerbatimGroup, cursor, closingIdx int) (*VerbatimBlock, int, bool) {
	closing := children[closingIdx]
	label, params, hasTerm, err := ps.parseAnnotationHeader(closing.Token.Content)
	if err != nil {
		ps.fatal = err
		return nil, 0, false
	}
	closingRng := ps.idx.RangeFromSpan(closing.Token.FullSpan.Start, closing.Token.FullSpan.End)
	ranges := []Range{closingRng}
	for _, g := range groups {
		ranges = append(ranges, g.SubjectRng)
		for _, l := range g.Lines {
			ranges = append(ranges, l.Rng)
		}
	}
	vb := &VerbatimBlock{
		Rng:                  BoundingBox(ranges...),
		Groups:               groups,
		ClosingLabel:         label,
		ClosingParams:        params,
		ClosingHasTerminator: hasTerm,
	}
	return vb, closingIdx + 1 - cursor, true
}

func (ps *parserState) buildVerbatimGroup(subjectContainer *LineContainer, lines []*VerbatimLine) VerbatimGroup {
	subjRng := ps.idx.RangeFromSpan(subjectContainer.Token.FullSpan.Start, subjectContainer.Token.FullSpan.End)
	return VerbatimGroup{
		Subject:    subjectText(subjectContainer, ps.source),
		SubjectRng: subjRng,
		Lines:      lines,
	}
}

// verbatimLinesFromContainer flattens a body container (and any nested
// containers inside it) into VerbatimLines, stripping exactly baseWidth —
// the verbatim group's own body container's established indentation width,
// held constant across recursion into deeper-nested sub-containers — so
// that any indentation beyond that width survives as literal content.
func (ps *parserState) verbatimLinesFromContainer(c *LineContainer, baseWidth int) []*VerbatimLine {
	var out []*VerbatimLine
	for _, child := range c.Children {
		if child.IsToken {
			out = append(out, ps.verbatimLineAt(child.Token, baseWidth, c.Width))
		} else {
			out = append(out, ps.verbatimLinesFromContainer(child, baseWidth)...)
		}
	}
	return out
}

// verbatimLineFromFlatChild handles "fullwidth" mode, where verbatim body
// lines sit flat (un-indented relative to the subject) rather than inside
// a child container.
func (ps *parserState) verbatimLineFromFlatChild(c *LineContainer) *VerbatimLine {
	if c.IsToken {
		return ps.verbatimLineAt(c.Token, 0, 0)
	}
	lines := ps.verbatimLinesFromContainer(c, c.Width)
	if len(lines) == 0 {
		return &VerbatimLine{}
	}
	return lines[0]
}

// verbatimLineAt recovers lt's text with exactly baseWidth bytes of
// indentation stripped from its true line start, accounting for the tree
// builder's asymmetry: the line that literally opened containerWidth (its
// enclosing container's established width) already had that many bytes of
// indentation absorbed into the container's own Indent marker, so
// lt.FullSpan starts containerWidth bytes after the true line start rather
// than at it; every later sibling at the same level keeps its Indentation
// token inline, so lt.FullSpan there already starts at the true line
// start. Either way the text kept is everything from baseWidth bytes past
// the true line start onward, so indentation beyond the verbatim body's
// own established width survives as literal content.
func (ps *parserState) verbatimLineAt(lt LineToken, baseWidth, containerWidth int) *VerbatimLine {
	start := lt.FullSpan.Start
	end := lt.FullSpan.End
	if len(lt.All) > 0 && lt.All[len(lt.All)-1].Type == Newline {
		end--
	}
	textStart := start + baseWidth
	if len(lt.Content) == 0 || lt.Content[0].Span.Start == start {
		textStart = start - (containerWidth - baseWidth)
	}
	if textStart > end {
		textStart = end
	}
	rng := ps.idx.RangeFromSpan(start, end)
	return &VerbatimLine{Rng: rng, Text: string(ps.source[textStart:end])}
}

// --- misc helpers --------------------------------------------------------

func firstOffset(c *LineContainer) int {
	if c.IsToken {
		return c.Token.FullSpan.Start
	}
	for _, child := range c.Children {
		if off := firstOffset(child); off >= 0 {
			return off
		}
	}
	return 0
}
