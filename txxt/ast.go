package txxt

// Node is the capability set every AST variant implements: a node-type
// name, a display label, its Range, and its children. Content item
// dispatch in this module leans on this interface rather than a tagged
// switch, matching the "polymorphic operations as a capability set"
// framing of the variant design.
type Node interface {
	NodeType() string
	Range() Range
	DisplayLabel() string
	NodeChildren() []Node
}

// Annotatable is implemented by every node kind that can carry attached
// annotations: Paragraph, Session, List, ListItem, Definition,
// VerbatimBlock, and Document.
type Annotatable interface {
	Annotations() []*Annotation
	AddAnnotation(a *Annotation)
}

// InlineSpanKind is the closed set of inline span kinds the attachment
// post-pass recognizes inside TextLine text.
type InlineSpanKind int

const (
	SpanStrong InlineSpanKind = iota
	SpanEmphasis
	SpanCode
	SpanMath
	SpanReference
	SpanFootnote
	SpanCitation
	SpanLink
)

func (k InlineSpanKind) String() string {
	switch k {
	case SpanStrong:
		return "Strong"
	case SpanEmphasis:
		return "Emphasis"
	case SpanCode:
		return "Code"
	case SpanMath:
		return "Math"
	case SpanReference:
		return "Reference"
	case SpanFootnote:
		return "Footnote"
	case SpanCitation:
		return "Citation"
	case SpanLink:
		return "Link"
	default:
		return "Unknown"
	}
}

// InlineSpan is one recognized run inside a TextLine's text, given as a
// byte range local to that line's text string (not the document).
type InlineSpan struct {
	Kind  InlineSpanKind
	Start int
	End   int
}

// Label is a single identifier-like value (an annotation's header label,
// a verbatim block's closing language) together with its source range.
type Label struct {
	Value string
	Rng   Range
}

// Param is one key=value annotation parameter, in source order.
type Param struct {
	Key   string
	Value string
	Rng   Range
}

// Document is the parse result: the top-level content sequence plus any
// annotations lifted to document level by the attachment post-pass.
type Document struct {
	Rng      Range
	Children []Node
	Anns     []*Annotation
}

func (d *Document) NodeType() string          { return "Document" }
func (d *Document) Range() Range              { return d.Rng }
func (d *Document) DisplayLabel() string      { return "" }
func (d *Document) NodeChildren() []Node      { return d.Children }
func (d *Document) Annotations() []*Annotation { return d.Anns }
func (d *Document) AddAnnotation(a *Annotation) { d.Anns = append(d.Anns, a) }

// Paragraph owns a nonempty sequence of TextLines.
type Paragraph struct {
	Rng   Range
	Lines []*TextLine
	Anns  []*Annotation
}

func (p *Paragraph) NodeType() string     { return "Paragraph" }
func (p *Paragraph) Range() Range         { return p.Rng }
func (p *Paragraph) DisplayLabel() string { return "" }
func (p *Paragraph) NodeChildren() []Node {
	out := make([]Node, len(p.Lines))
	for i, l := range p.Lines {
		out[i] = l
	}
	return out
}
func (p *Paragraph) Annotations() []*Annotation  { return p.Anns }
func (p *Paragraph) AddAnnotation(a *Annotation) { p.Anns = append(p.Anns, a) }

// TextLine is one line of paragraph prose, plus the inline spans the
// post-pass scanned out of its text.
type TextLine struct {
	Rng   Range
	Text  string
	Spans []InlineSpan
}

func (t *TextLine) NodeType() string     { return "TextLine" }
func (t *TextLine) Range() Range         { return t.Rng }
func (t *TextLine) DisplayLabel() string { return t.Text }
func (t *TextLine) NodeChildren() []Node { return nil }

// Session is a titled, blank-line-separated hierarchical section.
type Session struct {
	Rng      Range
	Title    string
	Children []Node
	Anns     []*Annotation
}

func (s *Session) NodeType() string     { return "Session" }
func (s *Session) Range() Range         { return s.Rng }
func (s *Session) DisplayLabel() string { return s.Title }
func (s *Session) NodeChildren() []Node { return s.Children }
func (s *Session) Annotations() []*Annotation  { return s.Anns }
func (s *Session) AddAnnotation(a *Annotation) { s.Anns = append(s.Anns, a) }

// Definition is a subject-terminated header immediately followed by an
// indented body, with no intervening blank line.
type Definition struct {
	Rng      Range
	Subject  string
	Children []Node
	Anns     []*Annotation
}

func (d *Definition) NodeType() string     { return "Definition" }
func (d *Definition) Range() Range         { return d.Rng }
func (d *Definition) DisplayLabel() string { return d.Subject }
func (d *Definition) NodeChildren() []Node { return d.Children }
func (d *Definition) Annotations() []*Annotation  { return d.Anns }
func (d *Definition) AddAnnotation(a *Annotation) { d.Anns = append(d.Anns, a) }

// List normalizes its marker_type from the first item's decoration, even
// when later items use differently-styled source markers.
type List struct {
	Rng        Range
	MarkerType MarkerType
	Items      []*ListItem
	Anns       []*Annotation
}

func (l *List) NodeType() string     { return "List" }
func (l *List) Range() Range         { return l.Rng }
func (l *List) DisplayLabel() string { return "" }
func (l *List) NodeChildren() []Node {
	out := make([]Node, len(l.Items))
	for i, it := range l.Items {
		out[i] = it
	}
	return out
}
func (l *List) Annotations() []*Annotation  { return l.Anns }
func (l *List) AddAnnotation(a *Annotation) { l.Anns = append(l.Anns, a) }

// ListItem keeps its original source marker text even when it doesn't
// match the owning List's normalized style.
type ListItem struct {
	Rng        Range
	Marker     string
	MarkerType MarkerType
	Children   []Node
	Anns       []*Annotation
}

func (li *ListItem) NodeType() string     { return "ListItem" }
func (li *ListItem) Range() Range         { return li.Rng }
func (li *ListItem) DisplayLabel() string { return li.Marker }
func (li *ListItem) NodeChildren() []Node { return li.Children }
func (li *ListItem) Annotations() []*Annotation  { return li.Anns }
func (li *ListItem) AddAnnotation(a *Annotation) { li.Anns = append(li.Anns, a) }

// Annotation is a ":: label [params] [::]" marker, either still floating
// as a content item or already attached as metadata on its target node.
type Annotation struct {
	Rng           Range
	Data          Label
	Params        []Param
	HasTerminator bool
	Content       []Node
}

func (a *Annotation) NodeType() string     { return "Annotation" }
func (a *Annotation) Range() Range         { return a.Rng }
func (a *Annotation) DisplayLabel() string { return a.Data.Value }
func (a *Annotation) NodeChildren() []Node { return a.Content }

// VerbatimGroup is one subject+body pair inside a VerbatimBlock; several
// groups can share one closing annotation.
type VerbatimGroup struct {
	Subject    string
	SubjectRng Range
	Lines      []*VerbatimLine
}

// VerbatimBlock's content is preserved byte-for-byte; its closing
// annotation is always present (its label may be empty, but its location
// is defined).
type VerbatimBlock struct {
	Rng                  Range
	Groups               []VerbatimGroup
	ClosingLabel         Label
	ClosingParams        []Param
	ClosingHasTerminator bool
	Anns                 []*Annotation
}

func (v *VerbatimBlock) NodeType() string     { return "VerbatimBlock" }
func (v *VerbatimBlock) Range() Range         { return v.Rng }
func (v *VerbatimBlock) DisplayLabel() string { return v.ClosingLabel.Value }
func (v *VerbatimBlock) NodeChildren() []Node {
	var out []Node
	for _, g := range v.Groups {
		for _, l := range g.Lines {
			out = append(out, l)
		}
	}
	return out
}
func (v *VerbatimBlock) Annotations() []*Annotation  { return v.Anns }
func (v *VerbatimBlock) AddAnnotation(a *Annotation) { v.Anns = append(v.Anns, a) }

// DetectLanguage normalizes the verbatim block's closing language label
// against chroma's lexer registry, returning the canonical lexer name
// chroma would pick for that label (or for the block's own content, when
// the label is empty or chroma doesn't recognize it outright).
func (v *VerbatimBlock) DetectLanguage() string {
	return detectChromaLanguage(v.ClosingLabel.Value, v.contentSample())
}

func (v *VerbatimBlock) contentSample() string {
	var sample []string
	for _, g := range v.Groups {
		for _, l := range g.Lines {
			sample = append(sample, l.Text)
		}
	}
	return joinLines(sample)
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

// VerbatimLine holds one line of verbatim content, exactly as it appeared
// in the source, internal whitespace preserved.
type VerbatimLine struct {
	Rng  Range
	Text string
}

func (v *VerbatimLine) NodeType() string     { return "VerbatimLine" }
func (v *VerbatimLine) Range() Range         { return v.Rng }
func (v *VerbatimLine) DisplayLabel() string { return v.Text }
func (v *VerbatimLine) NodeChildren() []Node { return nil }

// BlankLineGroup is a run of blank lines left as a content item; the
// attachment pass never attaches to it but counts it as one unit of
// distance, and otherwise it appears in the tree like any other child.
type BlankLineGroup struct {
	Rng   Range
	Count int
}

func (b *BlankLineGroup) NodeType() string     { return "BlankLineGroup" }
func (b *BlankLineGroup) Range() Range         { return b.Rng }
func (b *BlankLineGroup) DisplayLabel() string { return "" }
func (b *BlankLineGroup) NodeChildren() []Node { return nil }
