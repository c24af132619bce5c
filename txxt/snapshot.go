package txxt

// NodeSnapshot is the JSON-friendly projection of one AST node used by
// snapshot tests and any caller that wants a stable, serializable view
// of a parse result instead of walking the live Node interface.
type NodeSnapshot struct {
	Type     string         `json:"type"`
	Label    string         `json:"label,omitempty"`
	Span     [2]int         `json:"span"`
	Text     string         `json:"text,omitempty"`
	Params   []ParamSnap    `json:"params,omitempty"`
	Children []NodeSnapshot `json:"children,omitempty"`
	Anns     []NodeSnapshot `json:"annotations,omitempty"`
}

// ParamSnap is a snapshot's JSON projection of one annotation Param.
type ParamSnap struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Snapshot projects a full parse result (the Document plus its
// document-level annotations) into a stable NodeSnapshot tree.
func Snapshot(doc *Document) NodeSnapshot {
	return NodeSnapshot{
		Type:     "Document",
		Span:     doc.Rng.Span,
		Children: snapshotNodes(doc.Children),
		Anns:     snapshotNodes(annsToNodes(doc.Anns)),
	}
}

func snapshotNodes(nodes []Node) []NodeSnapshot {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]NodeSnapshot, len(nodes))
	for i, n := range nodes {
		out[i] = snapshotNode(n)
	}
	return out
}

func snapshotNode(n Node) NodeSnapshot {
	snap := NodeSnapshot{
		Type:     n.NodeType(),
		Label:    n.DisplayLabel(),
		Span:     n.Range().Span,
		Children: snapshotNodes(n.NodeChildren()),
	}
	switch v := n.(type) {
	case *TextLine:
		snap.Text = v.Text
	case *VerbatimLine:
		snap.Text = v.Text
	case *Annotation:
		snap.Params = paramSnaps(v.Params)
	}
	if at, ok := n.(Annotatable); ok {
		snap.Anns = snapshotNodes(annsToNodes(at.Annotations()))
	}
	return snap
}

func paramSnaps(params []Param) []ParamSnap {
	if len(params) == 0 {
		return nil
	}
	out := make([]ParamSnap, len(params))
	for i, p := range params {
		out[i] = ParamSnap{Key: p.Key, Value: p.Value}
	}
	return out
}

func annsToNodes(anns []*Annotation) []Node {
	if len(anns) == 0 {
		return nil
	}
	out := make([]Node, len(anns))
	for i, a := range anns {
		out[i] = a
	}
	return out
}

// NodePath identifies a node by its sequence of child indices from the
// Document root, following NodeChildren() at each step.
type NodePath []int

// NodeAt resolves a NodePath against doc, walking NodeChildren() from the
// (synthetic) root. An empty path resolves to the Document itself.
func (doc *Document) NodeAt(path NodePath) (Node, bool) {
	var cur Node = doc
	for _, idx := range path {
		children := cur.NodeChildren()
		if idx < 0 || idx >= len(children) {
			return nil, false
		}
		cur = children[idx]
	}
	return cur, true
}
