package txxt

// LineContainer is the recursive two-shape variant L5 builds: either a
// leaf wrapping one LineToken, or a container holding the sibling sequence
// at one indentation level.
type LineContainer struct {
	IsToken  bool
	Token    LineToken
	Children []*LineContainer
	Width    int // indentation width this container's lines are nested at (0 for root)
}

var parentBlankMarkerToken = LineToken{Type: LTParentBlankMarker}

// BuildTree is L5. It consumes the flat LineToken sequence produced by L4
// and drives an Indent/Dedent-shaped recursive descent into a
// LineContainer tree, injecting a zero-width ParentBlankMarker at the
// start of any child container whose parent-level predecessor was a
// BlankLine, and at the very start of the document if it doesn't already
// begin with one.
func BuildTree(lines []LineToken) *LineContainer {
	i := 0
	root := buildContainer(lines, &i, false)
	if len(root.Children) == 0 || !(root.Children[0].IsToken && root.Children[0].Token.Type == LTBlankLine) {
		root.Children = append([]*LineContainer{{IsToken: true, Token: parentBlankMarkerToken}}, root.Children...)
	}
	return root
}

func buildContainer(lines []LineToken, i *int, injectMarker bool) *LineContainer {
	c := &LineContainer{}
	if injectMarker {
		c.Children = append(c.Children, &LineContainer{IsToken: true, Token: parentBlankMarkerToken})
	}
	lastWasBlank := false
	for *i < len(lines) {
		lt := lines[*i]
		switch lt.Type {
		case LTDedent:
			*i++
			return c
		case LTIndent:
			*i++
			child := buildContainer(lines, i, lastWasBlank)
			child.Width = lt.Width
			c.Children = append(c.Children, child)
			lastWasBlank = false
		default:
			c.Children = append(c.Children, &LineContainer{IsToken: true, Token: lt})
			lastWasBlank = lt.Type == LTBlankLine
		}
	}
	return c
}
