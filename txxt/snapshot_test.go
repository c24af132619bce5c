package txxt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotProjectsParagraph(t *testing.T) {
	doc, perr := ParseDocument("Hello world\n")
	require.Nil(t, perr)

	snap := Snapshot(doc)
	assert.Equal(t, "Document", snap.Type)
	require.Len(t, snap.Children, 1)
	para := snap.Children[0]
	assert.Equal(t, "Paragraph", para.Type)
	require.Len(t, para.Children, 1)
	assert.Equal(t, "TextLine", para.Children[0].Type)
	assert.Equal(t, "Hello world", para.Children[0].Text)
}

func TestSnapshotProjectsVerbatimText(t *testing.T) {
	doc, perr := ParseDocument("Code:\n    x = 1\n:: python\n")
	require.Nil(t, perr)

	snap := Snapshot(doc)
	require.Len(t, snap.Children, 1)
	vb := snap.Children[0]
	assert.Equal(t, "VerbatimBlock", vb.Type)
	assert.Equal(t, "python", vb.Label)
	require.Len(t, vb.Children, 1)
	assert.Equal(t, "x = 1", vb.Children[0].Text)
}

func TestSnapshotProjectsDocumentLevelAnnotation(t *testing.T) {
	doc, perr := ParseDocument(":: note ::\n")
	require.Nil(t, perr)

	snap := Snapshot(doc)
	assert.Empty(t, snap.Children)
	require.Len(t, snap.Anns, 1)
	assert.Equal(t, "note", snap.Anns[0].Label)
}

func TestNodeAtResolvesPath(t *testing.T) {
	doc, perr := ParseDocument("Hello world\n")
	require.Nil(t, perr)

	root, ok := doc.NodeAt(NodePath{})
	require.True(t, ok)
	assert.Same(t, Node(doc), root)

	para, ok := doc.NodeAt(NodePath{0})
	require.True(t, ok)
	assert.Equal(t, "Paragraph", para.NodeType())

	_, ok = doc.NodeAt(NodePath{5})
	assert.False(t, ok)
}
