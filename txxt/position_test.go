package txxt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceIndexResolve(t *testing.T) {
	src := []byte("abc\ndef\nghi")
	idx := NewSourceIndex(src)

	tests := []struct {
		name   string
		offset int
		want   Position
	}{
		{"start of first line", 0, Position{Line: 0, Column: 0}},
		{"mid first line", 2, Position{Line: 0, Column: 2}},
		{"start of second line", 4, Position{Line: 1, Column: 0}},
		{"mid third line", 9, Position{Line: 2, Column: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idx.Resolve(tt.offset))
		})
	}
}

func TestSourceIndexLineCountAndStart(t *testing.T) {
	idx := NewSourceIndex([]byte("a\nb\nc\n"))
	assert.Equal(t, 4, idx.LineCount())
	assert.Equal(t, 0, idx.LineStart(0))
	assert.Equal(t, 2, idx.LineStart(1))
	assert.Equal(t, -1, idx.LineStart(4))
}

func TestRangeContainsOffset(t *testing.T) {
	r := Range{Span: [2]int{5, 10}}
	assert.True(t, r.ContainsOffset(5))
	assert.True(t, r.ContainsOffset(9))
	assert.False(t, r.ContainsOffset(10))
	assert.False(t, r.ContainsOffset(4))
}

func TestRangeContains(t *testing.T) {
	outer := Range{Span: [2]int{0, 20}}
	inner := Range{Span: [2]int{5, 10}}
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
}

func TestRangeContainsPosition(t *testing.T) {
	r := Range{Start: Position{Line: 1, Column: 2}, End: Position{Line: 3, Column: 1}}
	assert.True(t, r.ContainsPosition(Position{Line: 2, Column: 0}))
	assert.True(t, r.ContainsPosition(Position{Line: 1, Column: 5}))
	assert.False(t, r.ContainsPosition(Position{Line: 1, Column: 1}))
	assert.True(t, r.ContainsPosition(Position{Line: 3, Column: 1}))
	assert.False(t, r.ContainsPosition(Position{Line: 3, Column: 2}))
	assert.False(t, r.ContainsPosition(Position{Line: 0, Column: 0}))
}

func TestBoundingBox(t *testing.T) {
	a := Range{Span: [2]int{3, 8}, Start: Position{Line: 0, Column: 3}, End: Position{Line: 0, Column: 8}}
	b := Range{Span: [2]int{1, 5}, Start: Position{Line: 0, Column: 1}, End: Position{Line: 0, Column: 5}}
	c := Range{Span: [2]int{6, 12}, Start: Position{Line: 0, Column: 6}, End: Position{Line: 0, Column: 12}}

	box := BoundingBox(a, b, c)
	assert.Equal(t, [2]int{1, 12}, box.Span)
	assert.Equal(t, Position{Line: 0, Column: 1}, box.Start)
	assert.Equal(t, Position{Line: 0, Column: 12}, box.End)
}
