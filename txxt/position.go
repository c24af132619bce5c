package txxt

import "sort"

// Position is a 0-indexed line/column pair. Column is a byte offset within
// the line, not a rune count.
type Position struct {
	Line   int
	Column int
}

func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Range is a half-open byte span together with its resolved line/column
// endpoints. Span is the authoritative extent; Start/End are a cached
// resolution of Span against a SourceIndex.
type Range struct {
	Span  [2]int
	Start Position
	End   Position
}

// Contains reports whether r fully encloses other.
func (r Range) Contains(other Range) bool {
	return r.Span[0] <= other.Span[0] && other.Span[1] <= r.Span[1]
}

// ContainsOffset reports whether the byte offset off falls within r.
func (r Range) ContainsOffset(off int) bool {
	return r.Span[0] <= off && off < r.Span[1]
}

// ContainsPosition reports whether pos falls within r's line/column extent.
func (r Range) ContainsPosition(pos Position) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Column < r.Start.Column {
		return false
	}
	if pos.Line == r.End.Line && pos.Column > r.End.Column {
		return false
	}
	return true
}

// BoundingBox returns the componentwise min/max of a non-empty set of
// ranges: the widest byte span and the widest line/column extent.
func BoundingBox(ranges ...Range) Range {
	if len(ranges) == 0 {
		return Range{}
	}
	box := ranges[0]
	for _, r := range ranges[1:] {
		if r.Span[0] < box.Span[0] {
			box.Span[0] = r.Span[0]
			box.Start = r.Start
		}
		if r.Span[1] > box.Span[1] {
			box.Span[1] = r.Span[1]
			box.End = r.End
		}
	}
	return box
}

// SourceIndex resolves byte offsets to Positions in O(log n) via a
// precomputed table of line-start offsets.
type SourceIndex struct {
	lineStarts []int
}

// NewSourceIndex scans source once for '\n' bytes and records where each
// line begins.
func NewSourceIndex(source []byte) *SourceIndex {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &SourceIndex{lineStarts: starts}
}

// Resolve converts a byte offset into a 0-indexed line/column Position.
func (s *SourceIndex) Resolve(offset int) Position {
	// Find the last line start <= offset.
	i := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	})
	line := i - 1
	if line < 0 {
		line = 0
	}
	return Position{Line: line, Column: offset - s.lineStarts[line]}
}

// RangeFromSpan builds a Range with both endpoints resolved against s.
func (s *SourceIndex) RangeFromSpan(start, end int) Range {
	return Range{Span: [2]int{start, end}, Start: s.Resolve(start), End: s.Resolve(end)}
}

// LineCount returns the number of lines the index has recorded starts for.
func (s *SourceIndex) LineCount() int {
	return len(s.lineStarts)
}

// LineStart returns the byte offset at which line (0-indexed) begins.
func (s *SourceIndex) LineStart(line int) int {
	if line < 0 || line >= len(s.lineStarts) {
		return -1
	}
	return s.lineStarts[line]
}
