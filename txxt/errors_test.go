package txxt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{InconsistentIndent, "InconsistentIndent"},
		{UnterminatedVerbatim, "UnterminatedVerbatim"},
		{MalformedAnnotation, "MalformedAnnotation"},
		{Unmatched, "Unmatched"},
		{ErrorKind(99), "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestNewParseErrorResolvesPosition(t *testing.T) {
	idx := NewSourceIndex([]byte("abc\ndef\n"))
	perr := newParseError(InconsistentIndent, idx, 5, "bad dedent")
	assert.Equal(t, InconsistentIndent, perr.Kind)
	assert.Equal(t, 5, perr.Offset)
	assert.Equal(t, Position{Line: 1, Column: 1}, perr.Position)
	assert.Contains(t, perr.Error(), "bad dedent")
}
