package idl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPositionAt(t *testing.T) {
	text := "abc\ndef\nghi"
	cases := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 1, 4},
		{4, 2, 1},
		{7, 2, 4},
		{8, 3, 1},
		{11, 3, 4},
	}
	for _, tc := range cases {
		pos := positionAt(text, tc.offset)
		require.Equal(t, tc.line, pos.Line, "offset %d", tc.offset)
		require.Equal(t, tc.col, pos.Col, "offset %d", tc.offset)
	}

	// Out-of-range offsets are clamped.
	require.Equal(t, 1, positionAt(text, -5).Line)
	require.Equal(t, 3, positionAt(text, 99).Line)
}

func TestErrorStrings(t *testing.T) {
	serr := syntaxErrorf(Position{Offset: 4, Line: 2, Col: 1}, "unexpected token %q", "}")
	require.Equal(t, `syntax error at line 2, column 1: unexpected token "}"`, serr.Error())

	werr := idlErrorf(Position{Offset: 4, Line: 2, Col: 1}, "conflicting declaration of %s", "::A")
	require.Equal(t, "error at line 2, column 1: conflicting declaration of ::A", werr.Error())

	bare := idlErrorf(Position{}, "finish already called")
	require.Equal(t, "error: finish already called", bare.Error())
}
