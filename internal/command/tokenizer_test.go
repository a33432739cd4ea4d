package command

import (
	"testing"

	"phonedb/internal/buffer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spanOf(t *testing.T, text string) *buffer.Span {
	t.Helper()
	s := buffer.NewSpan(64)
	_, err := s.Append([]byte(text))
	require.NoError(t, err)
	return s
}

func TestNextToken_SplitsOnWhitespace(t *testing.T) {
	in := spanOf(t, "  add\tivanov  123\r\n")

	var got []string
	for {
		tok, ok := NextToken(in)
		if !ok {
			break
		}
		got = append(got, tok)
	}

	assert.Equal(t, []string{"add", "ivanov", "123"}, got)
	assert.Equal(t, 0, in.Len())
}

func TestNextToken_ZeroesSeparatorAndAdvances(t *testing.T) {
	in := spanOf(t, "g smith")

	tok, ok := NextToken(in)
	require.True(t, ok)
	assert.Equal(t, "g", tok)
	assert.Equal(t, 2, in.Start())
	assert.Equal(t, "smith", string(in.Bytes()))
}

func TestNextToken_IgnoresTrailingNul(t *testing.T) {
	in := spanOf(t, "r x\x00\x00")

	tok, _ := NextToken(in)
	assert.Equal(t, "r", tok)
	tok, _ = NextToken(in)
	assert.Equal(t, "x", tok)
	_, ok := NextToken(in)
	assert.False(t, ok)
}

func TestNextToken_ReturnsCopy(t *testing.T) {
	in := spanOf(t, "abc")
	tok, _ := NextToken(in)

	in.Clear()
	assert.Equal(t, "abc", tok)
}

func TestParseVerb(t *testing.T) {
	tests := []struct {
		tok  string
		want Verb
	}{
		{"a", Add},
		{"add", Add},
		{"g", Get},
		{"get", Get},
		{"r", Remove},
		{"remove", Remove},
	}
	for _, tt := range tests {
		v, err := ParseVerb(tt.tok)
		require.NoError(t, err, tt.tok)
		assert.Equal(t, tt.want, v, tt.tok)
	}

	v, err := ParseVerb("append")
	require.ErrorIs(t, err, ErrMalformedCommand)
	assert.Equal(t, Unknown, v)
	assert.Equal(t, "unknown", v.String())
}
