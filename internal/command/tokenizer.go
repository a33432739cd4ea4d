package command

import "phonedb/internal/buffer"

// NextToken takes the next whitespace-delimited token off the front of the
// span. Separators it passes over are zeroed in place and the span's start
// cursor moves past the token, so the remaining text always begins at a fresh
// token. The returned string is a copy.
func NextToken(in *buffer.Span) (string, bool) {
	live := in.Bytes()

	i := 0
	for i < len(live) && buffer.IsSeparator(live[i]) {
		in.Zero(i)
		i++
	}

	j := i
	for j < len(live) && !buffer.IsSeparator(live[j]) {
		j++
	}
	tok := string(live[i:j])

	consumed := j
	if j < len(live) {
		in.Zero(j)
		consumed++
	}
	in.Consume(consumed)

	return tok, i < j
}
