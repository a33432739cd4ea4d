package buffer

import "errors"

var ErrBufferFull = errors.New("buffer full")

// IsSeparator reports whether b delimits tokens of the command text.
func IsSeparator(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f', 0:
		return true
	}
	return false
}

// Span is a fixed-capacity byte region with a start and an end cursor. Bytes
// in [start, end) are live; everything else is stale. Every cursor move goes
// through the methods below so that start <= end <= capacity always holds.
type Span struct {
	buf   []byte
	start int
	end   int
}

func NewSpan(capacity int) *Span {
	if capacity < 0 {
		capacity = 0
	}
	return &Span{buf: make([]byte, capacity)}
}

func (s *Span) Cap() int   { return len(s.buf) }
func (s *Span) Start() int { return s.start }
func (s *Span) End() int   { return s.end }

// Len is the number of live bytes.
func (s *Span) Len() int { return s.end - s.start }

// Free is the room left after end.
func (s *Span) Free() int { return len(s.buf) - s.end }

// Bytes returns the live region. The slice aliases the span.
func (s *Span) Bytes() []byte { return s.buf[s.start:s.end] }

// Append copies as much of p as fits after end and advances end. When p does
// not fit completely the copied prefix stays and ErrBufferFull is returned.
func (s *Span) Append(p []byte) (int, error) {
	n := copy(s.buf[s.end:], p)
	s.end += n
	if n < len(p) {
		return n, ErrBufferFull
	}
	return n, nil
}

// Consume advances start by up to n bytes and returns how many it moved.
func (s *Span) Consume(n int) int {
	if n > s.Len() {
		n = s.Len()
	}
	if n < 0 {
		n = 0
	}
	s.start += n
	return n
}

// Read copies live bytes into p and consumes them.
func (s *Span) Read(p []byte) int {
	n := copy(p, s.Bytes())
	return s.Consume(n)
}

// Truncate keeps only the first n live bytes.
func (s *Span) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < s.Len() {
		s.end = s.start + n
	}
}

// Zero overwrites the byte at start+i with 0 without moving any cursor.
func (s *Span) Zero(i int) {
	if i >= 0 && s.start+i < s.end {
		s.buf[s.start+i] = 0
	}
}

// Compact moves the live bytes to the front of the buffer, recycling the
// consumed region.
func (s *Span) Compact() {
	if s.start == 0 {
		return
	}
	n := copy(s.buf, s.buf[s.start:s.end])
	s.start = 0
	s.end = n
}

// Reset drops all bytes by moving both cursors to the buffer start. Contents
// are left in place.
func (s *Span) Reset() {
	s.start = 0
	s.end = 0
}

// Zeroed reports whether every byte of the buffer, live or stale, is 0.
func (s *Span) Zeroed() bool {
	for _, b := range s.buf {
		if b != 0 {
			return false
		}
	}
	return true
}

// Clear zeroes the whole buffer and resets the cursors.
func (s *Span) Clear() {
	clear(s.buf)
	s.Reset()
}
