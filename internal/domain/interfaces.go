package domain

import (
	"io"

	"phonedb/internal/buffer"
)

type Store interface {
	Add(surname, phone string) error
	Get(surname string) (string, bool)
	Remove(surname string) bool
	Len() int
}

// Processor consumes the inbound text of one write. Responses, if any, are
// written to out.
type Processor interface {
	Process(in *buffer.Span, out io.Writer) error
}

// Refiller is implemented by processors that produce their response lazily,
// at read time instead of write time.
type Refiller interface {
	Refill(out io.Writer) error
}
