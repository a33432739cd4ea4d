package channel

import (
	"fmt"
	"strings"
)

// Delivery selects how the outbound buffer is handed to readers.
type Delivery int

const (
	// Cursor serves unread bytes from a persistent read cursor. A long
	// response is drained by repeated reads; a drained buffer reads as 0.
	Cursor Delivery = iota
	// OneShot hands each response to exactly one read, truncated to the
	// reader's size. The following read returns 0 and re-arms the channel.
	OneShot
)

func (d Delivery) String() string {
	switch d {
	case Cursor:
		return "cursor"
	case OneShot:
		return "one-shot"
	default:
		return "unknown"
	}
}

func ParseDelivery(s string) (Delivery, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cursor":
		return Cursor, nil
	case "one-shot", "oneshot":
		return OneShot, nil
	default:
		return Cursor, fmt.Errorf("unknown delivery policy %q", s)
	}
}
