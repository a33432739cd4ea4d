package command

import "fmt"

type Verb int

const (
	Unknown Verb = iota
	Add
	Get
	Remove
)

func (v Verb) String() string {
	switch v {
	case Add:
		return "add"
	case Get:
		return "get"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// ParseVerb accepts the full verb or its single-letter wire form.
func ParseVerb(tok string) (Verb, error) {
	switch tok {
	case "a", "add":
		return Add, nil
	case "g", "get":
		return Get, nil
	case "r", "remove":
		return Remove, nil
	default:
		return Unknown, fmt.Errorf("%w: unknown verb %q", ErrMalformedCommand, tok)
	}
}
