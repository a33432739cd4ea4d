package record

import (
	"errors"
	"fmt"
)

// DefaultFieldSize is the capacity of a record field, terminator included.
const DefaultFieldSize = 30

var ErrFieldTooLong = errors.New("field too long")

// Limits bounds the stored fields. A size of N allows N-1 content bytes,
// one byte being reserved for the terminator of the wire representation.
type Limits struct {
	MaxSurnameSize int
	MaxPhoneSize   int
}

var DefaultLimits = Limits{
	MaxSurnameSize: DefaultFieldSize,
	MaxPhoneSize:   DefaultFieldSize,
}

func (l Limits) CombineWith(other Limits) Limits {
	if l.MaxSurnameSize <= 0 {
		l.MaxSurnameSize = other.MaxSurnameSize
	}
	if l.MaxPhoneSize <= 0 {
		l.MaxPhoneSize = other.MaxPhoneSize
	}
	return l
}

// Check reports ErrFieldTooLong when either field does not fit.
func (l Limits) Check(surname, phone string) error {
	if len(surname) >= l.MaxSurnameSize {
		return fmt.Errorf("%w: surname is %d bytes, limit is %d", ErrFieldTooLong, len(surname), l.MaxSurnameSize-1)
	}
	if len(phone) >= l.MaxPhoneSize {
		return fmt.Errorf("%w: phone is %d bytes, limit is %d", ErrFieldTooLong, len(phone), l.MaxPhoneSize-1)
	}
	return nil
}

// Record is one surname/phone entry. Records are immutable once created and
// linked by the store that owns them.
type Record struct {
	surname string
	phone   string
	next    *Record
}

func New(surname, phone string) *Record {
	return &Record{
		surname: surname,
		phone:   phone,
	}
}

func (r *Record) Surname() string { return r.surname }
func (r *Record) Phone() string   { return r.phone }

func (r *Record) Next() *Record { return r.next }

// Link sets the successor. Only the owning store calls it.
func (r *Record) Link(next *Record) { r.next = next }

// Matches compares the query against the stored surname over the stored
// surname's length. A query that extends a stored surname matches; a query
// shorter than the stored surname never does.
func (r *Record) Matches(query string) bool {
	if len(query) < len(r.surname) {
		return false
	}
	return query[:len(r.surname)] == r.surname
}

func (r *Record) String() string {
	return r.surname + " " + r.phone
}
