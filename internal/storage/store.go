package storage

import (
	"log/slog"

	"phonedb/internal/record"
)

// Store is a singly linked list of records in insertion order. It is not safe
// for concurrent use; the device serializes every access.
type Store struct {
	head   *record.Record
	length int
	limits record.Limits
}

func NewStore(limits record.Limits) *Store {
	return &Store{limits: limits.CombineWith(record.DefaultLimits)}
}

func (s *Store) Head() *record.Record {
	return s.head
}

func (s *Store) Len() int {
	return s.length
}

func (s *Store) last() *record.Record {
	if s.head == nil {
		return nil
	}
	tmp := s.head
	for tmp.Next() != nil {
		tmp = tmp.Next()
	}
	return tmp
}

// Append links a new record at the tail. The list keeps no tail pointer, so
// this walks the whole chain.
func (s *Store) Append(surname, phone string) (*record.Record, error) {
	if err := s.limits.Check(surname, phone); err != nil {
		return nil, err
	}

	r := record.New(surname, phone)
	if last := s.last(); last != nil {
		last.Link(r)
	} else {
		s.head = r
	}
	s.length++

	slog.Debug("record added", "surname", surname, "phoneLength", len(phone))
	return r, nil
}

// Find returns the first record, in insertion order, whose surname the query
// starts with.
func (s *Store) Find(surname string) *record.Record {
	for tmp := s.head; tmp != nil; tmp = tmp.Next() {
		if tmp.Matches(surname) {
			return tmp
		}
	}
	return nil
}

// Remove unlinks the first record matching surname. It reports whether a
// record was removed.
func (s *Store) Remove(surname string) bool {
	target := s.Find(surname)
	if target == nil {
		slog.Debug("no record found by surname, removing nothing", "surname", surname)
		return false
	}

	slog.Debug("removing record", "surname", target.Surname(), "phone", target.Phone())

	if s.head == target {
		s.head = target.Next()
	} else {
		prev := s.head
		for prev.Next() != target {
			prev = prev.Next()
		}
		prev.Link(target.Next())
	}
	target.Link(nil)
	s.length--

	return true
}

// Teardown releases every record. Calling it on an empty store is a no-op.
func (s *Store) Teardown() {
	n := 0
	for tmp := s.head; tmp != nil; {
		next := tmp.Next()
		tmp.Link(nil)
		tmp = next
		n++
	}
	s.head = nil
	s.length = 0

	if n > 0 {
		slog.Debug("store torn down", "released", n)
	}
}

// Records returns the chain contents in insertion order.
func (s *Store) Records() []*record.Record {
	out := make([]*record.Record, 0, s.length)
	for tmp := s.head; tmp != nil; tmp = tmp.Next() {
		out = append(out, tmp)
	}
	return out
}
