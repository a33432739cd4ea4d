package command

import (
	"fmt"
	"io"
	"log/slog"

	"phonedb/internal/buffer"
	"phonedb/internal/domain"
)

// NotFoundResponse is written for a get that matches no record.
const NotFoundResponse = "[No user found by surname]"

// Handler executes one verb. It takes its operands off the inbound span.
type Handler interface {
	Handle(in *buffer.Span, out io.Writer) error
}

type AddHandler struct {
	store domain.Store
}

type GetHandler struct {
	store domain.Store
}

type RemoveHandler struct {
	store domain.Store
}

func NewAddHandler(s domain.Store) *AddHandler {
	return &AddHandler{store: s}
}

func NewGetHandler(s domain.Store) *GetHandler {
	return &GetHandler{store: s}
}

func NewRemoveHandler(s domain.Store) *RemoveHandler {
	return &RemoveHandler{store: s}
}

func (h *AddHandler) Handle(in *buffer.Span, _ io.Writer) error {
	surname, ok := NextToken(in)
	if !ok {
		return fmt.Errorf("%w: add requires <surname> <phone>", ErrMalformedCommand)
	}
	phone, ok := NextToken(in)
	if !ok {
		return fmt.Errorf("%w: add %s is missing <phone>", ErrMalformedCommand, surname)
	}

	slog.Debug("processing add request", "surname", surname, "phone", phone)
	return h.store.Add(surname, phone)
}

func (h *GetHandler) Handle(in *buffer.Span, out io.Writer) error {
	surname, ok := NextToken(in)
	if !ok {
		return fmt.Errorf("%w: get requires <surname>", ErrMalformedCommand)
	}

	slog.Debug("processing get request", "surname", surname)

	result, found := h.store.Get(surname)
	if !found {
		result = NotFoundResponse
	}

	_, err := io.WriteString(out, result)
	return err
}

func (h *RemoveHandler) Handle(in *buffer.Span, _ io.Writer) error {
	surname, ok := NextToken(in)
	if !ok {
		return fmt.Errorf("%w: remove requires <surname>", ErrMalformedCommand)
	}

	slog.Debug("processing remove request", "surname", surname)
	h.store.Remove(surname)
	return nil
}
