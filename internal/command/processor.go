package command

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"phonedb/internal/buffer"
	"phonedb/internal/domain"
	"phonedb/internal/metrics"
)

// Processor parses the inbound text of a write as a sequence of commands and
// dispatches each to the handler registered for its verb.
type Processor struct {
	handlers map[Verb]Handler
}

func NewProcessor(store domain.Store) *Processor {
	return NewProcessorWithHandlers(map[Verb]Handler{
		Add:    NewAddHandler(store),
		Get:    NewGetHandler(store),
		Remove: NewRemoveHandler(store),
	})
}

func NewProcessorWithHandlers(handlers map[Verb]Handler) *Processor {
	return &Processor{handlers: handlers}
}

// Process runs commands until the span is exhausted. It stops at the first
// failing command; commands before it stay applied and the tokens after it
// are dropped.
func (p *Processor) Process(in *buffer.Span, out io.Writer) error {
	for in.Len() > 0 {
		tok, ok := NextToken(in)
		if !ok {
			break
		}

		verb, err := ParseVerb(tok)
		if err != nil {
			slog.Warn("command rejected", "error", err)
			metrics.CommandsTotal.WithLabelValues(verb.String(), "invalid").Inc()
			return err
		}

		if err := p.dispatch(verb, in, out); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) dispatch(verb Verb, in *buffer.Span, out io.Writer) error {
	start := time.Now()

	metrics.CommandsInFlight.Inc()
	defer metrics.CommandsInFlight.Dec()

	handler, ok := p.handlers[verb]
	if !ok {
		metrics.CommandsTotal.WithLabelValues(verb.String(), "invalid").Inc()
		return fmt.Errorf("%w: no handler for %s", ErrMalformedCommand, verb)
	}

	err := handler.Handle(in, out)
	metrics.CommandDuration.WithLabelValues(verb.String()).Observe(time.Since(start).Seconds())

	if err != nil {
		slog.Warn("command failed", "verb", verb, "error", err)
		metrics.CommandsTotal.WithLabelValues(verb.String(), "error").Inc()
		return fmt.Errorf("%s: %w", verb, err)
	}

	metrics.CommandsTotal.WithLabelValues(verb.String(), "success").Inc()
	return nil
}
