package events

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Sink delivers events to a downstream consumer. Implementations must be
// safe for concurrent use.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher emits lifecycle events to a sink. Emission is best-effort:
// a sink failure is logged and dropped so the stream can never fail or
// roll back the transition that produced the event. A nil sink disables
// publishing entirely.
type Publisher struct {
	sink   Sink
	logger *slog.Logger
}

func NewPublisher(sink Sink, logger *slog.Logger) *Publisher {
	return &Publisher{sink: sink, logger: logger}
}

// Emit assigns the event an ID and hands it to the sink.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if p == nil || p.sink == nil {
		return
	}
	event.ID = uuid.NewString()
	if err := p.sink.Publish(ctx, event); err != nil {
		p.logger.WarnContext(ctx, "event dropped",
			"type", string(event.Type),
			"key", event.Key(),
			"error", err,
		)
	}
}
