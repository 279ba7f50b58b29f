package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pobut/PobutBot/internal/models"
)

// storageFailureMessage is shown when a dispatch fails on persistence. The
// engine leaves conversation state untouched in that case, so the user can
// simply repeat the input.
const storageFailureMessage = "⚠️ Не вдалося зберегти запис. Спробуй ще раз."

// Dispatcher accepts inbound events. Satisfied by *flow.Engine.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev models.Event) error
}

// EventPump drains the transport's inbound event channel into the
// conversation engine. No dispatch error is allowed to crash the process:
// storage failures become a user-visible message, everything else is logged.
type EventPump struct {
	svc        Service
	dispatcher Dispatcher
}

// NewEventPump creates an EventPump.
func NewEventPump(svc Service, dispatcher Dispatcher) *EventPump {
	return &EventPump{svc: svc, dispatcher: dispatcher}
}

// Run consumes events until the context is cancelled or the transport's
// event channel closes.
func (p *EventPump) Run(ctx context.Context) {
	slog.Debug("EventPump starting")
	for {
		select {
		case <-ctx.Done():
			slog.Debug("EventPump stopping due to context cancellation")
			return
		case ev, ok := <-p.svc.Events():
			if !ok {
				slog.Debug("EventPump event channel closed")
				return
			}
			p.process(ctx, ev)
		}
	}
}

func (p *EventPump) process(ctx context.Context, ev models.Event) {
	err := p.dispatcher.Dispatch(ctx, ev)
	if err == nil {
		return
	}

	var storageErr *models.StorageError
	if errors.As(err, &storageErr) {
		slog.Error("EventPump dispatch hit storage failure", "error", err, "op", storageErr.Op)
		if sendErr := p.svc.SendMessage(ctx, storageFailureMessage); sendErr != nil {
			slog.Error("EventPump failed to send storage failure message", "error", sendErr)
		}
		return
	}

	slog.Error("EventPump dispatch failed", "error", err, "event", fmt.Sprintf("%T", ev))
}
