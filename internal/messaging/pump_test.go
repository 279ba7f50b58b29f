package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pobut/PobutBot/internal/models"
)

// fakeService is an in-memory Service for pump tests.
type fakeService struct {
	events chan models.Event
	sent   []string
}

func newFakeService() *fakeService {
	return &fakeService{events: make(chan models.Event, 10)}
}

func (f *fakeService) SendMessage(ctx context.Context, text string) error {
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeService) SendMessageWithKeyboard(ctx context.Context, text string, keyboard models.Keyboard) error {
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeService) Start(ctx context.Context) error { return nil }
func (f *fakeService) Stop() error                     { close(f.events); return nil }

func (f *fakeService) Events() <-chan models.Event { return f.events }

type recordingDispatcher struct {
	events []models.Event
	err    error
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, ev models.Event) error {
	d.events = append(d.events, ev)
	return d.err
}

func TestEventPumpForwardsEvents(t *testing.T) {
	svc := newFakeService()
	dispatcher := &recordingDispatcher{}
	pump := NewEventPump(svc, dispatcher)

	svc.events <- models.UserText{Text: "привіт"}
	svc.events <- models.UserAction{ActionID: models.ActionMoodGood}
	svc.Stop()

	pump.Run(context.Background())

	if len(dispatcher.events) != 2 {
		t.Fatalf("expected 2 dispatched events, got %d", len(dispatcher.events))
	}
	if text, ok := dispatcher.events[0].(models.UserText); !ok || text.Text != "привіт" {
		t.Errorf("unexpected first event: %+v", dispatcher.events[0])
	}
	if action, ok := dispatcher.events[1].(models.UserAction); !ok || action.ActionID != models.ActionMoodGood {
		t.Errorf("unexpected second event: %+v", dispatcher.events[1])
	}
}

func TestEventPumpStorageFailureNotifiesUser(t *testing.T) {
	svc := newFakeService()
	dispatcher := &recordingDispatcher{err: &models.StorageError{Op: "add_expense", Err: errors.New("disk full")}}
	pump := NewEventPump(svc, dispatcher)

	svc.events <- models.UserText{Text: "12.50"}
	svc.Stop()

	pump.Run(context.Background())

	if len(svc.sent) != 1 || svc.sent[0] != storageFailureMessage {
		t.Errorf("expected storage failure message, got %+v", svc.sent)
	}
}

func TestEventPumpNonStorageErrorOnlyLogged(t *testing.T) {
	svc := newFakeService()
	dispatcher := &recordingDispatcher{err: errors.New("transport down")}
	pump := NewEventPump(svc, dispatcher)

	svc.events <- models.UserText{Text: "привіт"}
	svc.Stop()

	pump.Run(context.Background())

	if len(svc.sent) != 0 {
		t.Errorf("non-storage errors must not message the user, got %+v", svc.sent)
	}
}

func TestEventPumpStopsOnContextCancel(t *testing.T) {
	svc := newFakeService()
	pump := NewEventPump(svc, &recordingDispatcher{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		pump.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pump did not stop on context cancellation")
	}
}
