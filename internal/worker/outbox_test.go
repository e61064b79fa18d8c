package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/pkg/messaging"
)

type fakeOutboxRepo struct {
	pending   []*model.OutboxEvent
	processed []uuid.UUID
	failed    []uuid.UUID
}

func (r *fakeOutboxRepo) Create(_ context.Context, evt *model.OutboxEvent) error {
	r.pending = append(r.pending, evt)
	return nil
}

func (r *fakeOutboxRepo) ListPending(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	if len(r.pending) > limit {
		return r.pending[:limit], nil
	}
	return r.pending, nil
}

func (r *fakeOutboxRepo) MarkProcessed(_ context.Context, id uuid.UUID) error {
	r.processed = append(r.processed, id)
	return nil
}

func (r *fakeOutboxRepo) MarkFailed(_ context.Context, id uuid.UUID) error {
	r.failed = append(r.failed, id)
	return nil
}

type fakeBroker struct {
	published []messaging.Event
	err       error
	messages  chan []byte
}

func (b *fakeBroker) Publish(_ context.Context, _ string, message interface{}) error {
	if b.err != nil {
		return b.err
	}
	b.published = append(b.published, message.(messaging.Event))
	return nil
}

func (b *fakeBroker) Subscribe(context.Context, string) (<-chan []byte, error) {
	return b.messages, nil
}

func (b *fakeBroker) Close() error { return nil }

func pendingEvent(eventType string) *model.OutboxEvent {
	return &model.OutboxEvent{
		ID:          uuid.New(),
		EventType:   eventType,
		AggregateID: uuid.New(),
		Payload:     json.RawMessage(`{"x":1}`),
		Status:      model.OutboxStatusPending,
		CreatedAt:   time.Now(),
	}
}

func TestDrainPublishesAndMarksProcessed(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []*model.OutboxEvent{
		pendingEvent("appointment.created"),
		pendingEvent("invoice.paid"),
	}}
	broker := &fakeBroker{}

	p := NewOutboxProcessor(repo, broker, zerolog.Nop())
	p.drain(context.Background())

	require.Len(t, broker.published, 2)
	assert.Equal(t, "appointment.created", broker.published[0].Type)
	assert.Len(t, repo.processed, 2)
	assert.Empty(t, repo.failed)
}

func TestDrainMarksFailedOnPublishError(t *testing.T) {
	evt := pendingEvent("invoice.created")
	repo := &fakeOutboxRepo{pending: []*model.OutboxEvent{evt}}
	broker := &fakeBroker{err: errors.New("broker down")}

	p := NewOutboxProcessor(repo, broker, zerolog.Nop())
	p.drain(context.Background())

	assert.Empty(t, repo.processed)
	require.Len(t, repo.failed, 1)
	assert.Equal(t, evt.ID, repo.failed[0])
}

type fakeSender struct {
	sent []string
	err  error
}

func (s *fakeSender) Send(to, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, subject)
	return nil
}

func TestNotifierSendsMailForKnownEvents(t *testing.T) {
	broker := &fakeBroker{messages: make(chan []byte, 2)}
	sender := &fakeSender{}
	n := NewNotifier(broker, sender, "ops@hospital.local", zerolog.Nop())

	raw, err := json.Marshal(messaging.Event{Type: "invoice.paid", AggregateID: uuid.NewString()})
	require.NoError(t, err)
	broker.messages <- raw
	close(broker.messages)

	require.NoError(t, n.Run(context.Background()))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Invoice Paid", sender.sent[0])
}

func TestNotifierIgnoresUnknownEvents(t *testing.T) {
	broker := &fakeBroker{messages: make(chan []byte, 2)}
	sender := &fakeSender{}
	n := NewNotifier(broker, sender, "ops@hospital.local", zerolog.Nop())

	raw, err := json.Marshal(messaging.Event{Type: "patient.updated"})
	require.NoError(t, err)
	broker.messages <- raw
	broker.messages <- []byte("not json")
	close(broker.messages)

	require.NoError(t, n.Run(context.Background()))
	assert.Empty(t, sender.sent)
}
