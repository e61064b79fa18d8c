package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/repository"
	"github.com/careops/hospital-platform/pkg/messaging"
)

// EventsChannel is the broker channel all domain events flow through.
const EventsChannel = "hospital.events"

// OutboxProcessor drains staged events into the broker. Publish failures
// bump the retry counter; rows that keep failing are parked as FAILED by the
// repository.
type OutboxProcessor struct {
	repo      repository.OutboxRepository
	broker    messaging.Broker
	logger    zerolog.Logger
	interval  time.Duration
	batchSize int
}

func NewOutboxProcessor(repo repository.OutboxRepository, broker messaging.Broker, logger zerolog.Logger) *OutboxProcessor {
	return &OutboxProcessor{
		repo:      repo,
		broker:    broker,
		logger:    logger,
		interval:  5 * time.Second,
		batchSize: 50,
	}
}

// Run polls until ctx is cancelled.
func (p *OutboxProcessor) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info().Dur("interval", p.interval).Msg("outbox processor started")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("outbox processor stopped")
			return
		case <-ticker.C:
			p.drain(ctx)
		}
	}
}

func (p *OutboxProcessor) drain(ctx context.Context) {
	events, err := p.repo.ListPending(ctx, p.batchSize)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to list pending events")
		return
	}

	for _, evt := range events {
		if err := p.publish(ctx, evt); err != nil {
			p.logger.Error().Err(err).
				Str("event_id", evt.ID.String()).
				Str("event_type", evt.EventType).
				Int("retries", evt.Retries).
				Msg("failed to publish event")
			if err := p.repo.MarkFailed(ctx, evt.ID); err != nil {
				p.logger.Error().Err(err).Str("event_id", evt.ID.String()).Msg("failed to record publish failure")
			}
			continue
		}

		if err := p.repo.MarkProcessed(ctx, evt.ID); err != nil {
			p.logger.Error().Err(err).Str("event_id", evt.ID.String()).Msg("failed to mark event processed")
		}
	}

	if len(events) > 0 {
		p.logger.Debug().Int("count", len(events)).Msg("outbox batch drained")
	}
}

func (p *OutboxProcessor) publish(ctx context.Context, evt *model.OutboxEvent) error {
	return p.broker.Publish(ctx, EventsChannel, messaging.Event{
		Type:        evt.EventType,
		AggregateID: evt.AggregateID.String(),
		Payload:     json.RawMessage(evt.Payload),
		OccurredAt:  evt.CreatedAt.UTC().Format(time.RFC3339),
	})
}
