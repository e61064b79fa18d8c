package event

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/repository"
)

// Service stages domain events in the outbox table for the worker to
// publish. Staging is best effort: a failed insert is logged, never
// surfaced, so event plumbing can't fail a committed domain write.
type Service struct {
	repo   repository.OutboxRepository
	logger zerolog.Logger
}

func NewService(repo repository.OutboxRepository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Emit(ctx context.Context, eventType string, aggregateID uuid.UUID, payload interface{}) {
	if s == nil || s.repo == nil {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal event payload")
		return
	}

	evt := &model.OutboxEvent{
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     raw,
	}
	if err := s.repo.Create(ctx, evt); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to stage outbox event")
	}
}
