package audit

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

type Service struct {
	repo   LogRepository
	logger zerolog.Logger
}

func NewService(repo LogRepository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record mints an audit event for the given action and persists it. The
// event is returned to the caller even when persistence fails, together with
// the error, so the caller can both surface the failure and show what was
// attempted.
func (s *Service) Record(ctx context.Context, eventType string, details map[string]interface{}) (*Event, error) {
	if eventType == "" {
		return nil, fmt.Errorf("event type is required")
	}

	event := NewEvent(eventType, details)
	if err := s.repo.Insert(ctx, event.ToLog()); err != nil {
		s.logger.Error().Err(err).
			Str("audit_id", event.AuditID.String()).
			Str("event_type", eventType).
			Msg("failed to persist audit event")
		return event, fmt.Errorf("persist audit event: %w", err)
	}

	s.logger.Info().
		Str("audit_id", event.AuditID.String()).
		Str("event_type", eventType).
		Msg("audit event recorded")
	return event, nil
}

// ListRecent returns up to limit trail rows, newest first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Log, error) {
	return s.repo.ListRecent(ctx, limit)
}

// List returns a page of trail rows with the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Log, int, error) {
	return s.repo.List(ctx, limit, offset)
}
