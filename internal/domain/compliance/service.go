package compliance

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edc/edc/internal/domain/audit"
)

// ErrNoEvents means the audit trail held no events to assess.
var ErrNoEvents = errors.New("compliance: no audit events available")

type Service struct {
	repo     audit.LogRepository
	lookback int
	logger   zerolog.Logger
}

// NewService builds a summarizer over the audit trail. lookback bounds how
// many recent events a single assessment reads.
func NewService(repo audit.LogRepository, lookback int, logger zerolog.Logger) *Service {
	return &Service{repo: repo, lookback: lookback, logger: logger}
}

// Assess fetches the most recent audit events and scores them. An empty
// trail returns ErrNoEvents; a store failure is returned as is after
// logging, so the caller can decide how to degrade.
func (s *Service) Assess(ctx context.Context) (Summary, error) {
	logs, err := s.repo.ListRecent(ctx, s.lookback)
	if err != nil {
		if errors.Is(err, audit.ErrNoLogs) {
			return Summary{}, ErrNoEvents
		}
		s.logger.Error().Err(err).Msg("audit trail unreachable during compliance assessment")
		return Summary{}, fmt.Errorf("fetch audit events: %w", err)
	}

	actions := make([]string, len(logs))
	for i, l := range logs {
		actions[i] = l.Action
	}
	return Summarize(actions), nil
}
