// Package entry handles rapid manual capture of a single subject vital.
// Every submission is audited, accepted or not, so the trail reflects what
// the site actually typed.
package entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/edc/edc/internal/domain/audit"
	"github.com/edc/edc/internal/domain/risk"
)

// ErrAuditUnavailable means the entry could not be recorded to the trail.
var ErrAuditUnavailable = errors.New("entry: audit trail unavailable")

// MaxHeartRate bounds the input field, not plausibility. Values above
// risk.HeartRateCeiling are still captured but flagged.
const MaxHeartRate = 2000

// Result is the verdict on one manual submission plus the audit event it
// produced.
type Result struct {
	Accepted bool         `json:"accepted"`
	Message  string       `json:"message"`
	Event    *audit.Event `json:"event"`
}

type Service struct {
	audit *audit.Service
}

func NewService(auditSvc *audit.Service) *Service {
	return &Service{audit: auditSvc}
}

// Submit validates the entry, decides the verdict, and records a Manual
// Entry audit event. The verdict is computed before auditing so the trail
// captures rejected values too.
func (s *Service) Submit(ctx context.Context, subjectID string, heartRate float64) (*Result, error) {
	if subjectID == "" {
		return nil, fmt.Errorf("subject id is required")
	}
	if heartRate < 0 || heartRate > MaxHeartRate {
		return nil, fmt.Errorf("heart rate must be between 0 and %d", MaxHeartRate)
	}

	result := &Result{Accepted: true, Message: "Entry accepted."}
	if heartRate > risk.HeartRateCeiling {
		result.Accepted = false
		result.Message = "Safety Alert: Implausible heart rate detected."
	}

	event, err := s.audit.Record(ctx, "Manual Entry", map[string]interface{}{
		"USUBJID": subjectID,
		"HR":      heartRate,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuditUnavailable, err)
	}
	result.Event = event
	return result, nil
}
