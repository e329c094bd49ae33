// Package compliance scores recent audit activity. The rules mirror what a
// compliance reviewer checks first: how busy the system is and whether any
// recorded action hints at a failure or an unauthorized change.
package compliance

import (
	"strings"
)

// Activity rates.
const (
	ActivityNormal = "Normal"
	ActivityHigh   = "High"
)

// Risk levels, lowest to highest.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// HighActivityThreshold is the event count at which activity is considered
// elevated.
const HighActivityThreshold = 50

// riskKeywords flag an action as a risk indicator when any of them appears
// as a substring of the normalized action text.
var riskKeywords = []string{"error", "fail", "unauthorized", "override", "deleted"}

// Summary is the result of scoring a window of audit actions.
type Summary struct {
	TotalEvents  int    `json:"total_events"`
	RiskEvents   int    `json:"risk_events"`
	ActivityRate string `json:"activity_rate"`
	RiskLevel    string `json:"risk_level"`
	Message      string `json:"message"`
}

// Summarize scores the given audit actions. Actions are normalized by
// trimming whitespace and lowercasing before keyword matching. Any risk
// indicator forces the level to High regardless of volume.
func Summarize(actions []string) Summary {
	riskEvents := 0
	for _, action := range actions {
		normalized := strings.ToLower(strings.TrimSpace(action))
		for _, keyword := range riskKeywords {
			if strings.Contains(normalized, keyword) {
				riskEvents++
				break
			}
		}
	}

	s := Summary{
		TotalEvents:  len(actions),
		RiskEvents:   riskEvents,
		ActivityRate: ActivityNormal,
		RiskLevel:    RiskLow,
	}

	if s.TotalEvents >= HighActivityThreshold {
		s.ActivityRate = ActivityHigh
		s.RiskLevel = RiskMedium
	}
	if s.RiskEvents > 0 {
		s.RiskLevel = RiskHigh
	}

	switch s.RiskLevel {
	case RiskHigh:
		s.Message = "High compliance risk detected based on recent audit patterns. Immediate review of system activity is recommended."
	case RiskMedium:
		s.Message = "Moderate compliance risk detected due to elevated audit activity. Periodic review is advised."
	default:
		s.Message = "System audit activity is within acceptable compliance thresholds."
	}

	return s
}
