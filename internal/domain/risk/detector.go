// Package risk evaluates canonical records against deterministic safety and
// data quality rules. Rules are rechecked from scratch on every run, so the
// output always reflects the records as they stand.
package risk

import (
	"github.com/edc/edc/internal/domain/sdtm"
)

// Detect scans the records in order and returns every alert that fires.
// A record with both an implausible heart rate and a missing age produces
// two alerts, heart rate first.
func Detect(records []sdtm.CanonicalRecord) []Alert {
	alerts := []Alert{}
	for _, r := range records {
		if r.HeartRate != nil && *r.HeartRate > HeartRateCeiling {
			alerts = append(alerts, Alert{
				SubjectID:         r.SubjectID,
				Category:          CategorySafety,
				Issue:             "Improbable Heart Rate",
				Reasoning:         "Value exceeds known physiological limits.",
				RecommendedAction: "Immediate manual review",
			})
		}

		if r.Age == nil {
			alerts = append(alerts, Alert{
				SubjectID:         r.SubjectID,
				Category:          CategoryDataQuality,
				Issue:             "Missing Age",
				Reasoning:         "Age required for stratification and analysis.",
				RecommendedAction: "Query site",
			})
		}
	}
	return alerts
}

// CategoryCounts tallies alerts per category in first-appearance order.
func CategoryCounts(alerts []Alert) ([]string, []int) {
	var categories []string
	counts := map[string]int{}
	for _, a := range alerts {
		if _, seen := counts[a.Category]; !seen {
			categories = append(categories, a.Category)
		}
		counts[a.Category]++
	}

	values := make([]int, len(categories))
	for i, cat := range categories {
		values[i] = counts[cat]
	}
	return categories, values
}
