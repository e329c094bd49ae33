// Package sdtm normalizes messy capture rows into canonical submission
// records. The mapping is deterministic and row order preserving, so a
// canonical record can always be traced back to its raw source.
package sdtm

import (
	"github.com/edc/edc/internal/domain/synthetic"
)

var sexByText = map[string]string{
	"Male":   SexMale,
	"Female": SexFemale,
	"M":      SexMale,
	"F":      SexFemale,
}

// NormalizeSex maps a free-text gender value to controlled terminology.
// Anything outside the known encodings becomes U.
func NormalizeSex(text string) string {
	if sex, ok := sexByText[text]; ok {
		return sex
	}
	return SexUnknown
}

// MapToCanonical converts raw capture rows to canonical records one to one.
// Identifiers, ages, heart rates, and visit dates carry over verbatim,
// including missing values.
func MapToCanonical(raw []synthetic.RawRecord) []CanonicalRecord {
	records := make([]CanonicalRecord, 0, len(raw))
	for _, r := range raw {
		records = append(records, CanonicalRecord{
			SubjectID: r.SubjectID,
			Age:       r.AgeYears,
			Sex:       NormalizeSex(r.GenderText),
			HeartRate: r.HeartRate,
			VisitDate: r.VisitDate,
		})
	}
	return records
}
