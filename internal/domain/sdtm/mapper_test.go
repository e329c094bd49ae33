package sdtm

import (
	"testing"

	"github.com/edc/edc/internal/domain/synthetic"
)

func TestNormalizeSex(t *testing.T) {
	cases := map[string]string{
		"Male":    "M",
		"Female":  "F",
		"M":       "M",
		"F":       "F",
		"Unknown": "U",
		"":        "U",
		"female":  "U", // mapping is case sensitive, unknown casings fall through
	}
	for text, want := range cases {
		if got := NormalizeSex(text); got != want {
			t.Errorf("NormalizeSex(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestMapToCanonical_CarriesValuesVerbatim(t *testing.T) {
	age := 44
	hr := 72.0
	raw := []synthetic.RawRecord{
		{SubjectID: "SUBJ-001", AgeYears: &age, GenderText: "Female", HeartRate: &hr, VisitDate: "2024-03-15"},
	}

	records := MapToCanonical(raw)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.SubjectID != "SUBJ-001" {
		t.Errorf("unexpected subject %q", r.SubjectID)
	}
	if r.Age == nil || *r.Age != 44 {
		t.Errorf("unexpected age %v", r.Age)
	}
	if r.Sex != SexFemale {
		t.Errorf("unexpected sex %q", r.Sex)
	}
	if r.HeartRate == nil || *r.HeartRate != 72 {
		t.Errorf("unexpected heart rate %v", r.HeartRate)
	}
	if r.VisitDate != "2024-03-15" {
		t.Errorf("unexpected visit date %q", r.VisitDate)
	}
}

func TestMapToCanonical_PreservesMissingValues(t *testing.T) {
	raw := []synthetic.RawRecord{
		{SubjectID: "SUBJ-002", GenderText: "Unknown", VisitDate: "2023-01-01"},
	}

	r := MapToCanonical(raw)[0]
	if r.Age != nil {
		t.Errorf("expected missing age to stay nil, got %v", *r.Age)
	}
	if r.HeartRate != nil {
		t.Errorf("expected missing heart rate to stay nil, got %v", *r.HeartRate)
	}
	if r.Sex != SexUnknown {
		t.Errorf("expected U, got %q", r.Sex)
	}
}

func TestMapToCanonical_PreservesOrderAndLength(t *testing.T) {
	raw := []synthetic.RawRecord{
		{SubjectID: "SUBJ-010", GenderText: "M", VisitDate: "2022-05-01"},
		{SubjectID: "SUBJ-020", GenderText: "F", VisitDate: "2022-05-02"},
		{SubjectID: "SUBJ-030", GenderText: "Male", VisitDate: "2022-05-03"},
	}

	records := MapToCanonical(raw)
	if len(records) != len(raw) {
		t.Fatalf("expected %d records, got %d", len(raw), len(records))
	}
	for i := range raw {
		if records[i].SubjectID != raw[i].SubjectID {
			t.Errorf("row %d: expected %q, got %q", i, raw[i].SubjectID, records[i].SubjectID)
		}
	}
}

func TestMapToCanonical_Empty(t *testing.T) {
	if got := MapToCanonical(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %d records", len(got))
	}
}
