package sdtm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/edc/edc/internal/domain/synthetic"
	"github.com/edc/edc/pkg/chartdata"
)

type mockWorkset struct {
	raw       []synthetic.RawRecord
	canonical []CanonicalRecord
}

func (m *mockWorkset) Raw(string) []synthetic.RawRecord           { return m.raw }
func (m *mockWorkset) SetCanonical(_ string, r []CanonicalRecord) { m.canonical = r }
func (m *mockWorkset) Canonical(string) []CanonicalRecord         { return m.canonical }

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session_id", "sess-1")
	return c, rec
}

func TestHandler_Map_NoRawData(t *testing.T) {
	h := NewHandler(&mockWorkset{})

	c, _ := newContext(http.MethodPost, "/api/v1/sdtm/map")
	err := h.Map(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409 HTTPError, got %v", err)
	}
}

func TestHandler_Map_StoresCanonical(t *testing.T) {
	ws := &mockWorkset{raw: []synthetic.RawRecord{
		{SubjectID: "SUBJ-001", GenderText: "Male", VisitDate: "2024-01-01"},
		{SubjectID: "SUBJ-002", GenderText: "F", VisitDate: "2024-01-02"},
	}}
	h := NewHandler(ws)

	c, rec := newContext(http.MethodPost, "/api/v1/sdtm/map")
	if err := h.Map(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(ws.canonical) != 2 {
		t.Fatalf("expected 2 canonical records stored, got %d", len(ws.canonical))
	}
	if ws.canonical[0].Sex != SexMale || ws.canonical[1].Sex != SexFemale {
		t.Errorf("unexpected sex codes %q, %q", ws.canonical[0].Sex, ws.canonical[1].Sex)
	}
}

func TestHandler_VitalsSeries_SkipsMissingHeartRates(t *testing.T) {
	hr1, hr2 := 72.0, 410.0
	ws := &mockWorkset{canonical: []CanonicalRecord{
		{SubjectID: "SUBJ-001", HeartRate: &hr1},
		{SubjectID: "SUBJ-002"},
		{SubjectID: "SUBJ-003", HeartRate: &hr2},
	}}
	h := NewHandler(ws)

	c, rec := newContext(http.MethodGet, "/api/v1/vitals/series")
	if err := h.VitalsSeries(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var series chartdata.Series
	if err := json.Unmarshal(rec.Body.Bytes(), &series); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(series.Values) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series.Values))
	}
	if series.Values[0] != 72 || series.Values[1] != 410 {
		t.Errorf("unexpected values %v", series.Values)
	}
	if series.Labels[0] != "0" || series.Labels[1] != "1" {
		t.Errorf("expected index labels, got %v", series.Labels)
	}
}

func TestHandler_VitalsSeries_EmptySession(t *testing.T) {
	h := NewHandler(&mockWorkset{})

	c, rec := newContext(http.MethodGet, "/api/v1/vitals/series")
	if err := h.VitalsSeries(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with empty series, got %d", rec.Code)
	}

	var series chartdata.Series
	if err := json.Unmarshal(rec.Body.Bytes(), &series); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(series.Values) != 0 {
		t.Errorf("expected empty series, got %v", series.Values)
	}
}
