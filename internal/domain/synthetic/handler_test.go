package synthetic

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type mockWorkset struct {
	sessionID string
	records   []RawRecord
}

func (m *mockWorkset) ReplaceRaw(sessionID string, records []RawRecord) {
	m.sessionID = sessionID
	m.records = records
}

func newGenerateContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session_id", "sess-1")
	return c, rec
}

func TestHandler_Generate_Default(t *testing.T) {
	ws := &mockWorkset{}
	h := NewHandler(NewGenerator(1), ws)

	c, rec := newGenerateContext("/api/v1/synthetic/generate")
	if err := h.Generate(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Count   int         `json:"count"`
		Records []RawRecord `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != DefaultCount || len(resp.Records) != DefaultCount {
		t.Errorf("expected %d records, got count=%d len=%d", DefaultCount, resp.Count, len(resp.Records))
	}
	if ws.sessionID != "sess-1" || len(ws.records) != DefaultCount {
		t.Errorf("expected workset updated for sess-1, got %q with %d records", ws.sessionID, len(ws.records))
	}
}

func TestHandler_Generate_CustomCount(t *testing.T) {
	ws := &mockWorkset{}
	h := NewHandler(NewGenerator(1), ws)

	c, _ := newGenerateContext("/api/v1/synthetic/generate?count=5")
	if err := h.Generate(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ws.records) != 5 {
		t.Errorf("expected 5 records, got %d", len(ws.records))
	}
}

func TestHandler_Generate_InvalidCount(t *testing.T) {
	h := NewHandler(NewGenerator(1), &mockWorkset{})

	for _, target := range []string{
		"/api/v1/synthetic/generate?count=abc",
		"/api/v1/synthetic/generate?count=-1",
		"/api/v1/synthetic/generate?count=100000",
	} {
		c, _ := newGenerateContext(target)
		err := h.Generate(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400 HTTPError, got %v", target, err)
		}
	}
}
