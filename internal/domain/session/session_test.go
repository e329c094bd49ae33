package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edc/edc/internal/domain/risk"
	"github.com/edc/edc/internal/domain/sdtm"
	"github.com/edc/edc/internal/domain/synthetic"
)

func TestManager_Resolve_MintsNewSession(t *testing.T) {
	mgr := NewManager(time.Hour)

	id := mgr.Resolve("")
	if id == "" {
		t.Fatal("expected generated session ID")
	}
	if mgr.Len() != 1 {
		t.Errorf("expected 1 workspace, got %d", mgr.Len())
	}
	if again := mgr.Resolve(id); again != id {
		t.Errorf("expected stable ID, got %s", again)
	}
}

func TestManager_WorkingSetRoundTrip(t *testing.T) {
	mgr := NewManager(time.Hour)
	id := mgr.Resolve("")

	mgr.ReplaceRaw(id, []synthetic.RawRecord{{SubjectID: "SUBJ-001"}})
	if raw := mgr.Raw(id); len(raw) != 1 || raw[0].SubjectID != "SUBJ-001" {
		t.Fatalf("unexpected raw records %+v", raw)
	}

	mgr.SetCanonical(id, []sdtm.CanonicalRecord{{SubjectID: "SUBJ-001"}})
	if canonical := mgr.Canonical(id); len(canonical) != 1 {
		t.Fatalf("unexpected canonical records %+v", canonical)
	}

	mgr.SetAlerts(id, []risk.Alert{{SubjectID: "SUBJ-001", Category: risk.CategoryDataQuality}})
	if alerts := mgr.Alerts(id); len(alerts) != 1 {
		t.Fatalf("unexpected alerts %+v", alerts)
	}
}

func TestManager_ReplaceRaw_ClearsDownstream(t *testing.T) {
	mgr := NewManager(time.Hour)
	id := mgr.Resolve("")

	mgr.SetCanonical(id, []sdtm.CanonicalRecord{{SubjectID: "SUBJ-001"}})
	mgr.SetAlerts(id, []risk.Alert{{SubjectID: "SUBJ-001"}})

	mgr.ReplaceRaw(id, []synthetic.RawRecord{{SubjectID: "SUBJ-002"}})
	if mgr.Canonical(id) != nil {
		t.Error("expected canonical records cleared by new raw data")
	}
	if mgr.Alerts(id) != nil {
		t.Error("expected alerts cleared by new raw data")
	}
}

func TestManager_SetCanonical_ClearsAlerts(t *testing.T) {
	mgr := NewManager(time.Hour)
	id := mgr.Resolve("")

	mgr.SetAlerts(id, []risk.Alert{{SubjectID: "SUBJ-001"}})
	mgr.SetCanonical(id, []sdtm.CanonicalRecord{{SubjectID: "SUBJ-001"}})
	if mgr.Alerts(id) != nil {
		t.Error("expected alerts cleared by remapping")
	}
}

func TestManager_ExpiresAfterTTL(t *testing.T) {
	mgr := NewManager(time.Minute)
	current := time.Now()
	mgr.now = func() time.Time { return current }

	id := mgr.Resolve("")
	mgr.ReplaceRaw(id, []synthetic.RawRecord{{SubjectID: "SUBJ-001"}})

	current = current.Add(2 * time.Minute)
	if raw := mgr.Raw(id); raw != nil {
		t.Errorf("expected expired workspace to read empty, got %+v", raw)
	}
}

func TestManager_Sweep_RemovesExpired(t *testing.T) {
	mgr := NewManager(time.Minute)
	current := time.Now()
	mgr.now = func() time.Time { return current }

	mgr.Resolve("")
	mgr.Resolve("")

	current = current.Add(2 * time.Minute)
	mgr.Resolve("") // fresh, survives

	if removed := mgr.Sweep(); removed != 2 {
		t.Errorf("expected 2 swept, got %d", removed)
	}
	if mgr.Len() != 1 {
		t.Errorf("expected 1 workspace left, got %d", mgr.Len())
	}
}

func TestMiddleware_SetsSessionAndHeader(t *testing.T) {
	mgr := NewManager(time.Hour)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/risks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var sid string
	handler := Middleware(mgr)(func(c echo.Context) error {
		sid, _ = c.Get("session_id").(string)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sid == "" {
		t.Fatal("expected session id on context")
	}
	if got := rec.Header().Get(SessionHeader); got != sid {
		t.Errorf("expected session header %q, got %q", sid, got)
	}
}

func TestMiddleware_ReusesSessionHeader(t *testing.T) {
	mgr := NewManager(time.Hour)
	existing := mgr.Resolve("")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/risks", nil)
	req.Header.Set(SessionHeader, existing)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Middleware(mgr)(func(c echo.Context) error {
		if sid, _ := c.Get("session_id").(string); sid != existing {
			t.Errorf("expected session %s, got %s", existing, sid)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
