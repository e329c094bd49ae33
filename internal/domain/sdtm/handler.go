package sdtm

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/edc/edc/internal/domain/synthetic"
	"github.com/edc/edc/pkg/chartdata"
)

// Workset is the slice of session state this handler touches.
type Workset interface {
	Raw(sessionID string) []synthetic.RawRecord
	SetCanonical(sessionID string, records []CanonicalRecord)
	Canonical(sessionID string) []CanonicalRecord
}

type Handler struct {
	workset Workset
}

func NewHandler(workset Workset) *Handler {
	return &Handler{workset: workset}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/sdtm/map", h.Map)
	api.GET("/vitals/series", h.VitalsSeries)
}

// Map normalizes the session's raw records and stores the canonical result
// in the working set.
func (h *Handler) Map(c echo.Context) error {
	sid, _ := c.Get("session_id").(string)

	raw := h.workset.Raw(sid)
	if len(raw) == 0 {
		return echo.NewHTTPError(http.StatusConflict, "no raw records in session; generate synthetic data first")
	}

	records := MapToCanonical(raw)
	h.workset.SetCanonical(sid, records)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"records": records,
	})
}

// VitalsSeries returns the session's non-missing heart rates as a line chart
// feed, labeled by row index.
func (h *Handler) VitalsSeries(c echo.Context) error {
	sid, _ := c.Get("session_id").(string)

	records := h.workset.Canonical(sid)
	series := chartdata.New("Patient Vital Trends")
	for _, r := range records {
		if r.HeartRate == nil {
			continue
		}
		series.Add(strconv.Itoa(series.Len()), *r.HeartRate)
	}

	return c.JSON(http.StatusOK, series)
}
