package risk

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edc/edc/internal/domain/sdtm"
	"github.com/edc/edc/pkg/chartdata"
)

// Workset is the slice of session state this handler touches.
type Workset interface {
	Canonical(sessionID string) []sdtm.CanonicalRecord
	SetAlerts(sessionID string, alerts []Alert)
	Alerts(sessionID string) []Alert
}

type Handler struct {
	workset Workset
}

func NewHandler(workset Workset) *Handler {
	return &Handler{workset: workset}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/risks", h.DetectRisks)
	api.GET("/risks/distribution", h.RiskDistribution)
}

// DetectRisks runs the rules over the session's canonical records and stores
// the resulting alerts in the working set.
func (h *Handler) DetectRisks(c echo.Context) error {
	sid, _ := c.Get("session_id").(string)

	records := h.workset.Canonical(sid)
	if len(records) == 0 {
		return echo.NewHTTPError(http.StatusConflict, "no canonical records in session; map raw data first")
	}

	alerts := Detect(records)
	h.workset.SetAlerts(sid, alerts)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

// RiskDistribution returns alert counts per category as a doughnut chart
// feed, recomputed from the most recent detection run.
func (h *Handler) RiskDistribution(c echo.Context) error {
	sid, _ := c.Get("session_id").(string)

	series := chartdata.New("AI Risk Distribution")
	categories, counts := CategoryCounts(h.workset.Alerts(sid))
	for i, cat := range categories {
		series.Add(cat, float64(counts[i]))
	}

	return c.JSON(http.StatusOK, series)
}
