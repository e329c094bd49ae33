package compliance

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edc/edc/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/compliance/summary", h.Summary, auth.RequireRole(auth.RoleMonitor))
}

type summaryResponse struct {
	Available bool     `json:"available"`
	Summary   *Summary `json:"summary,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// Summary assesses recent audit activity. When no events exist, or the trail
// store is unreachable, the assessment degrades to an unavailable response
// rather than failing the request.
func (h *Handler) Summary(c echo.Context) error {
	summary, err := h.svc.Assess(c.Request().Context())
	if err != nil {
		if errors.Is(err, ErrNoEvents) {
			return c.JSON(http.StatusOK, summaryResponse{
				Available: false,
				Message:   "No audit events available for compliance risk assessment.",
			})
		}
		return c.JSON(http.StatusOK, summaryResponse{
			Available: false,
			Message:   "Audit trail unavailable; compliance risk could not be assessed.",
		})
	}

	return c.JSON(http.StatusOK, summaryResponse{Available: true, Summary: &summary})
}
