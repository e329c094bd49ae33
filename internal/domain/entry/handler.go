package entry

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edc/edc/internal/domain/audit"
	"github.com/edc/edc/internal/platform/auth"
)

// Workset stores the session's most recent audit event for the trail view.
type Workset interface {
	SetLastEvent(sessionID string, ev *audit.Event)
}

type Handler struct {
	svc     *Service
	workset Workset
}

func NewHandler(svc *Service, workset Workset) *Handler {
	return &Handler{svc: svc, workset: workset}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/entries", h.Submit, auth.RequireRole(auth.RoleCoordinator))
}

type submitRequest struct {
	SubjectID string  `json:"usubjid"`
	HeartRate float64 `json:"hr"`
}

// Submit captures one manual vital reading. A rejected reading still gets a
// 200 with the safety verdict; only malformed input or a dead audit store
// turn into errors.
func (h *Handler) Submit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.svc.Submit(c.Request().Context(), req.SubjectID, req.HeartRate)
	if err != nil {
		if errors.Is(err, ErrAuditUnavailable) {
			return echo.NewHTTPError(http.StatusBadGateway, "audit trail unavailable")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sid, _ := c.Get("session_id").(string)
	h.workset.SetLastEvent(sid, result.Event)

	return c.JSON(http.StatusOK, result)
}
