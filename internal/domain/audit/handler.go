package audit

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edc/edc/internal/platform/auth"
	"github.com/edc/edc/pkg/pagination"
)

// Workset exposes the session's most recent audit event for the trail view.
type Workset interface {
	LastEvent(sessionID string) *Event
}

type Handler struct {
	svc     *Service
	workset Workset
}

func NewHandler(svc *Service, workset Workset) *Handler {
	return &Handler{svc: svc, workset: workset}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.RoleMonitor, auth.RoleCoordinator))
	read.GET("/audit/logs", h.ListLogs)
	read.GET("/audit/last", h.LastEvent)

	api.POST("/audit/logs", h.RecordLog, auth.RequireRole(auth.RoleCoordinator))
}

type recordLogRequest struct {
	Action   string                 `json:"action"`
	Source   string                 `json:"source"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Origins accepted for manually posted trail entries.
var validSources = map[string]bool{"frontend": true, "ai": true, "manual": true}

// RecordLog appends an event to the audit trail. The optional source tags
// where the entry originated and is folded into the metadata.
func (h *Handler) RecordLog(c echo.Context) error {
	var req recordLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Action == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "action is required")
	}
	if req.Source != "" {
		if !validSources[req.Source] {
			return echo.NewHTTPError(http.StatusBadRequest, "source must be one of frontend, ai, manual")
		}
		if req.Metadata == nil {
			req.Metadata = map[string]interface{}{}
		}
		req.Metadata["source"] = req.Source
	}

	event, err := h.svc.Record(c.Request().Context(), req.Action, req.Metadata)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "audit trail unavailable")
	}
	return c.JSON(http.StatusCreated, event)
}

// ListLogs returns a page of the audit trail, newest first.
func (h *Handler) ListLogs(c echo.Context) error {
	pg := pagination.FromContext(c)
	logs, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "audit trail unavailable")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(logs, total, pg.Limit, pg.Offset))
}

// LastEvent returns the most recent audit event recorded in this session,
// or 404 when the session has not recorded one yet.
func (h *Handler) LastEvent(c echo.Context) error {
	sid, _ := c.Get("session_id").(string)

	event := h.workset.LastEvent(sid)
	if event == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no audit events yet")
	}
	return c.JSON(http.StatusOK, event)
}
