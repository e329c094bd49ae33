package synthetic

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Workset is the slice of session state this handler touches. The session
// manager implements it.
type Workset interface {
	ReplaceRaw(sessionID string, records []RawRecord)
}

type Handler struct {
	gen     *Generator
	workset Workset
}

func NewHandler(gen *Generator, workset Workset) *Handler {
	return &Handler{gen: gen, workset: workset}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/synthetic/generate", h.Generate)
}

// Generate produces a fresh messy dataset and replaces the session's working
// set with it.
func (h *Handler) Generate(c echo.Context) error {
	count := DefaultCount
	if raw := c.QueryParam("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "count must be a non-negative integer")
		}
		if n > MaxCount {
			return echo.NewHTTPError(http.StatusBadRequest, "count exceeds maximum batch size")
		}
		count = n
	}

	records := h.gen.Generate(count)

	sid, _ := c.Get("session_id").(string)
	h.workset.ReplaceRaw(sid, records)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"records": records,
	})
}
