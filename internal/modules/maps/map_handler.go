package maps

import (
	"net/http"
	"strconv"

	"roadside-dispatch/internal/models"
	"roadside-dispatch/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler exposes the map endpoints.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new map handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// GetMap handles GET /map. An optional ?area query scopes the result to one
// service area.
func (h *Handler) GetMap(c echo.Context) error {
	var areaID *int
	if raw := c.QueryParam("area"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return utils.RespondWithError(c, http.StatusBadRequest, "Invalid area ID")
		}
		areaID = &id
	}

	nodes, edges, err := h.svc.GetAreaMap(c.Request().Context(), areaID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{
		"nodes": nodes,
		"edges": edges,
	})
}

// UpdateEdge handles PUT /map/edge.
func (h *Handler) UpdateEdge(c echo.Context) error {
	var req models.UpdateEdgeRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	if err := h.svc.UpdateEdge(c.Request().Context(), req.NodeAID, req.NodeBID, req.Weight); err != nil {
		return utils.HandleServiceError(c, err)
	}

	return c.NoContent(http.StatusOK)
}
