package trucks

import (
	"net/http"
	"strconv"

	"roadside-dispatch/internal/models"
	"roadside-dispatch/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for tow trucks.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new tow-truck handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// ListTowTrucks handles GET /tow_trucks with optional status/area filters.
func (h *Handler) ListTowTrucks(c echo.Context) error {
	page, pageSize := utils.GetPageLimit(c)

	var status *string
	if raw := c.QueryParam("status"); raw != "" {
		status = &raw
	}
	var areaID *int
	if raw := c.QueryParam("area"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return utils.RespondWithError(c, http.StatusBadRequest, "Invalid area ID")
		}
		areaID = &id
	}

	trucks, err := h.svc.ListTowTrucks(c.Request().Context(), page, pageSize, status, areaID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, trucks)
}

// GetTowTruck handles GET /tow_trucks/:truckId.
func (h *Handler) GetTowTruck(c echo.Context) error {
	truckID, err := strconv.Atoi(c.Param("truckId"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid truck ID")
	}

	truck, err := h.svc.GetTowTruckByID(c.Request().Context(), truckID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, truck)
}

// UpdateLocation handles POST /tow_trucks/location. Each report appends a
// new history row; it never overwrites previous locations.
func (h *Handler) UpdateLocation(c echo.Context) error {
	var req models.UpdateLocationRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	if err := h.svc.UpdateLocation(c.Request().Context(), req.TowTruckID, req.NodeID); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// UpdateStatus handles PUT /tow_trucks/status.
func (h *Handler) UpdateStatus(c echo.Context) error {
	var req models.UpdateTruckStatusRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	if err := h.svc.UpdateStatus(c.Request().Context(), req.TowTruckID, req.Status); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// FindNearestAvailableTruck handles GET /tow_trucks/nearest?order_id=N.
// "No admissible truck" is a normal empty result, answered with 204.
func (h *Handler) FindNearestAvailableTruck(c echo.Context) error {
	orderID, err := strconv.Atoi(c.QueryParam("order_id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}

	truck, err := h.svc.FindNearestAvailableTruck(c.Request().Context(), orderID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if truck == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return utils.RespondWithJSON(c, http.StatusOK, truck)
}
