package orders

import (
	"net/http"
	"strconv"

	"roadside-dispatch/internal/models"
	"roadside-dispatch/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new order handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// CreateOrder handles POST /orders.
func (h *Handler) CreateOrder(c echo.Context) error {
	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	if err := h.svc.CreateClientOrder(c.Request().Context(), req.ClientID, req.NodeID, req.CarValue); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

// DispatchOrder handles POST /orders/dispatch.
func (h *Handler) DispatchOrder(c echo.Context) error {
	var req models.DispatchOrderRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	if err := h.svc.Dispatch(c.Request().Context(), req.OrderID, req.DispatcherID, req.TowTruckID, req.OrderTime); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// UpdateOrderStatus handles PUT /orders/status.
func (h *Handler) UpdateOrderStatus(c echo.Context) error {
	var req models.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	if err := h.svc.UpdateOrderStatus(c.Request().Context(), req.OrderID, req.Status); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// GetOrder handles GET /orders/:orderId.
func (h *Handler) GetOrder(c echo.Context) error {
	orderID, err := strconv.Atoi(c.Param("orderId"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}

	order, err := h.svc.GetEnrichedOrder(c.Request().Context(), orderID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, order)
}

// ListOrders handles GET /orders with sort/filter query parameters.
func (h *Handler) ListOrders(c echo.Context) error {
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

	orders, err := h.svc.ListOrders(
		c.Request().Context(),
		page, pageSize,
		c.QueryParam("sort_by"), c.QueryParam("sort_order"),
		status, areaID,
	)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, orders)
}

// ListCompletedOrders handles GET /orders/completed.
func (h *Handler) ListCompletedOrders(c echo.Context) error {
	completed, err := h.svc.ListCompletedOrders(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, completed)
}
