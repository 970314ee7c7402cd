package api

import (
	"net/http"

	"roadside-dispatch/internal/api/middleware"
	"roadside-dispatch/internal/models"
	"roadside-dispatch/internal/modules/maps"
	"roadside-dispatch/internal/modules/orders"
	"roadside-dispatch/internal/modules/trucks"
	"roadside-dispatch/internal/modules/users"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(
	e *echo.Echo,
	userHandler *users.Handler,
	orderHandler *orders.Handler,
	truckHandler *trucks.Handler,
	mapHandler *maps.Handler,
	jwtSecret string,
) {
	authMiddleware := middleware.JWTAuth(jwtSecret)
	dispatcherRequired := middleware.RoleRequired(models.RoleDispatcher, models.RoleAdmin)

	// --- Public Routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to Roadside Dispatch!"})
	})

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", userHandler.Register)
		authGroup.POST("/login", userHandler.Login)
		authGroup.POST("/logout", userHandler.Logout)
		authGroup.GET("/me", userHandler.GetMe, authMiddleware)
	}

	// --- Order Routes ---
	orderGroup := e.Group("/orders", authMiddleware)
	{
		orderGroup.POST("", orderHandler.CreateOrder)
		orderGroup.GET("", orderHandler.ListOrders)
		orderGroup.GET("/completed", orderHandler.ListCompletedOrders)
		orderGroup.POST("/dispatch", orderHandler.DispatchOrder, dispatcherRequired)
		orderGroup.PUT("/status", orderHandler.UpdateOrderStatus)
		orderGroup.GET("/:orderId", orderHandler.GetOrder)
	}

	// --- Tow Truck Routes ---
	truckGroup := e.Group("/tow_trucks", authMiddleware)
	{
		truckGroup.GET("", truckHandler.ListTowTrucks)
		truckGroup.GET("/nearest", truckHandler.FindNearestAvailableTruck, dispatcherRequired)
		truckGroup.POST("/location", truckHandler.UpdateLocation)
		truckGroup.PUT("/status", truckHandler.UpdateStatus)
		truckGroup.GET("/:truckId", truckHandler.GetTowTruck)
	}

	// --- Map Routes ---
	mapGroup := e.Group("/map", authMiddleware)
	{
		mapGroup.GET("", mapHandler.GetMap)
		mapGroup.PUT("/edge", mapHandler.UpdateEdge, dispatcherRequired)
	}
}
