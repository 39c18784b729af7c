package handler

import (
	"net/http"

	"github.com/epimonos/statement-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, statementHandler *StatementHandler, customerHandler *CustomerHandler) {
	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Routes used by the statement frontend (rate limited, no auth)
	legacy := e.Group("/api")
	legacy.Use(middleware.RateLimitMiddleware(rateLimiter))
	legacy.POST("/statements", statementHandler.Generate)
	legacy.POST("/generate-statement", statementHandler.Generate)

	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())

	statements := api.Group("/statements")
	statements.Use(middleware.RateLimitMiddleware(rateLimiter))
	statements.POST("", statementHandler.Generate)
	statements.POST("/from-records", statementHandler.GenerateFromRecords)

	customers := api.Group("/customers")
	customers.GET("/:customerId", customerHandler.GetCustomer)
	customers.GET("/:customerId/loans", customerHandler.GetLoans)
}
