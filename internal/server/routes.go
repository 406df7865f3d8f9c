package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"quoteScope/internal/metrics"
)

// RegisterRoutes configures all routes, middleware, and the error handler.
func RegisterRoutes(e *echo.Echo, h *Handlers, cfg ServerConfig) {
	e.HTTPErrorHandler = JSONErrorHandler()

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	v1 := e.Group("/v1")
	v1.Use(SetNoCacheHeaders)
	if cfg.APIKey != "" {
		v1.Use(middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
			KeyLookup: "header:X-API-Key",
			Validator: apiKeyValidator(cfg.APIKey),
		}))
	}
	v1.GET("/tools", h.ListTools)
	v1.POST("/tools/:name", h.CallTool)
	v1.GET("/tokens", h.ListTokens)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: ErrorBody{Type: "NotFound", Message: "not found"}})
	})
}

// apiKeyValidator compares keys in constant time.
func apiKeyValidator(expected string) middleware.KeyAuthValidator {
	return func(key string, _ echo.Context) (bool, error) {
		return subtle.ConstantTimeCompare([]byte(key), []byte(expected)) == 1, nil
	}
}
