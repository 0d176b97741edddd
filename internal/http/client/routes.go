package client

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires the client-facing endpoints. These are unauthenticated:
// the license key inside the request body is the only credential a client has.
func RegisterRoutes(e *echo.Echo, h *Handler) {

	// Activation verdict
	e.POST("/validate", h.Validate)

	// Liveness string
	e.GET("/", h.Home)
}
