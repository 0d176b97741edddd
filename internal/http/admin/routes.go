package admin

import "github.com/labstack/echo/v4"

// RegisterRoutes wires the privileged endpoints. Each handler checks the
// admin secret itself because the secret travels in the request body on
// POSTs and as a query parameter on GETs.
func RegisterRoutes(g *echo.Group, h *Handler) {

	// Key issuance
	g.POST("/create", h.CreateLicense)

	// Activation kill switch
	g.POST("/toggle", h.ToggleLicense)

	// Enumeration
	g.GET("/licenses", h.GetLicenses)

	// Backup
	g.POST("/backup", h.BackupDatabase)
}
