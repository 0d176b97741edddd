package client

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stoxway.com/licserver/internal/validation"
)

type Handler struct {
	ValidationService *validation.Service
}

func NewHandler(v *validation.Service) *Handler {
	return &Handler{
		ValidationService: v,
	}
}

// ValidateRequest is the body a client presents for activation.
type ValidateRequest struct {
	LicenseKey string `json:"license_key"`
	MachineID  string `json:"machine_id"`
}

// ValidateResponse carries the verdict. Domain verdicts are business
// outcomes, not errors, so they all ship with HTTP 200.
type ValidateResponse struct {
	Status validation.Verdict `json:"status"`
}

// POST /validate
func (h *Handler) Validate(c echo.Context) error {
	var req ValidateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	verdict, err := h.ValidationService.Validate(c.Request().Context(), req.LicenseKey, req.MachineID)
	if err != nil {
		c.Logger().Errorf("validate %q: %v", req.LicenseKey, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, ValidateResponse{Status: verdict})
}

// GET /
func (h *Handler) Home(c echo.Context) error {
	return c.String(http.StatusOK, "StoxWay License Server Running")
}
