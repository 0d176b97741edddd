package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stoxway.com/licserver/internal/backup"
	"stoxway.com/licserver/internal/license"
	"stoxway.com/licserver/internal/middleware"
)

// defaultDays is the validity period used when a create request omits days.
const defaultDays = 30

type Handler struct {
	auth       *middleware.Authorizer
	licenseSvc *license.Service
	backupSvc  *backup.Service
}

func NewHandler(auth *middleware.Authorizer, l *license.Service, b *backup.Service) *Handler {
	return &Handler{
		auth:       auth,
		licenseSvc: l,
		backupSvc:  b,
	}
}

// unauthorized is the shared 403 shape for every admin endpoint.
func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusForbidden, map[string]string{
		"error": "Unauthorized",
	})
}

// POST /admin/create
func (h *Handler) CreateLicense(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	if !h.auth.Valid(req.AdminKey) {
		return unauthorized(c)
	}

	days := defaultDays
	if req.Days != nil {
		days = *req.Days
	}
	if days < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "days must be a non-negative integer",
		})
	}

	lic, err := h.licenseSvc.Create(c.Request().Context(), days)
	if err != nil {
		c.Logger().Errorf("create license: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, CreateResponse{
		LicenseKey: lic.LicenseKey,
		Expiry:     lic.Expiry,
	})
}

// POST /admin/toggle
func (h *Handler) ToggleLicense(c echo.Context) error {
	var req ToggleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	if !h.auth.Valid(req.AdminKey) {
		return unauthorized(c)
	}

	// A key with no matching row updates nothing and still reports success;
	// clients of this endpoint depend on the permissive behavior.
	if _, err := h.licenseSvc.SetActive(c.Request().Context(), req.LicenseKey, req.Active); err != nil {
		c.Logger().Errorf("toggle license %q: %v", req.LicenseKey, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "updated",
	})
}

// GET /admin/licenses
func (h *Handler) GetLicenses(c echo.Context) error {
	if !h.auth.Valid(c.QueryParam("admin_key")) {
		return unauthorized(c)
	}

	licenses, err := h.licenseSvc.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list licenses: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
	}

	out := make([]LicenseResponse, 0, len(licenses))
	for _, lic := range licenses {
		expiry := lic.Expiry
		if expiry == "" {
			expiry = "N/A"
		}
		out = append(out, LicenseResponse{
			LicenseKey: lic.LicenseKey,
			Expiry:     expiry,
			Active:     lic.Active,
		})
	}

	return c.JSON(http.StatusOK, out)
}

// POST /admin/backup
func (h *Handler) BackupDatabase(c echo.Context) error {
	var req BackupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	if !h.auth.Valid(req.AdminKey) {
		return unauthorized(c)
	}

	result, err := h.backupSvc.CreateBackup(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("backup: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, result)
}
