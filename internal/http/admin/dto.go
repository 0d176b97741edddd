package admin

// -------------------------
// Create DTOs
// -------------------------

// CreateRequest asks for a new key valid for the given number of whole days.
// Days is a pointer so an absent field can fall back to the default.
type CreateRequest struct {
	AdminKey string `json:"admin_key"`
	Days     *int   `json:"days"`
}

type CreateResponse struct {
	LicenseKey string `json:"license_key"`
	Expiry     string `json:"expiry"`
}

// -------------------------
// Toggle DTOs
// -------------------------

type ToggleRequest struct {
	AdminKey   string `json:"admin_key"`
	LicenseKey string `json:"license_key"`
	Active     bool   `json:"active"`
}

// -------------------------
// List DTOs
// -------------------------

type LicenseResponse struct {
	LicenseKey string `json:"license_key"`
	Expiry     string `json:"expiry"`
	Active     bool   `json:"active"`
}

// -------------------------
// Backup DTOs
// -------------------------

type BackupRequest struct {
	AdminKey string `json:"admin_key"`
}
