package license

import (
	"database/sql"
	"errors"
)

// Service errors
var (
	ErrNotFound     = errors.New("license not found")
	ErrDuplicateKey = errors.New("license key already exists")
	ErrNegativeDays = errors.New("days must be a non-negative integer")
)

type License struct {
	LicenseKey string         `db:"license_key"`
	Expiry     string         `db:"expiry"`
	Active     bool           `db:"active"`
	MachineID  sql.NullString `db:"machine_id"`
}

// Bound reports whether the license has been claimed by a machine.
func (l *License) Bound() bool {
	return l.MachineID.Valid && l.MachineID.String != ""
}
