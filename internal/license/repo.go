package license

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"stoxway.com/licserver/internal/sqlite"
)

type Repository interface {
	GetByKey(ctx context.Context, key string) (*License, error)
	List(ctx context.Context) ([]License, error)

	Create(ctx context.Context, tx *sqlx.Tx, lic *License) error
	SetActive(ctx context.Context, tx *sqlx.Tx, key string, active bool) (int64, error)
	BindMachineIfUnset(ctx context.Context, tx *sqlx.Tx, key, machineID string) (bool, error)
}

type repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Repository {
	return &repo{db: db}
}

func (r *repo) GetByKey(ctx context.Context, key string) (*License, error) {
	var lic License
	err := r.db.GetContext(ctx, &lic, getLicenseSQL, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("get license: %w", err)
	}
	return &lic, nil
}

func (r *repo) List(ctx context.Context) ([]License, error) {
	var out []License
	err := r.db.SelectContext(ctx, &out, listLicensesSQL)
	if err != nil {
		return nil, fmt.Errorf("list licenses: %w", err)
	}
	return out, nil
}

func (r *repo) Create(ctx context.Context, tx *sqlx.Tx, lic *License) error {
	_, err := tx.ExecContext(ctx, createLicenseSQL,
		lic.LicenseKey,
		lic.Expiry,
		lic.Active,
	)
	if sqlite.IsUniqueConstraintError(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, lic.LicenseKey)
	}
	if err != nil {
		return fmt.Errorf("create license: %w", err)
	}
	return nil
}

// SetActive returns the number of rows updated. Toggling a key that does not
// exist updates zero rows and is not an error.
func (r *repo) SetActive(ctx context.Context, tx *sqlx.Tx, key string, active bool) (int64, error) {
	res, err := tx.ExecContext(ctx, updateActiveSQL, active, key)
	if err != nil {
		return 0, fmt.Errorf("update active: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update active: %w", err)
	}
	return n, nil
}

// BindMachineIfUnset sets machine_id only when it is still NULL and reports
// whether this call performed the write.
func (r *repo) BindMachineIfUnset(ctx context.Context, tx *sqlx.Tx, key, machineID string) (bool, error) {
	res, err := tx.ExecContext(ctx, bindMachineSQL, machineID, key)
	if err != nil {
		return false, fmt.Errorf("bind machine: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("bind machine: %w", err)
	}
	return n == 1, nil
}
