package license

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// createAttempts bounds key generation retries on a collision before the
// create is reported as failed.
const createAttempts = 3

type Service struct {
	repo Repository
	db   *sqlx.DB
}

func NewService(db *sqlx.DB) *Service {
	return &Service{
		db:   db,
		repo: New(db),
	}
}

func (s *Service) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Service) GetByKey(ctx context.Context, key string) (*License, error) {
	return s.repo.GetByKey(ctx, key)
}

func (s *Service) List(ctx context.Context) ([]License, error) {
	return s.repo.List(ctx)
}

// Create generates a fresh key valid for the given number of whole days from
// today (inclusive boundary) and inserts it as active and unbound. A generated
// key that collides with an existing one is regenerated a bounded number of
// times before the collision is surfaced.
func (s *Service) Create(ctx context.Context, days int) (*License, error) {
	if days < 0 {
		return nil, ErrNegativeDays
	}

	lic := &License{
		Expiry: time.Now().AddDate(0, 0, days).Format("2006-01-02"),
		Active: true,
	}

	var err error
	for attempt := 0; attempt < createAttempts; attempt++ {
		lic.LicenseKey = GenerateKey()

		err = s.WithTx(ctx, func(tx *sqlx.Tx) error {
			return s.repo.Create(ctx, tx, lic)
		})
		if errors.Is(err, ErrDuplicateKey) {
			continue
		}
		if err != nil {
			return nil, err
		}

		return s.repo.GetByKey(ctx, lic.LicenseKey)
	}

	return nil, err
}

// SetActive updates the kill switch for a key and returns the number of rows
// touched. A missing key is zero rows, not an error, preserving the permissive
// toggle behavior the admin API exposes.
func (s *Service) SetActive(ctx context.Context, key string, active bool) (int64, error) {
	var n int64
	err := s.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		n, err = s.repo.SetActive(ctx, tx, key, active)
		return err
	})
	return n, err
}

// BindMachineIfUnset performs the one-time machine binding and reports whether
// this call won the write.
func (s *Service) BindMachineIfUnset(ctx context.Context, key, machineID string) (bool, error) {
	var bound bool
	err := s.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		bound, err = s.repo.BindMachineIfUnset(ctx, tx, key, machineID)
		return err
	})
	return bound, err
}
