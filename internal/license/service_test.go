package license_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"stoxway.com/licserver/internal/license"
	"stoxway.com/licserver/internal/testutil"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	svc := license.NewService(db)

	t.Run("creates an active unbound license", func(t *testing.T) {
		lic, err := svc.Create(ctx, 10)
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		if !keyShape.MatchString(lic.LicenseKey) {
			t.Errorf("key %q does not match generator shape", lic.LicenseKey)
		}
		if !lic.Active {
			t.Error("expected new license to be active")
		}
		if lic.Bound() {
			t.Errorf("expected new license to be unbound, got machine %q", lic.MachineID.String)
		}

		want := time.Now().AddDate(0, 0, 10).Format("2006-01-02")
		if lic.Expiry != want {
			t.Errorf("expected expiry %s, got %s", want, lic.Expiry)
		}

		// Immediately visible through the read path
		got, err := svc.GetByKey(ctx, lic.LicenseKey)
		if err != nil {
			t.Fatalf("get created license: %v", err)
		}
		if got.LicenseKey != lic.LicenseKey {
			t.Errorf("expected key %q, got %q", lic.LicenseKey, got.LicenseKey)
		}
	})

	t.Run("zero days expires today", func(t *testing.T) {
		lic, err := svc.Create(ctx, 0)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		want := time.Now().Format("2006-01-02")
		if lic.Expiry != want {
			t.Errorf("expected expiry %s, got %s", want, lic.Expiry)
		}
	})

	t.Run("negative days are rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, -1)
		if !errors.Is(err, license.ErrNegativeDays) {
			t.Errorf("expected ErrNegativeDays, got %v", err)
		}
	})
}

func TestCreateDuplicateKey(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	svc := license.NewService(db)
	repo := license.New(db)

	lic, err := svc.Create(ctx, 30)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Inserting the same key again must fail distinguishably, not overwrite
	err = svc.WithTx(ctx, func(tx *sqlx.Tx) error {
		return repo.Create(ctx, tx, &license.License{
			LicenseKey: lic.LicenseKey,
			Expiry:     "2099-12-31",
			Active:     true,
		})
	})
	if !errors.Is(err, license.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}

	// The original row survived
	got, err := svc.GetByKey(ctx, lic.LicenseKey)
	if err != nil {
		t.Fatalf("get license: %v", err)
	}
	if got.Expiry != lic.Expiry {
		t.Errorf("expected expiry %s, got %s", lic.Expiry, got.Expiry)
	}
}

func TestGetByKeyNotFound(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	svc := license.NewService(db)

	_, err := svc.GetByKey(ctx, "STOX-NOPE-NOPE-NOPE-NOPE")
	if !errors.Is(err, license.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetActive(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	svc := license.NewService(db)

	lic, err := svc.Create(ctx, 30)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("disables an existing license", func(t *testing.T) {
		n, err := svc.SetActive(ctx, lic.LicenseKey, false)
		if err != nil {
			t.Fatalf("set active: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 row updated, got %d", n)
		}

		got, _ := svc.GetByKey(ctx, lic.LicenseKey)
		if got.Active {
			t.Error("expected license to be disabled")
		}
	})

	t.Run("re-enables an existing license", func(t *testing.T) {
		if _, err := svc.SetActive(ctx, lic.LicenseKey, true); err != nil {
			t.Fatalf("set active: %v", err)
		}
		got, _ := svc.GetByKey(ctx, lic.LicenseKey)
		if !got.Active {
			t.Error("expected license to be active again")
		}
	})

	t.Run("missing key updates zero rows without error", func(t *testing.T) {
		n, err := svc.SetActive(ctx, "STOX-GONE-GONE-GONE-GONE", false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if n != 0 {
			t.Errorf("expected 0 rows updated, got %d", n)
		}
	})
}

func TestBindMachineIfUnset(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	svc := license.NewService(db)

	lic, err := svc.Create(ctx, 30)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bound, err := svc.BindMachineIfUnset(ctx, lic.LicenseKey, "machine-1")
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if !bound {
		t.Fatal("expected first bind to win")
	}

	// Second bind must not overwrite
	bound, err = svc.BindMachineIfUnset(ctx, lic.LicenseKey, "machine-2")
	if err != nil {
		t.Fatalf("second bind: %v", err)
	}
	if bound {
		t.Fatal("expected second bind to lose")
	}

	got, _ := svc.GetByKey(ctx, lic.LicenseKey)
	if got.MachineID.String != "machine-1" {
		t.Errorf("expected machine-1 to stay bound, got %q", got.MachineID.String)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	svc := license.NewService(db)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, 30); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	licenses, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(licenses) != 3 {
		t.Fatalf("expected 3 licenses, got %d", len(licenses))
	}

	// Ordered by key
	for i := 1; i < len(licenses); i++ {
		if licenses[i-1].LicenseKey > licenses[i].LicenseKey {
			t.Errorf("list not ordered: %q before %q", licenses[i-1].LicenseKey, licenses[i].LicenseKey)
		}
	}
}
