package backup_test

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"stoxway.com/licserver/internal/backup"
	"stoxway.com/licserver/internal/license"
	"stoxway.com/licserver/internal/testutil"
)

func TestBackupService(t *testing.T) {
	ctx := context.Background()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	db := testutil.NewTestDBAt(t, dbPath)

	licSvc := license.NewService(db)
	lic, err := licSvc.Create(ctx, 30)
	if err != nil {
		t.Fatalf("create license: %v", err)
	}

	svc := backup.NewService(db, dbPath)
	result, err := svc.CreateBackup(ctx)
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}

	if !strings.HasSuffix(result.Filename, "_licdump.sql.gz") {
		t.Errorf("unexpected backup filename %q", result.Filename)
	}
	if result.Size <= 0 {
		t.Errorf("expected positive backup size, got %d", result.Size)
	}

	// Decompress and inspect the dump
	f, err := os.Open(result.Path)
	if err != nil {
		t.Fatalf("open backup: %v", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("open gzip: %v", err)
	}
	defer gz.Close()

	dump, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}

	// Schema text comes back from sqlite_master in whatever case the
	// migration scripts used
	if !strings.Contains(strings.ToLower(string(dump)), "create table") {
		t.Error("expected dump to contain schema definitions")
	}
	if !strings.Contains(string(dump), lic.LicenseKey) {
		t.Errorf("expected dump to contain license key %q", lic.LicenseKey)
	}
}
