// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

// testDB creates a migrated database in a temporary directory.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "aptms-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := testDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestCountActiveSessions(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	n, err := CountActiveSessions(ctx, db)
	if err != nil {
		t.Fatalf("CountActiveSessions: %v", err)
	}
	if n != 0 {
		t.Errorf("sessions = %d, want 0", n)
	}

	// One live session, one expired.
	_, err = db.ExecContext(ctx,
		`INSERT INTO sessions (token, data, expiry) VALUES
		 ('live', x'00', julianday('now', '+1 day')),
		 ('dead', x'00', julianday('now', '-1 day'))`)
	if err != nil {
		t.Fatalf("inserting sessions: %v", err)
	}

	n, err = CountActiveSessions(ctx, db)
	if err != nil {
		t.Fatalf("CountActiveSessions: %v", err)
	}
	if n != 1 {
		t.Errorf("sessions = %d, want 1", n)
	}
}

func TestNewDB_InvalidPath(t *testing.T) {
	if _, err := NewDB(filepath.Join(t.TempDir(), "missing", "dir", "x.db")); err == nil {
		t.Fatal("NewDB() in a missing directory should fail")
	}
}
