package models

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"eventapi/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqldb, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })
	if err := db.CreateTables(sqldb); err != nil {
		t.Fatalf("create tables: %v", err)
	}
	return sqldb
}

func seedUser(t *testing.T, sqldb *sql.DB, email string) int64 {
	t.Helper()
	res, err := sqldb.Exec(
		`INSERT INTO users (email, password, created_at) VALUES (?, ?, ?)`,
		email, "x", "2024-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func str(s string) *string { return &s }

func TestEventRepo_CreateAndGetRoundtrip(t *testing.T) {
	sqldb := openTestDB(t)
	repo := NewSQLEventRepository(sqldb)
	owner := seedUser(t, sqldb, "owner@example.com")

	e := Event{
		Title:       "Meetup",
		Description: "desc",
		Address:     "123 Main St",
		Date:        str("2025-01-01T00:00:00Z"),
		CreatedAt:   "2024-06-01T00:00:00Z",
		OwnerID:     owner,
		Image:       nil,
	}
	if err := repo.Create(&e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.ID <= 0 {
		t.Fatalf("want positive id, got %d", e.ID)
	}

	got, err := repo.GetByID(e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != e.Title || got.Description != e.Description || got.Address != e.Address ||
		got.CreatedAt != e.CreatedAt || got.OwnerID != e.OwnerID {
		t.Fatalf("roundtrip mismatch: %+v vs %+v", got, e)
	}
	if got.Date == nil || *got.Date != *e.Date {
		t.Fatalf("date mismatch: %v", got.Date)
	}
	if got.Image != nil {
		t.Fatalf("image should be null, got %v", *got.Image)
	}
}

func TestEventRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLEventRepository(openTestDB(t))

	_, err := repo.GetByID(12345)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestEventRepo_GetAll_NullDatesSortLast(t *testing.T) {
	sqldb := openTestDB(t)
	repo := NewSQLEventRepository(sqldb)
	owner := seedUser(t, sqldb, "owner@example.com")

	mk := func(title string, date *string) {
		e := Event{Title: title, Description: "d", Address: "a", Date: date, CreatedAt: "2024-01-01T00:00:00Z", OwnerID: owner}
		if err := repo.Create(&e); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}
	mk("undated", nil)
	mk("later", str("2024-01-01T00:00:00Z"))
	mk("earlier", str("2023-06-15T00:00:00Z"))

	events, err := repo.GetAll()
	if err != nil {
		t.Fatalf("getall: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("want 3 events, got %d", len(events))
	}
	if events[0].Title != "earlier" || events[1].Title != "later" || events[2].Title != "undated" {
		order := []string{events[0].Title, events[1].Title, events[2].Title}
		t.Fatalf("wrong order: %v", order)
	}
}

func TestEventRepo_UpdateWritesMutableColumnsOnly(t *testing.T) {
	sqldb := openTestDB(t)
	repo := NewSQLEventRepository(sqldb)
	owner := seedUser(t, sqldb, "owner@example.com")

	e := Event{Title: "t", Description: "d", Address: "a", CreatedAt: "2024-01-01T00:00:00Z", OwnerID: owner}
	if err := repo.Create(&e); err != nil {
		t.Fatalf("create: %v", err)
	}

	e.Title = "t2"
	e.Date = str("2025-02-02T00:00:00Z")
	e.OwnerID = 999 // must not be written
	if err := repo.Update(&e); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "t2" || got.Date == nil || *got.Date != "2025-02-02T00:00:00Z" {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.OwnerID != owner {
		t.Fatalf("owner_id must be immutable, got %d", got.OwnerID)
	}
}

func TestEventRepo_Update_NotFound(t *testing.T) {
	repo := NewSQLEventRepository(openTestDB(t))

	err := repo.Update(&Event{ID: 777, Title: "x", Description: "y", Address: "z"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestEventRepo_Delete(t *testing.T) {
	sqldb := openTestDB(t)
	repo := NewSQLEventRepository(sqldb)
	owner := seedUser(t, sqldb, "owner@example.com")

	e := Event{Title: "t", Description: "d", Address: "a", CreatedAt: "2024-01-01T00:00:00Z", OwnerID: owner}
	if err := repo.Create(&e); err != nil {
		t.Fatalf("create: %v", err)
	}

	removed, err := repo.Delete(e.ID)
	if err != nil || !removed {
		t.Fatalf("delete: removed=%v err=%v", removed, err)
	}
	removed, err = repo.Delete(e.ID)
	if err != nil || removed {
		t.Fatalf("second delete should remove nothing: removed=%v err=%v", removed, err)
	}
}

func TestEventRepo_DeleteWithRegistrationsOrphansLedger(t *testing.T) {
	sqldb := openTestDB(t)
	events := NewSQLEventRepository(sqldb)
	regs := NewSQLRegistrationRepository(sqldb)
	owner := seedUser(t, sqldb, "owner@example.com")
	attendee := seedUser(t, sqldb, "attendee@example.com")

	e := Event{Title: "t", Description: "d", Address: "a", CreatedAt: "2024-01-01T00:00:00Z", OwnerID: owner}
	if err := events.Create(&e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := regs.Register(e.ID, attendee); err != nil {
		t.Fatalf("register: %v", err)
	}

	removed, err := events.Delete(e.ID)
	if err != nil || !removed {
		t.Fatalf("delete with registrations: removed=%v err=%v", removed, err)
	}

	// The ledger row outlives the event.
	var count int
	if err := sqldb.QueryRow(`SELECT COUNT(*) FROM registrations WHERE event_id = ?`, e.ID).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("want 1 orphaned registration row, got %d", count)
	}
}
