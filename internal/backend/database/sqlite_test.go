package database

import (
	"database/sql"
	"errors"
	"testing"
)

func newTestDB(t *testing.T) DatabaseService {
	t.Helper()

	ds, err := NewSQLiteDatabase(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteDatabase error: %v", err)
	}
	_, err = ds.CreateDatabase()
	if err != nil {
		t.Fatalf("CreateDatabase error: %v", err)
	}
	t.Cleanup(func() { _ = ds.Close() })
	return ds
}

func TestSQLite_DoesDatabaseExist(t *testing.T) {
	ds := newTestDB(t)
	if !ds.DoesDatabaseExist() {
		t.Fatalf("expected DoesDatabaseExist to return true")
	}
}

func TestSQLite_SaveRepository_InsertAndUpdate(t *testing.T) {
	ds := newTestDB(t)

	repo := &Repository{
		ID:           "octocat/hello-world",
		Name:         "hello-world",
		URL:          "https://example.com/octocat/hello-world",
		Stars:        10,
		Forks:        2,
		ScrapeStatus: "pending",
	}
	if err := ds.SaveRepository(repo); err != nil {
		t.Fatalf("SaveRepository insert error: %v", err)
	}

	repo.Stars = 25
	repo.ScrapeStatus = "done"
	if err := ds.SaveRepository(repo); err != nil {
		t.Fatalf("SaveRepository update error: %v", err)
	}

	got, err := ds.GetRepositoryByID(repo.ID)
	if err != nil {
		t.Fatalf("GetRepositoryByID error: %v", err)
	}
	if got.Stars != 25 {
		t.Errorf("expected updated stars 25, got %d", got.Stars)
	}
	if got.ScrapeStatus != "done" {
		t.Errorf("expected updated status %q, got %q", "done", got.ScrapeStatus)
	}

	all, err := ds.GetAllRepositories()
	if err != nil {
		t.Fatalf("GetAllRepositories error: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 repository row after upsert, got %d", len(all))
	}
}

func TestSQLite_GetRepositoryByID_NotFound(t *testing.T) {
	ds := newTestDB(t)

	_, err := ds.GetRepositoryByID("missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestSQLite_Checks_SaveAndGet(t *testing.T) {
	ds := newTestDB(t)

	repo := &Repository{ID: "r1", Name: "r1", URL: "https://example.com/r1"}
	if err := ds.SaveRepository(repo); err != nil {
		t.Fatalf("SaveRepository error: %v", err)
	}

	id, err := ds.SaveCheck(&Check{
		RepositoryID: "r1",
		Category:     "security",
		CheckName:    "dependency_scanning",
		Status:       "passed",
	})
	if err != nil {
		t.Fatalf("SaveCheck error: %v", err)
	}
	if id <= 0 {
		t.Errorf("expected positive check id, got %d", id)
	}

	checks, err := ds.GetChecksByRepository("r1")
	if err != nil {
		t.Fatalf("GetChecksByRepository error: %v", err)
	}
	if len(checks) != 1 {
		t.Fatalf("expected 1 check, got %d", len(checks))
	}
	if checks[0].CheckName != "dependency_scanning" {
		t.Errorf("expected check name %q, got %q", "dependency_scanning", checks[0].CheckName)
	}
}

func TestSQLite_DeleteRepository_CascadesChecks(t *testing.T) {
	ds := newTestDB(t)

	if err := ds.SaveRepository(&Repository{ID: "r1", Name: "r1", URL: "u"}); err != nil {
		t.Fatalf("SaveRepository error: %v", err)
	}
	if _, err := ds.SaveCheck(&Check{RepositoryID: "r1", Category: "docs", CheckName: "readme"}); err != nil {
		t.Fatalf("SaveCheck error: %v", err)
	}

	if err := ds.DeleteRepository("r1"); err != nil {
		t.Fatalf("DeleteRepository error: %v", err)
	}

	checks, err := ds.GetChecksByRepository("r1")
	if err != nil {
		t.Fatalf("GetChecksByRepository error: %v", err)
	}
	if len(checks) != 0 {
		t.Errorf("expected checks removed with repository, got %d", len(checks))
	}
}

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	if _, err := NewDatabase("postgres", ""); err == nil {
		t.Error("Expected error for unsupported database driver")
	}
}
