package database

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

type SQLiteDatabase struct {
	db               *sql.DB
	connectionString string
}

func NewSQLiteDatabase(connectionString string) (DatabaseService, error) {
	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, err
	}

	// A single connection keeps the pragma below effective and makes
	// ":memory:" databases behave as one database instead of one per
	// pooled connection.
	db.SetMaxOpenConns(1)

	// Required for the checks table's ON DELETE CASCADE
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	return &SQLiteDatabase{
		db:               db,
		connectionString: connectionString,
	}, nil
}

func (s *SQLiteDatabase) CreateDatabase() (*sql.DB, error) {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS repositories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		url TEXT NOT NULL,
		stars INTEGER,
		forks INTEGER,
		last_updated TEXT,
		last_scraped TEXT,
		scrape_status TEXT
	)`)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS checks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		repo_id TEXT NOT NULL,
		category TEXT NOT NULL,
		check_name TEXT NOT NULL,
		status TEXT,
		timestamp TEXT,
		validation_errors TEXT,
		FOREIGN KEY(repo_id) REFERENCES repositories(id) ON DELETE CASCADE
	)`)
	if err != nil {
		return nil, err
	}

	return s.db, nil
}

func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteDatabase) DoesDatabaseExist() bool {
	// In SQLite, the database file is created when you connect to it.
	// So we can assume it exists if we can successfully ping the database.
	err := s.db.Ping()
	return err == nil
}

func (s *SQLiteDatabase) SaveRepository(repo *Repository) error {
	_, err := s.db.Exec(`INSERT INTO repositories
		(id, name, url, stars, forks, last_updated, last_scraped, scrape_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			url = excluded.url,
			stars = excluded.stars,
			forks = excluded.forks,
			last_updated = excluded.last_updated,
			last_scraped = excluded.last_scraped,
			scrape_status = excluded.scrape_status`,
		repo.ID, repo.Name, repo.URL, repo.Stars, repo.Forks,
		repo.LastUpdated, repo.LastScraped, repo.ScrapeStatus)
	return err
}

func (s *SQLiteDatabase) GetRepositoryByID(id string) (*Repository, error) {
	row := s.db.QueryRow(`SELECT id, name, url, stars, forks, last_updated, last_scraped, scrape_status
		FROM repositories WHERE id = ?`, id)

	var repo Repository
	if err := row.Scan(&repo.ID, &repo.Name, &repo.URL, &repo.Stars, &repo.Forks,
		&repo.LastUpdated, &repo.LastScraped, &repo.ScrapeStatus); err != nil {
		return nil, err
	}
	return &repo, nil
}

func (s *SQLiteDatabase) GetAllRepositories() ([]*Repository, error) {
	rows, err := s.db.Query(`SELECT id, name, url, stars, forks, last_updated, last_scraped, scrape_status
		FROM repositories`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close() // Explicitly ignore error as we're already returning an error from the function
	}()

	var repositories []*Repository
	for rows.Next() {
		var repo Repository
		if err := rows.Scan(&repo.ID, &repo.Name, &repo.URL, &repo.Stars, &repo.Forks,
			&repo.LastUpdated, &repo.LastScraped, &repo.ScrapeStatus); err != nil {
			return nil, err
		}
		repositories = append(repositories, &repo)
	}
	return repositories, rows.Err()
}

func (s *SQLiteDatabase) DeleteRepository(id string) error {
	_, err := s.db.Exec("DELETE FROM repositories WHERE id = ?", id)
	return err
}

func (s *SQLiteDatabase) SaveCheck(check *Check) (int64, error) {
	result, err := s.db.Exec(`INSERT INTO checks
		(repo_id, category, check_name, status, timestamp, validation_errors)
		VALUES (?, ?, ?, ?, ?, ?)`,
		check.RepositoryID, check.Category, check.CheckName,
		check.Status, check.Timestamp, check.ValidationErrors)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *SQLiteDatabase) GetChecksByRepository(repoID string) ([]*Check, error) {
	rows, err := s.db.Query(`SELECT id, repo_id, category, check_name, status, timestamp, validation_errors
		FROM checks WHERE repo_id = ?`, repoID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var checks []*Check
	for rows.Next() {
		var check Check
		if err := rows.Scan(&check.ID, &check.RepositoryID, &check.Category, &check.CheckName,
			&check.Status, &check.Timestamp, &check.ValidationErrors); err != nil {
			return nil, err
		}
		checks = append(checks, &check)
	}
	return checks, rows.Err()
}
