package database

import "database/sql"

type DatabaseService interface {
	CreateDatabase() (*sql.DB, error)
	DoesDatabaseExist() bool
	Close() error

	// SaveRepository inserts a new repository row or updates the existing one
	// with the same id, mirroring a record from the JSONL backing file.
	SaveRepository(repo *Repository) error
	GetRepositoryByID(id string) (*Repository, error)
	GetAllRepositories() ([]*Repository, error)
	DeleteRepository(id string) error

	SaveCheck(check *Check) (int64, error)
	GetChecksByRepository(repoID string) ([]*Check, error)
}
