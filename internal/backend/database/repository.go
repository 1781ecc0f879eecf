package database

// Repository mirrors one record of the JSONL backing file into SQLite so it
// can be queried without re-reading the whole file.
type Repository struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	URL          string `db:"url"`
	Stars        int    `db:"stars"`
	Forks        int    `db:"forks"`
	LastUpdated  string `db:"last_updated"` // timestamps kept as text, matching the source records
	LastScraped  string `db:"last_scraped"`
	ScrapeStatus string `db:"scrape_status"`
}

// Check is a single analysis check outcome attached to a repository.
// Rows are deleted together with their repository.
type Check struct {
	ID               int64  `db:"id"`
	RepositoryID     string `db:"repo_id"`
	Category         string `db:"category"`
	CheckName        string `db:"check_name"`
	Status           string `db:"status"`
	Timestamp        string `db:"timestamp"`
	ValidationErrors string `db:"validation_errors"`
}
