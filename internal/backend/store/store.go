package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// maxRecordBytes bounds the size of a single JSONL record.
const maxRecordBytes = 4 * 1024 * 1024

// Repository is one record from the backing JSONL file. Only the "id" field
// has meaning to the store; all other fields pass through opaquely.
type Repository map[string]any

// Store provides read access to the repository list and create/read access to
// per-repository analysis results. The backing JSONL file is never written
// through the store.
type Store struct {
	backingFile string
	resultsDir  string
}

// NewStore creates a store over the given backing JSONL file and results
// directory. Both paths are explicit; nothing is derived from the working
// directory.
func NewStore(backingFile, resultsDir string) *Store {
	return &Store{
		backingFile: backingFile,
		resultsDir:  resultsDir,
	}
}

// LoadRepositories reads every record from the backing file, preserving file
// order. A missing file yields an empty list. A parse or read error mid-file
// yields the records accumulated before the failure.
func (s *Store) LoadRepositories() []Repository {
	repositories := []Repository{}

	file, err := os.Open(s.backingFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("repositories file not found", "path", s.backingFile)
		} else {
			slog.Error("failed to open repositories file", "path", s.backingFile, "error", err)
		}
		return repositories
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			slog.Error("failed to close repositories file", "path", s.backingFile, "error", cerr)
		}
	}()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var repo Repository
		if err := json.Unmarshal(raw, &repo); err != nil {
			slog.Error("failed to parse repository record",
				"path", s.backingFile, "line", line, "error", err)
			return repositories
		}
		repositories = append(repositories, repo)
	}
	if err := scanner.Err(); err != nil {
		slog.Error("failed to read repositories file", "path", s.backingFile, "error", err)
	}
	return repositories
}

// GetRepositoryByID re-reads the backing file and returns the first record
// whose "id" field equals id. The second return value reports whether a match
// was found.
func (s *Store) GetRepositoryByID(id string) (Repository, bool) {
	for _, repo := range s.LoadRepositories() {
		if got, ok := repo["id"].(string); ok && got == id {
			return repo, true
		}
	}
	return nil, false
}

// SaveResults persists results as <id>.json in the results directory,
// replacing any previous content for that id. The id is not required to
// appear in the backing file.
func (s *Store) SaveResults(id string, results map[string]any) error {
	if err := os.MkdirAll(s.resultsDir, 0755); err != nil {
		slog.Error("failed to create results directory", "path", s.resultsDir, "error", err)
		return fmt.Errorf("failed to create results directory %s: %w", s.resultsDir, err)
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		slog.Error("failed to serialize results", "repository_id", id, "error", err)
		return fmt.Errorf("failed to serialize results for %s: %w", id, err)
	}

	path := s.resultsPath(id)
	if err := os.WriteFile(path, data, 0644); err != nil {
		slog.Error("failed to save results", "repository_id", id, "path", path, "error", err)
		return fmt.Errorf("failed to save results for %s: %w", id, err)
	}
	return nil
}

// GetResults loads the saved results blob for id. The second return value is
// false when no results file exists or its content cannot be parsed.
func (s *Store) GetResults(id string) (map[string]any, bool) {
	path := s.resultsPath(id)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Error("failed to read results", "repository_id", id, "path", path, "error", err)
		}
		return nil, false
	}

	var results map[string]any
	if err := json.Unmarshal(data, &results); err != nil {
		slog.Error("failed to parse results", "repository_id", id, "path", path, "error", err)
		return nil, false
	}
	return results, true
}

func (s *Store) resultsPath(id string) string {
	return filepath.Join(s.resultsDir, id+".json")
}
