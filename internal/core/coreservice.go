package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jo-hoe/repolizer/internal/backend/database"
	"github.com/jo-hoe/repolizer/internal/backend/store"
)

// CoreService bundles the file-backed repository store with its optional
// collaborators: a Redis list cache and a SQLite mirror for querying.
type CoreService struct {
	config          *ServiceConfig
	store           *store.Store
	cachedStore     *store.CachedStore
	redisClient     *redis.Client
	databaseService database.DatabaseService
}

func NewCoreService(config *ServiceConfig) *CoreService {
	service := &CoreService{
		config: config,
		store:  store.NewStore(config.Storage.RepositoriesFile, config.Storage.ResultsDir),
	}

	if config.Cache.Enabled {
		service.redisClient = redis.NewClient(&redis.Options{Addr: config.Cache.Address})
		ttl := time.Duration(config.Cache.TTLSeconds) * time.Second
		service.cachedStore = store.NewCachedStore(service.store, service.redisClient, ttl)
		slog.Info("repository list cache enabled", "address", config.Cache.Address)
	}

	if config.Database.Type != "" {
		databaseService, err := database.NewDatabase(config.Database.Type, config.Database.ConnectionString)
		if err != nil {
			slog.Error("failed to initialize database service", "error", err)
			panic(err)
		}
		slog.Info("database initialized successfully", "type", config.Database.Type)
		service.databaseService = databaseService
	}

	return service
}

// ListRepositories returns all records from the backing file, through the
// cache when one is configured.
func (service *CoreService) ListRepositories(ctx context.Context) []store.Repository {
	if service.cachedStore != nil {
		return service.cachedStore.LoadRepositories(ctx)
	}
	return service.store.LoadRepositories()
}

// GetRepository returns the record with the given id, through the cache when
// one is configured.
func (service *CoreService) GetRepository(ctx context.Context, id string) (store.Repository, bool) {
	if service.cachedStore != nil {
		return service.cachedStore.GetRepositoryByID(ctx, id)
	}
	return service.store.GetRepositoryByID(id)
}

// SaveResults persists an analysis results blob for the given repository id.
func (service *CoreService) SaveResults(id string, results map[string]any) error {
	return service.store.SaveResults(id, results)
}

// GetResults loads the analysis results blob for the given repository id.
func (service *CoreService) GetResults(id string) (map[string]any, bool) {
	return service.store.GetResults(id)
}

// InvalidateCache drops the cached repository list, if caching is enabled.
func (service *CoreService) InvalidateCache(ctx context.Context) {
	if service.cachedStore != nil {
		service.cachedStore.Invalidate(ctx)
	}
}

// SyncDatabase mirrors every record of the backing file into the SQLite
// index, upserting by id. Returns the number of records written.
func (service *CoreService) SyncDatabase(ctx context.Context) (int, error) {
	if service.databaseService == nil {
		return 0, fmt.Errorf("no database configured")
	}

	count := 0
	for _, repo := range service.ListRepositories(ctx) {
		id := repo.ID()
		if id == "" {
			slog.Warn("skipping record without id during database sync")
			continue
		}
		row := &database.Repository{
			ID:           id,
			Name:         repo.GetStringField("name", ""),
			URL:          repo.GetStringField("url", ""),
			Stars:        repo.GetIntField("stars", 0),
			Forks:        repo.GetIntField("forks", 0),
			LastUpdated:  repo.GetStringField("last_updated", ""),
			LastScraped:  repo.GetStringField("last_scraped", ""),
			ScrapeStatus: repo.GetStringField("scrape_status", ""),
		}
		if err := service.databaseService.SaveRepository(row); err != nil {
			return count, fmt.Errorf("failed to sync repository %s: %w", id, err)
		}
		count++
	}
	return count, nil
}

// Database exposes the SQLite index, or nil when none is configured.
func (service *CoreService) Database() database.DatabaseService {
	return service.databaseService
}

func (service *CoreService) Close() error {
	var firstErr error
	if service.redisClient != nil {
		if err := service.redisClient.Close(); err != nil {
			firstErr = err
		}
	}
	if service.databaseService != nil {
		if err := service.databaseService.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
