package backend

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jo-hoe/repolizer/internal/core"
)

type APIService struct {
	config      *core.ServiceConfig
	coreService *core.CoreService
}

func NewAPIService(config *core.ServiceConfig, coreService *core.CoreService) *APIService {
	return &APIService{
		config:      config,
		coreService: coreService,
	}
}

func (s *APIService) SetRoutes(e *echo.Echo) {
	e.GET("/probe", s.probeHandler)

	api := e.Group("/api")
	api.GET("/repositories", s.listRepositoriesHandler)
	api.GET("/repositories/:id", s.getRepositoryHandler)
	api.GET("/repositories/:id/results", s.getResultsHandler)
	api.PUT("/repositories/:id/results", s.saveResultsHandler)
	api.POST("/sync", s.syncDatabaseHandler)
}

func (s *APIService) probeHandler(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "API Service is running")
}

func (s *APIService) listRepositoriesHandler(ctx echo.Context) error {
	repositories := s.coreService.ListRepositories(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, repositories)
}

func (s *APIService) getRepositoryHandler(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return ctx.String(http.StatusBadRequest, "Missing repository ID")
	}

	repository, found := s.coreService.GetRepository(ctx.Request().Context(), id)
	if !found {
		slog.Warn("getRepositoryHandler: repository not found",
			"status", http.StatusNotFound, "repository_id", id)
		return ctx.String(http.StatusNotFound, "Repository not found")
	}
	return ctx.JSON(http.StatusOK, repository)
}

func (s *APIService) getResultsHandler(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return ctx.String(http.StatusBadRequest, "Missing repository ID")
	}

	results, found := s.coreService.GetResults(id)
	if !found {
		slog.Warn("getResultsHandler: results not found",
			"status", http.StatusNotFound, "repository_id", id)
		return ctx.String(http.StatusNotFound, "Results not found")
	}
	return ctx.JSON(http.StatusOK, results)
}

func (s *APIService) saveResultsHandler(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return ctx.String(http.StatusBadRequest, "Missing repository ID")
	}

	var results map[string]any
	if err := ctx.Bind(&results); err != nil {
		slog.Warn("saveResultsHandler: invalid request body",
			"status", http.StatusBadRequest, "repository_id", id, "error", err)
		return ctx.String(http.StatusBadRequest, "Request body must be a JSON object")
	}

	if err := s.coreService.SaveResults(id, results); err != nil {
		slog.Error("saveResultsHandler: failed to save results",
			"status", http.StatusInternalServerError, "repository_id", id, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to save results")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *APIService) syncDatabaseHandler(ctx echo.Context) error {
	count, err := s.coreService.SyncDatabase(ctx.Request().Context())
	if err != nil {
		slog.Error("syncDatabaseHandler: sync failed",
			"status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to sync database")
	}
	return ctx.JSON(http.StatusOK, map[string]int{"synced": count})
}
