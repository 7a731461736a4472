package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/tbarantsev/email-insights/internal/config"
	"github.com/tbarantsev/email-insights/internal/core/ports"
	"github.com/tbarantsev/email-insights/internal/core/usecase"
	"github.com/tbarantsev/email-insights/internal/infrastructure/cache/memory"
	"github.com/tbarantsev/email-insights/internal/infrastructure/resilience"
	"github.com/tbarantsev/email-insights/internal/infrastructure/source"
	"github.com/tbarantsev/email-insights/internal/infrastructure/source/csvhttp"
	"github.com/tbarantsev/email-insights/internal/infrastructure/source/sheets"
	"github.com/tbarantsev/email-insights/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Snapshots ports.SnapshotProvider
	Dashboard ports.DashboardService
	Metrics   *metrics.HTTPServerMetrics

	RefreshInterval time.Duration
}

// New wires the snapshot pipeline for the API process. The pipeline metrics
// join the HTTP registry so one /metrics endpoint serves both.
func New(cfg config.Config) (*App, error) {
	if cfg.SourceURL == "" {
		return nil, errors.New("SOURCE_URL is required")
	}

	schema, err := config.LoadSchema(cfg.SchemaFile)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	httpMetrics := metrics.NewHTTPServerMetrics("api")
	pipelineMetrics := metrics.NewPipelineMetrics("api", httpMetrics.Registry())

	executor := resilience.NewExecutor(resilience.DefaultConfig(), source.ClassifyError)
	fetchTimeout := time.Duration(cfg.FetchTimeoutSeconds) * time.Second

	primary := sheets.New(cfg.SourceURL, cfg.SourceWorksheet, cfg.SourceAPIKey, fetchTimeout, executor)

	var fallback ports.TableSource
	if cfg.SourceFallbackCSVURL != "" {
		fallback = csvhttp.New(cfg.SourceFallbackCSVURL, cfg.SourceAPIKey, fetchTimeout, executor)
	}

	cache := memory.New(time.Duration(cfg.CacheTTLSeconds) * time.Second)
	normalizer := usecase.NewNormalizer(schema)
	snapshots := usecase.NewSnapshotUseCase(primary, fallback, cache, normalizer, pipelineMetrics)

	return &App{
		Config:          cfg,
		Snapshots:       snapshots,
		Dashboard:       usecase.NewDashboardUseCase(snapshots),
		Metrics:         httpMetrics,
		RefreshInterval: time.Duration(cfg.RefreshIntervalSeconds) * time.Second,
	}, nil
}
