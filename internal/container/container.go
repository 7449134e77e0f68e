package container

import (
	"context"
	"fmt"

	"motiflab/adapters/api"
	"motiflab/app"
	"motiflab/internal"
	"motiflab/internal/config"
	"motiflab/internal/metrics"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	AnalysisService *app.AnalysisService
	Server          *api.Server
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.NewLogger(internal.ParseLogLevel(cfg.Logging.Level)),
	}

	if cfg.Metrics.Enabled {
		metrics.Register()
	}

	c.AnalysisService = app.NewAnalysisService(cfg.Analysis, c.Logger)
	c.Server = api.NewServer(c.AnalysisService, c.Logger, cfg.Metrics.Enabled)

	c.Logger.Debug("container ready: %d workers, window %d, alpha %g",
		cfg.Analysis.Workers, cfg.Analysis.Window, cfg.Analysis.OverlapAlpha)
	return c, nil
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	// Sync fails on terminals for stdout/stderr sinks; nothing to recover there
	_ = c.Logger.Sync()
	return ctx.Err()
}
