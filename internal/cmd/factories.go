package cmd

import (
	"context"
	"errors"
	"fmt"

	adapterstorage "keymirror/internal/adapters/storage"
	adaptertelemetry "keymirror/internal/adapters/telemetry"
	"keymirror/internal/logging"
	"keymirror/internal/ports"
	"keymirror/internal/services"
)

// errHistoryUnavailable is returned by history commands when the run
// database could not be opened
var errHistoryUnavailable = errors.New("run history is unavailable")

// ContainerOptions configures NewContainer
type ContainerOptions struct {
	// HomePath holds history.db; empty disables run history
	HomePath string
	Version  string
}

// Container holds all dependencies for the application
type Container struct {
	// Services
	CheckService   *services.CheckService
	HistoryService *services.HistoryService // nil when history is unavailable

	// Internal - for cleanup and per-command wiring
	runRepo   ports.RunRepository
	telemetry *adaptertelemetry.Provider
}

// NewContainer creates a new Container with all dependencies wired.
// A run database that cannot be opened is logged and leaves history
// disabled, since conversions must not fail because of it.
func NewContainer(opts ContainerOptions) (*Container, error) {
	provider, err := adaptertelemetry.NewProvider(context.Background(), opts.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	c := &Container{
		CheckService: services.NewCheckService(),
		telemetry:    provider,
	}

	if opts.HomePath != "" {
		runRepo, err := adapterstorage.NewSQLiteRepositoryForPath(opts.HomePath)
		if err != nil {
			logging.Logger.Warn("Run history disabled", "home", opts.HomePath, "error", err)
		} else {
			c.runRepo = runRepo
			c.HistoryService = services.NewHistoryService(runRepo)
		}
	}

	return c, nil
}

// NewKeymapService builds the conversion pipeline for one command.
// History is recorded only when recordHistory is set and the run database is open.
func (c *Container) NewKeymapService(remapper *services.Remapper, recordHistory bool, historyLimit int) *services.KeymapService {
	var runWriter ports.RunWriter
	if recordHistory && c.runRepo != nil {
		runWriter = c.runRepo
	}
	return services.NewKeymapService(remapper, runWriter, c.telemetry.Tracer(), historyLimit)
}

// History returns the history service or errHistoryUnavailable
func (c *Container) History() (*services.HistoryService, error) {
	if c.HistoryService == nil {
		return nil, errHistoryUnavailable
	}
	return c.HistoryService, nil
}

// Close flushes pending spans and closes the run database
func (c *Container) Close() error {
	var errs []error
	if c.telemetry != nil {
		if err := c.telemetry.Shutdown(context.Background()); err != nil {
			errs = append(errs, fmt.Errorf("failed to flush traces: %w", err))
		}
	}
	if c.runRepo != nil {
		if err := c.runRepo.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
