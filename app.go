/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dynadmin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/suparena/dynadmin/datastore"
	"github.com/suparena/dynadmin/records"
	"github.com/suparena/dynadmin/registry"
	"github.com/suparena/dynadmin/schema"
)

// App bundles one backend with the schema registry and the record store
// that share it.
type App struct {
	Backend datastore.Backend
	Schemas *registry.Manager
	Records *records.Store

	logger *slog.Logger
}

// Options configures New.
type Options struct {
	Logger *slog.Logger
	Wait   []datastore.WaitOption
}

// New wires a registry manager and a record store onto backend.
func New(backend datastore.Backend, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	wait := append([]datastore.WaitOption{datastore.WithLogger(logger)}, opts.Wait...)

	return &App{
		Backend: backend,
		Schemas: registry.NewManager(backend,
			registry.WithLogger(logger),
			registry.WithWaitOptions(wait...),
		),
		Records: records.NewStore(backend,
			records.WithLogger(logger),
			records.WithWaitOptions(wait...),
		),
		logger: logger,
	}
}

// Bootstrap provisions the registry table and registers seed definitions
// that are not registered yet.
func (a *App) Bootstrap(ctx context.Context, seed []schema.Definition) error {
	if err := a.Schemas.Initialize(ctx); err != nil {
		return err
	}
	if len(seed) == 0 {
		return nil
	}

	registered, skipped, err := a.Schemas.RegisterAll(ctx, seed)
	if err != nil {
		return fmt.Errorf("seed schemas: %w", err)
	}
	a.logger.Info("seeded schemas", "registered", registered, "skipped", skipped)
	return nil
}
