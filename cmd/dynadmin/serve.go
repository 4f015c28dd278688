/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/suparena/dynadmin/internal/api"
	"github.com/suparena/dynadmin/internal/middleware"
	"github.com/suparena/dynadmin/schema"
)

func newServeCmd(d deps, rt *cliState) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listen != "" {
				rt.cfg.ListenAddr = listen
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()
			return serve(ctx, d, rt)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address, overrides LISTEN_ADDR")
	return cmd
}

func serve(ctx context.Context, d deps, rt *cliState) error {
	cfg, logger := rt.cfg, rt.logger

	app, err := newApp(ctx, d, rt)
	if err != nil {
		return err
	}

	var seed []schema.Definition
	if cfg.SchemaSeedFile != "" {
		seed, err = schema.LoadDefinitionsFile(cfg.SchemaSeedFile)
		if err != nil {
			return err
		}
	}
	if err := app.Bootstrap(ctx, seed); err != nil {
		return err
	}

	h := api.NewHandler(app.Schemas, app.Records, logger)
	srv := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: h.Routes(api.RouterConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			RateLimit: middleware.RateLimitConfig{
				RequestsPerSecond: cfg.RateLimitRPS,
				Burst:             cfg.RateLimitBurst,
			},
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("server listening", "addr", cfg.ListenAddr, "region", cfg.Region)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
