/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/suparena/dynadmin"
	"github.com/suparena/dynadmin/datastore"
	"github.com/suparena/dynadmin/datastore/ddb"
	"github.com/suparena/dynadmin/internal/config"
)

// deps are the process-level collaborators a command needs. Tests swap
// connect for an in-memory backend.
type deps struct {
	connect func(ctx context.Context, cfg *config.Config) (datastore.Backend, error)
	stdout  io.Writer
	stderr  io.Writer
}

func defaultDeps() deps {
	return deps{
		connect: func(ctx context.Context, cfg *config.Config) (datastore.Backend, error) {
			return ddb.Connect(ctx, cfg.ClientConfig())
		},
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

func execute(args []string, d deps) int {
	rootCmd := newRootCmd(d)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(d.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// cliState is built by the root command before any subcommand runs.
type cliState struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd(d deps) *cobra.Command {
	var (
		envFile string
		rt      cliState
	)

	rootCmd := &cobra.Command{
		Use:           "dynadmin",
		Short:         "Dynamic CRUD admin backend for DynamoDB",
		Long:          "Serve the schema registry and record API, or manage schemas from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			rt.cfg = cfg
			rt.logger = cfg.NewLogger()
			return nil
		},
	}
	rootCmd.SetOut(d.stdout)
	rootCmd.SetErr(d.stderr)
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(newServeCmd(d, &rt))
	rootCmd.AddCommand(newInitCmd(d, &rt))
	rootCmd.AddCommand(newApplyCmd(d, &rt))
	rootCmd.AddCommand(newVersionCmd(d))

	return rootCmd
}

// newApp connects to the backend and wires the registry and store.
func newApp(ctx context.Context, d deps, rt *cliState) (*dynadmin.App, error) {
	backend, err := d.connect(ctx, rt.cfg)
	if err != nil {
		return nil, err
	}
	return dynadmin.New(backend, dynadmin.Options{
		Logger: rt.logger,
		Wait: []datastore.WaitOption{
			datastore.WithMaxAttempts(rt.cfg.TableWaitAttempts),
			datastore.WithInterval(rt.cfg.TableWaitInterval),
		},
	}), nil
}
