/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suparena/dynadmin/schema"
)

func newInitCmd(d deps, rt *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the schema registry table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd.Context(), d, rt)
			if err != nil {
				return err
			}
			if err := app.Bootstrap(cmd.Context(), nil); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(d.stdout, "registry table is ready")
			return nil
		},
	}
}

func newApplyCmd(d deps, rt *cliState) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Register the schemas of a YAML file",
		Long:  "Register every schema of a YAML file. Schemas that already exist are skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defs, err := schema.LoadDefinitionsFile(file)
			if err != nil {
				return err
			}
			app, err := newApp(cmd.Context(), d, rt)
			if err != nil {
				return err
			}
			if err := app.Schemas.Initialize(cmd.Context()); err != nil {
				return err
			}

			registered, skipped, err := app.Schemas.RegisterAll(cmd.Context(), defs)
			for _, name := range registered {
				_, _ = fmt.Fprintf(d.stdout, "registered %s\n", name)
			}
			for _, name := range skipped {
				_, _ = fmt.Fprintf(d.stdout, "skipped %s (already registered)\n", name)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML schema file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
