/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suparena/dynadmin"
)

func newVersionCmd(d deps) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := dynadmin.GetVersionInfo()
			if asJSON {
				enc := json.NewEncoder(d.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, _ = fmt.Fprintf(d.stdout, "dynadmin version %s\n", info.Version)
			_, _ = fmt.Fprintf(d.stdout, "Git commit: %s\n", info.GitCommit)
			_, _ = fmt.Fprintf(d.stdout, "Build date: %s\n", info.BuildDate)
			_, _ = fmt.Fprintf(d.stdout, "Go version: %s\n", info.GoVersion)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
