/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/dynadmin"
	"github.com/suparena/dynadmin/datastore"
	"github.com/suparena/dynadmin/datastore/mock"
	"github.com/suparena/dynadmin/internal/config"
	"github.com/suparena/dynadmin/registry"
)

const seedYAML = `schemas:
  - tableName: Pets
    alias: Animals
    fields:
      name: {type: string, required: true}
      age: {type: number}
`

func testDeps(b *mock.Backend) (deps, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return deps{
		connect: func(context.Context, *config.Config) (datastore.Backend, error) {
			return b, nil
		},
		stdout: &stdout,
		stderr: &stderr,
	}, &stdout, &stderr
}

func setTestEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("LOG_LEVEL", "error")
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestVersionCommand(t *testing.T) {
	d, stdout, _ := testDeps(mock.New())

	require.Equal(t, 0, execute([]string{"version"}, d))
	assert.Contains(t, stdout.String(), "dynadmin version "+dynadmin.Version)

	stdout.Reset()
	require.Equal(t, 0, execute([]string{"version", "--json"}, d))
	var info dynadmin.VersionInfo
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &info))
	assert.Equal(t, dynadmin.Version, info.Version)
}

func TestInitCommand(t *testing.T) {
	envFile := setTestEnv(t)
	b := mock.New()
	d, stdout, stderr := testDeps(b)

	require.Equal(t, 0, execute([]string{"init", "--env-file", envFile}, d), stderr.String())
	assert.Contains(t, stdout.String(), "registry table is ready")

	exists, err := datastore.TableExists(context.Background(), b, registry.RegistryTableName)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestApplyCommand(t *testing.T) {
	envFile := setTestEnv(t)
	file := filepath.Join(t.TempDir(), "schemas.yaml")
	require.NoError(t, os.WriteFile(file, []byte(seedYAML), 0o600))

	b := mock.New()
	d, stdout, stderr := testDeps(b)

	require.Equal(t, 0, execute([]string{"apply", "-f", file, "--env-file", envFile}, d), stderr.String())
	assert.Contains(t, stdout.String(), "registered Pets")
	assert.Equal(t, 1, b.Count(registry.RegistryTableName))

	exists, err := datastore.TableExists(context.Background(), b, "Pets")
	require.NoError(t, err)
	assert.True(t, exists)

	stdout.Reset()
	require.Equal(t, 0, execute([]string{"apply", "-f", file, "--env-file", envFile}, d), stderr.String())
	assert.Contains(t, stdout.String(), "skipped Pets (already registered)")
	assert.Equal(t, 1, b.Count(registry.RegistryTableName))
}

func TestApplyCommand_RequiresFile(t *testing.T) {
	envFile := setTestEnv(t)
	d, _, stderr := testDeps(mock.New())

	assert.Equal(t, 1, execute([]string{"apply", "--env-file", envFile}, d))
	assert.Contains(t, stderr.String(), "file")
}

func TestInvalidConfiguration(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "missing.env")
	t.Setenv("AWS_REGION", "")
	t.Setenv("REGION", "")
	d, _, stderr := testDeps(mock.New())

	assert.Equal(t, 1, execute([]string{"init", "--env-file", envFile}, d))
	assert.Contains(t, stderr.String(), "invalid configuration")
}

func TestEnvFileIsLoaded(t *testing.T) {
	// godotenv never overrides variables that are already set.
	for _, key := range []string{"AWS_REGION", "REGION", "LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("AWS_REGION=eu-west-1\nLOG_LEVEL=error\n"), 0o600))

	d, _, stderr := testDeps(mock.New())
	assert.Equal(t, 0, execute([]string{"init", "--env-file", envFile}, d), stderr.String())
}
