/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/dynadmin/datastore"
	"github.com/suparena/dynadmin/datastore/mock"
	"github.com/suparena/dynadmin/errors"
	"github.com/suparena/dynadmin/registry"
)

func TestListTables_HidesRegistry(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, mock.New())

	tables, err := m.ListTables(ctx)
	require.NoError(t, err)
	assert.Empty(t, tables)

	_, err = m.Register(ctx, petsDefinition())
	require.NoError(t, err)
	_, err = m.Register(ctx, ordersDefinition())
	require.NoError(t, err)

	tables, err = m.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Orders", "Pets"}, tables)
}

func TestDropTable(t *testing.T) {
	ctx := context.Background()
	b := mock.New()
	m := newManager(t, b)

	_, err := m.Register(ctx, petsDefinition())
	require.NoError(t, err)

	require.NoError(t, m.DropTable(ctx, "Pets"))
	exists, err := datastore.TableExists(ctx, b, "Pets")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = m.Get(ctx, "Pets")
	assert.NoError(t, err, "schema outlives its table")

	err = m.DropTable(ctx, "Pets")
	assert.True(t, errors.IsNotFound(err))

	err = m.DropTable(ctx, registry.RegistryTableName)
	assert.True(t, errors.IsValidationError(err))
}
