/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"

	daerrors "github.com/suparena/dynadmin/errors"
)

// ListTables returns the physical tables of the account, without the
// registry table itself.
func (m *Manager) ListTables(ctx context.Context) ([]string, error) {
	names, err := m.backend.ListTables(ctx)
	if err != nil {
		return nil, daerrors.WrapRegistryError("list tables", err)
	}
	tables := make([]string, 0, len(names))
	for _, name := range names {
		if name != RegistryTableName {
			tables = append(tables, name)
		}
	}
	return tables, nil
}

// DropTable deletes a physical record table. Its schema, if any, stays
// registered until Delete is called.
func (m *Manager) DropTable(ctx context.Context, tableName string) error {
	if tableName == RegistryTableName {
		return daerrors.NewValidationError("tableName", "the registry table cannot be dropped")
	}
	if err := m.backend.DeleteTable(ctx, tableName); err != nil {
		if daerrors.IsTableNotFound(err) {
			return daerrors.NewNotFoundError("table", tableName)
		}
		return daerrors.WrapRegistryError("drop table", err)
	}
	m.logger.Info("table dropped", "table", tableName)
	return nil
}
