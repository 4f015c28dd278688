/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/dynadmin/storagemodels"
)

// Backend is the capability set of a managed NoSQL table store.
//
// Implementations translate their native failures into the sentinels of the
// errors package: ErrTableInUse from CreateTable, ErrTableNotFound for any
// operation addressing a missing table and ErrConditionFailed when a
// conditional put is rejected.
type Backend interface {
	CreateTable(ctx context.Context, spec storagemodels.TableSpec) error

	DescribeTable(ctx context.Context, tableName string) (storagemodels.TableStatus, error)

	DeleteTable(ctx context.Context, tableName string) error

	ListTables(ctx context.Context) ([]string, error)

	PutItem(ctx context.Context, params *storagemodels.PutParams) error

	// GetItem returns nil, nil when no item has the key.
	GetItem(ctx context.Context, tableName string, key storagemodels.Key) (storagemodels.Item, error)

	Scan(ctx context.Context, params *storagemodels.ScanParams) ([]storagemodels.Item, error)

	UpdateItem(ctx context.Context, params *storagemodels.UpdateParams) error

	DeleteItem(ctx context.Context, tableName string, key storagemodels.Key) error
}
