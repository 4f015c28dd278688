/*
Package datastore defines the storage backend capability interface used by
the schema registry and the dynamic record store.

The main interface is Backend:

	type Backend interface {
	    CreateTable(ctx context.Context, spec storagemodels.TableSpec) error
	    DescribeTable(ctx context.Context, tableName string) (storagemodels.TableStatus, error)
	    DeleteTable(ctx context.Context, tableName string) error
	    ListTables(ctx context.Context) ([]string, error)
	    PutItem(ctx context.Context, params *storagemodels.PutParams) error
	    GetItem(ctx context.Context, tableName string, key storagemodels.Key) (storagemodels.Item, error)
	    Scan(ctx context.Context, params *storagemodels.ScanParams) ([]storagemodels.Item, error)
	    UpdateItem(ctx context.Context, params *storagemodels.UpdateParams) error
	    DeleteItem(ctx context.Context, tableName string, key storagemodels.Key) error
	}

Implementations:
  - ddb: DynamoDB implementation on aws-sdk-go-v2
  - mock: In-memory implementation for testing

EnsureTable and WaitForActive implement idempotent provisioning: create,
treat "already in use" as success, then poll until ACTIVE within a bounded
attempt budget.
*/
package datastore
