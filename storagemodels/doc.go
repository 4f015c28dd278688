/*
Package storagemodels defines the backend-neutral request types exchanged
between the registry, the record store and a datastore.Backend.

Key Types:

TableSpec:
Describes a physical table to provision:

	spec := TableSpec{
	    Name:          "Pets",
	    HashKey:       KeyAttribute{Name: "id", Type: KeyTypeNumber},
	    ReadCapacity:  5,
	    WriteCapacity: 5,
	}

ScanParams:
A full scan, optionally narrowed by OR-ed equality matches:

	params := &ScanParams{
	    TableName: "TableRegistry",
	    MatchAny:  map[string]any{"tableName": "Pets", "alias": "Pets"},
	}

UpdateParams:
A partial update that sets and removes attributes on one item:

	params := &UpdateParams{
	    TableName: "Orders",
	    Key:       Key{"id": 1},
	    Set:       map[string]any{"quantity": 5},
	    Remove:    []string{"qty"},
	}

Item values are plain Go values so the same records flow through the
DynamoDB backend and the in-memory mock without conversion by callers.
*/
package storagemodels
