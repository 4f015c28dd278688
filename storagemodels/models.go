/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// Item is a single row as exchanged with a backend. Values are plain Go
// values: string, float64 for numbers, bool, nil, []any and map[string]any.
type Item map[string]any

// Key identifies one item; it holds only the table's key attributes.
type Key map[string]any

// KeyType is the scalar type of a key attribute.
type KeyType string

const (
	KeyTypeString KeyType = "S"
	KeyTypeNumber KeyType = "N"
)

// TableStatus mirrors the lifecycle states a managed table reports.
type TableStatus string

const (
	TableStatusCreating TableStatus = "CREATING"
	TableStatusActive   TableStatus = "ACTIVE"
	TableStatusUpdating TableStatus = "UPDATING"
	TableStatusDeleting TableStatus = "DELETING"
)

// KeyAttribute names a key attribute and its scalar type.
type KeyAttribute struct {
	Name string
	Type KeyType
}

// TableSpec describes a physical table to create.
type TableSpec struct {
	// Name is the physical table name.
	Name string
	// HashKey is the partition key.
	HashKey KeyAttribute
	// RangeKey is the optional sort key.
	RangeKey *KeyAttribute
	// ReadCapacity and WriteCapacity are provisioning hints; zero means
	// the backend picks on-demand billing.
	ReadCapacity  int64
	WriteCapacity int64
}

// PutParams defines a PutItem call.
type PutParams struct {
	TableName string
	Item      Item
	// IfNotExists makes the write conditional on no item existing with the
	// same value for this attribute (normally the hash key).
	IfNotExists string
}

// ScanParams defines a full-table scan with an optional equality filter.
type ScanParams struct {
	TableName string
	// MatchAny keeps only items where at least one of the listed
	// attributes equals the given value. Empty means no filter.
	MatchAny map[string]any
}

// UpdateParams defines a partial attribute update of one item.
type UpdateParams struct {
	TableName string
	Key       Key
	// Set assigns attributes; Remove deletes them.
	Set    map[string]any
	Remove []string
}
