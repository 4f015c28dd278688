/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"encoding/json"
	"fmt"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/dynadmin/storagemodels"
)

// Registry item attribute names.
const (
	AttrTableName  = "tableName"
	AttrAlias      = "alias"
	AttrFieldOrder = "fieldOrder"
)

// SchemaRecord describes the shape of one user-defined table.
type SchemaRecord struct {
	TableName   string          `json:"tableName"`
	Alias       string          `json:"alias"`
	Fields      FieldMap        `json:"fields"`
	CreatedAt   strfmt.DateTime `json:"createdAt"`
	LastUpdated strfmt.DateTime `json:"lastUpdated"`
}

// Key returns the registry key of the record.
func (r SchemaRecord) Key() storagemodels.Key {
	return storagemodels.Key{AttrTableName: r.TableName, AttrAlias: r.Alias}
}

// ToItem converts the record to its registry item. Backends do not keep map
// order, so the field order is stored alongside as a list.
func (r SchemaRecord) ToItem() (storagemodels.Item, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema %s: %w", r.TableName, err)
	}
	var item storagemodels.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to encode schema %s: %w", r.TableName, err)
	}

	order := make([]any, 0, r.Fields.Len())
	for _, name := range r.Fields.names {
		order = append(order, name)
	}
	item[AttrFieldOrder] = order
	return item, nil
}

// FromItem decodes a registry item.
func FromItem(item storagemodels.Item) (SchemaRecord, error) {
	var rec SchemaRecord
	data, err := json.Marshal(item)
	if err != nil {
		return rec, fmt.Errorf("failed to decode schema item: %w", err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("failed to decode schema item: %w", err)
	}

	if raw, ok := item[AttrFieldOrder].([]any); ok {
		order := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				order = append(order, s)
			}
		}
		rec.Fields.reorder(order)
	}
	return rec, nil
}
