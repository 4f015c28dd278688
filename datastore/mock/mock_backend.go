/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.Backend for testing
package mock

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/suparena/dynadmin/errors"
	"github.com/suparena/dynadmin/storagemodels"
)

// Operation names a Backend method for error injection and call counting.
type Operation string

const (
	OpCreateTable   Operation = "CreateTable"
	OpDescribeTable Operation = "DescribeTable"
	OpDeleteTable   Operation = "DeleteTable"
	OpListTables    Operation = "ListTables"
	OpPutItem       Operation = "PutItem"
	OpGetItem       Operation = "GetItem"
	OpScan          Operation = "Scan"
	OpUpdateItem    Operation = "UpdateItem"
	OpDeleteItem    Operation = "DeleteItem"
)

type table struct {
	spec     storagemodels.TableSpec
	items    map[string]storagemodels.Item
	order    []string
	statuses []storagemodels.TableStatus
}

type injected struct {
	op    Operation
	table string
	err   error
	once  bool
}

// Backend is an in-memory datastore.Backend. Item values are normalised
// through the DynamoDB attribute value codec, so numbers read back as
// float64 exactly as they do from the real service.
type Backend struct {
	mu       sync.RWMutex
	tables   map[string]*table
	statuses map[string][]storagemodels.TableStatus
	errs     []injected
	calls    map[Operation]int
}

// New creates an empty mock Backend
func New() *Backend {
	return &Backend{
		tables:   make(map[string]*table),
		statuses: make(map[string][]storagemodels.TableStatus),
		calls:    make(map[Operation]int),
	}
}

// WithError makes op fail with err. An empty table name matches every table.
func (m *Backend) WithError(op Operation, tableName string, err error) *Backend {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, injected{op: op, table: tableName, err: err})
	return m
}

// WithErrorOnce makes the next op on tableName fail with err. Later calls
// succeed again.
func (m *Backend) WithErrorOnce(op Operation, tableName string, err error) *Backend {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, injected{op: op, table: tableName, err: err, once: true})
	return m
}

// WithPutError makes PutItem operations return an error
func (m *Backend) WithPutError(err error) *Backend {
	return m.WithError(OpPutItem, "", err)
}

// WithScanError makes Scan operations return an error
func (m *Backend) WithScanError(err error) *Backend {
	return m.WithError(OpScan, "", err)
}

// WithUpdateError makes UpdateItem operations return an error
func (m *Backend) WithUpdateError(err error) *Backend {
	return m.WithError(OpUpdateItem, "", err)
}

// WithDeleteError makes DeleteItem operations return an error
func (m *Backend) WithDeleteError(err error) *Backend {
	return m.WithError(OpDeleteItem, "", err)
}

// WithStatusSequence scripts the statuses DescribeTable reports for a table
// created afterwards. The last status sticks once the sequence is consumed.
func (m *Backend) WithStatusSequence(tableName string, statuses ...storagemodels.TableStatus) *Backend {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[tableName] = statuses
	return m
}

// ClearErrors removes every injected error
func (m *Backend) ClearErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = nil
}

// Calls returns how many times op was invoked
func (m *Backend) Calls(op Operation) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[op]
}

// Count returns the number of items stored in a table
func (m *Backend) Count(tableName string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[tableName]
	if !ok {
		return 0
	}
	return len(t.items)
}

// Seed writes items directly, creating the table with a numeric "id" hash
// key when it does not exist yet.
func (m *Backend) Seed(tableName string, items ...storagemodels.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[tableName]
	if !ok {
		t = newTable(storagemodels.TableSpec{
			Name:    tableName,
			HashKey: storagemodels.KeyAttribute{Name: "id", Type: storagemodels.KeyTypeNumber},
		}, nil)
		m.tables[tableName] = t
	}
	for _, item := range items {
		if err := t.put(item); err != nil {
			return err
		}
	}
	return nil
}

func newTable(spec storagemodels.TableSpec, statuses []storagemodels.TableStatus) *table {
	return &table{
		spec:     spec,
		items:    make(map[string]storagemodels.Item),
		statuses: statuses,
	}
}

// begin records the call and returns an injected error, if any. Callers hold m.mu.
func (m *Backend) begin(op Operation, tableName string) error {
	m.calls[op]++
	for i, e := range m.errs {
		if e.op == op && (e.table == "" || e.table == tableName) {
			if e.once {
				m.errs = append(m.errs[:i], m.errs[i+1:]...)
			}
			return e.err
		}
	}
	return nil
}

func (m *Backend) lookup(tableName string) (*table, error) {
	t, ok := m.tables[tableName]
	if !ok {
		return nil, fmt.Errorf("table %s: %w", tableName, errors.ErrTableNotFound)
	}
	return t, nil
}

// CreateTable registers a new empty table
func (m *Backend) CreateTable(ctx context.Context, spec storagemodels.TableSpec) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpCreateTable, spec.Name); err != nil {
		return err
	}
	if _, exists := m.tables[spec.Name]; exists {
		return fmt.Errorf("table %s: %w", spec.Name, errors.ErrTableInUse)
	}
	m.tables[spec.Name] = newTable(spec, m.statuses[spec.Name])
	return nil
}

// DescribeTable reports the scripted status, ACTIVE by default
func (m *Backend) DescribeTable(ctx context.Context, tableName string) (storagemodels.TableStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpDescribeTable, tableName); err != nil {
		return "", err
	}
	t, err := m.lookup(tableName)
	if err != nil {
		return "", err
	}
	if len(t.statuses) == 0 {
		return storagemodels.TableStatusActive, nil
	}
	status := t.statuses[0]
	if len(t.statuses) > 1 {
		t.statuses = t.statuses[1:]
	}
	return status, nil
}

// DeleteTable drops a table and its items
func (m *Backend) DeleteTable(ctx context.Context, tableName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpDeleteTable, tableName); err != nil {
		return err
	}
	if _, err := m.lookup(tableName); err != nil {
		return err
	}
	delete(m.tables, tableName)
	return nil
}

// ListTables returns table names in lexical order
func (m *Backend) ListTables(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpListTables, ""); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(m.tables))
	for name := range m.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// PutItem stores or replaces an item
func (m *Backend) PutItem(ctx context.Context, params *storagemodels.PutParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpPutItem, params.TableName); err != nil {
		return err
	}
	t, err := m.lookup(params.TableName)
	if err != nil {
		return err
	}
	if params.IfNotExists != "" {
		key, err := t.keyOf(params.Item)
		if err != nil {
			return err
		}
		if existing, ok := t.items[key]; ok {
			if _, has := existing[params.IfNotExists]; has {
				return fmt.Errorf("put %s: %w", params.TableName, errors.ErrConditionFailed)
			}
		}
	}
	return t.put(params.Item)
}

// GetItem returns a copy of the item or nil when absent
func (m *Backend) GetItem(ctx context.Context, tableName string, key storagemodels.Key) (storagemodels.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpGetItem, tableName); err != nil {
		return nil, err
	}
	t, err := m.lookup(tableName)
	if err != nil {
		return nil, err
	}
	k, err := t.keyOf(storagemodels.Item(key))
	if err != nil {
		return nil, err
	}
	item, ok := t.items[k]
	if !ok {
		return nil, nil
	}
	return copyItem(item), nil
}

// Scan returns copies of every matching item in insertion order
func (m *Backend) Scan(ctx context.Context, params *storagemodels.ScanParams) ([]storagemodels.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpScan, params.TableName); err != nil {
		return nil, err
	}
	t, err := m.lookup(params.TableName)
	if err != nil {
		return nil, err
	}

	var filter storagemodels.Item
	if len(params.MatchAny) > 0 {
		if filter, err = normalize(params.MatchAny); err != nil {
			return nil, err
		}
	}

	results := make([]storagemodels.Item, 0, len(t.items))
	for _, k := range t.order {
		item := t.items[k]
		if filter != nil && !matchesAny(item, filter) {
			continue
		}
		results = append(results, copyItem(item))
	}
	return results, nil
}

// UpdateItem applies SET and REMOVE to an item, creating it when absent
func (m *Backend) UpdateItem(ctx context.Context, params *storagemodels.UpdateParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpUpdateItem, params.TableName); err != nil {
		return err
	}
	t, err := m.lookup(params.TableName)
	if err != nil {
		return err
	}
	k, err := t.keyOf(storagemodels.Item(params.Key))
	if err != nil {
		return err
	}

	merged := storagemodels.Item{}
	if existing, ok := t.items[k]; ok {
		merged = copyItem(existing)
	} else {
		for name, v := range params.Key {
			merged[name] = v
		}
	}
	for name, v := range params.Set {
		merged[name] = v
	}
	for _, name := range params.Remove {
		delete(merged, name)
	}
	return t.put(merged)
}

// DeleteItem removes an item; deleting a missing key is not an error
func (m *Backend) DeleteItem(ctx context.Context, tableName string, key storagemodels.Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpDeleteItem, tableName); err != nil {
		return err
	}
	t, err := m.lookup(tableName)
	if err != nil {
		return err
	}
	k, err := t.keyOf(storagemodels.Item(key))
	if err != nil {
		return err
	}
	if _, ok := t.items[k]; !ok {
		return nil
	}
	delete(t.items, k)
	for i, existing := range t.order {
		if existing == k {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (t *table) put(item storagemodels.Item) error {
	normalized, err := normalize(item)
	if err != nil {
		return err
	}
	k, err := t.keyOf(normalized)
	if err != nil {
		return err
	}
	if _, exists := t.items[k]; !exists {
		t.order = append(t.order, k)
	}
	t.items[k] = normalized
	return nil
}

// keyOf encodes the key attributes of item as a map key
func (t *table) keyOf(item storagemodels.Item) (string, error) {
	attrs := []storagemodels.KeyAttribute{t.spec.HashKey}
	if t.spec.RangeKey != nil {
		attrs = append(attrs, *t.spec.RangeKey)
	}

	parts := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		v, ok := item[attr.Name]
		if !ok || v == nil {
			return "", errors.NewValidationError(attr.Name, "missing key attribute")
		}
		normalized, err := normalize(map[string]any{"v": v})
		if err != nil {
			return "", err
		}
		parts = append(parts, fmt.Sprintf("%v", normalized["v"]))
	}
	return strings.Join(parts, "|"), nil
}

func normalize(item map[string]any) (storagemodels.Item, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}
	var out map[string]any
	if err := attributevalue.UnmarshalMap(av, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return out, nil
}

func matchesAny(item, filter storagemodels.Item) bool {
	for name, want := range filter {
		if got, ok := item[name]; ok && reflect.DeepEqual(got, want) {
			return true
		}
	}
	return false
}

func copyItem(item storagemodels.Item) storagemodels.Item {
	out := make(storagemodels.Item, len(item))
	for k, v := range item {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, inner := range tv {
			out[k] = copyValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, inner := range tv {
			out[i] = copyValue(inner)
		}
		return out
	default:
		return v
	}
}
