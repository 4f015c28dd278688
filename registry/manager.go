/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/dynadmin/datastore"
	daerrors "github.com/suparena/dynadmin/errors"
	"github.com/suparena/dynadmin/schema"
	"github.com/suparena/dynadmin/storagemodels"
)

// RegistryTableName is the physical table holding every SchemaRecord.
const RegistryTableName = "TableRegistry"

const defaultRenameConcurrency = 8

// Manager maintains the schema registry and the physical tables it describes.
// It holds no state besides its collaborators and is safe for concurrent use.
type Manager struct {
	backend           datastore.Backend
	logger            *slog.Logger
	waitOpts          []datastore.WaitOption
	now               func() time.Time
	renameConcurrency int
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithWaitOptions overrides table activation polling
func WithWaitOptions(opts ...datastore.WaitOption) Option {
	return func(m *Manager) {
		m.waitOpts = append(m.waitOpts, opts...)
	}
}

// WithClock sets the time source used for createdAt and lastUpdated
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithRenameConcurrency bounds the parallel item rewrites of RenameField
func WithRenameConcurrency(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.renameConcurrency = n
		}
	}
}

// NewManager creates a Manager over backend.
func NewManager(backend datastore.Backend, opts ...Option) *Manager {
	m := &Manager{
		backend:           backend,
		logger:            slog.Default(),
		now:               time.Now,
		renameConcurrency: defaultRenameConcurrency,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) timestamp() strfmt.DateTime {
	return strfmt.DateTime(m.now().UTC())
}

func (m *Manager) waitOptions() []datastore.WaitOption {
	opts := []datastore.WaitOption{datastore.WithLogger(m.logger)}
	return append(opts, m.waitOpts...)
}

func registryTableSpec() storagemodels.TableSpec {
	return storagemodels.TableSpec{
		Name:          RegistryTableName,
		HashKey:       storagemodels.KeyAttribute{Name: schema.AttrTableName, Type: storagemodels.KeyTypeString},
		RangeKey:      &storagemodels.KeyAttribute{Name: schema.AttrAlias, Type: storagemodels.KeyTypeString},
		ReadCapacity:  datastore.DefaultCapacity,
		WriteCapacity: datastore.DefaultCapacity,
	}
}

// Initialize ensures the registry table exists and is ACTIVE. It is
// idempotent.
func (m *Manager) Initialize(ctx context.Context) error {
	err := datastore.EnsureTable(ctx, m.backend, registryTableSpec(), m.waitOptions()...)
	return daerrors.WrapRegistryError("initialize registry", err)
}

// Register stores a new schema and provisions its record table. It fails
// with AlreadyExists when the table name already resolves through Get. A
// provisioning failure leaves the schema registered.
func (m *Manager) Register(ctx context.Context, def schema.Definition) (schema.SchemaRecord, error) {
	if def.TableName == "" {
		return schema.SchemaRecord{}, daerrors.NewValidationError(schema.AttrTableName, "tableName is required")
	}
	if def.TableName == RegistryTableName {
		return schema.SchemaRecord{}, daerrors.NewValidationError(schema.AttrTableName, "tableName is reserved")
	}
	if err := schema.ValidateFields(def.Fields); err != nil {
		return schema.SchemaRecord{}, err
	}

	_, err := m.Get(ctx, def.TableName)
	if err == nil {
		return schema.SchemaRecord{}, daerrors.NewAlreadyExistsError("schema", def.TableName)
	}
	if !daerrors.IsSchemaNotFound(err) {
		return schema.SchemaRecord{}, daerrors.WrapRegistryError("register schema", err)
	}

	alias := def.Alias
	if alias == "" {
		alias = def.TableName
	}
	now := m.timestamp()
	rec := schema.SchemaRecord{
		TableName:   def.TableName,
		Alias:       alias,
		Fields:      def.Fields.Clone(),
		CreatedAt:   now,
		LastUpdated: now,
	}

	if err := m.put(ctx, rec); err != nil {
		return schema.SchemaRecord{}, daerrors.WrapRegistryError("register schema", err)
	}
	m.logger.Info("schema registered", "table", rec.TableName, "alias", rec.Alias, "fields", rec.Fields.Len())

	spec := datastore.RecordTableSpec(rec.TableName)
	if err := datastore.EnsureTable(ctx, m.backend, spec, m.waitOptions()...); err != nil {
		m.logger.Error("failed to provision record table", "table", rec.TableName, "error", err)
		return rec, daerrors.WrapRegistryError("register schema", err)
	}
	return rec, nil
}

// RegisterAll registers each definition in order, skipping the ones that
// already exist. It stops at the first other failure.
func (m *Manager) RegisterAll(ctx context.Context, defs []schema.Definition) (registered, skipped []string, err error) {
	for _, def := range defs {
		_, err := m.Register(ctx, def)
		switch {
		case err == nil:
			registered = append(registered, def.TableName)
		case daerrors.IsAlreadyExists(err):
			skipped = append(skipped, def.TableName)
		default:
			return registered, skipped, err
		}
	}
	return registered, skipped, nil
}

// Get resolves identifier against table names and aliases. When several
// schemas match, the first one in scan order is returned.
func (m *Manager) Get(ctx context.Context, identifier string) (schema.SchemaRecord, error) {
	items, err := m.backend.Scan(ctx, &storagemodels.ScanParams{
		TableName: RegistryTableName,
		MatchAny: map[string]any{
			schema.AttrTableName: identifier,
			schema.AttrAlias:     identifier,
		},
	})
	if err != nil {
		return schema.SchemaRecord{}, daerrors.WrapRegistryError("get schema", err)
	}
	if len(items) == 0 {
		return schema.SchemaRecord{}, daerrors.NewSchemaNotFoundError(identifier)
	}

	rec, err := schema.FromItem(items[0])
	if err != nil {
		return schema.SchemaRecord{}, daerrors.WrapRegistryError("get schema", err)
	}
	return rec, nil
}

// List returns every registered schema, in no particular order.
func (m *Manager) List(ctx context.Context) ([]schema.SchemaRecord, error) {
	items, err := m.backend.Scan(ctx, &storagemodels.ScanParams{TableName: RegistryTableName})
	if err != nil {
		return nil, daerrors.WrapRegistryError("list schemas", err)
	}

	records := make([]schema.SchemaRecord, 0, len(items))
	for _, item := range items {
		rec, err := schema.FromItem(item)
		if err != nil {
			return nil, daerrors.WrapRegistryError("list schemas", err)
		}
		if rec.TableName == RegistryTableName {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Update carries the optional parts of a schema update.
type Update struct {
	Alias  *string          `json:"alias,omitempty"`
	Fields *schema.FieldMap `json:"fields,omitempty"`
}

// Update merges upd onto the schema of tableName and persists the result.
// Concurrent updates are last-writer-wins.
func (m *Manager) Update(ctx context.Context, tableName string, upd Update) (schema.SchemaRecord, error) {
	rec, err := m.findByTableName(ctx, tableName)
	if err != nil {
		return schema.SchemaRecord{}, daerrors.WrapRegistryError("update schema", err)
	}
	oldKey := rec.Key()

	if upd.Alias != nil {
		if *upd.Alias == "" {
			return schema.SchemaRecord{}, daerrors.NewValidationError(schema.AttrAlias, "alias must not be empty")
		}
		rec.Alias = *upd.Alias
	}
	if upd.Fields != nil {
		if err := schema.ValidateFields(*upd.Fields); err != nil {
			return schema.SchemaRecord{}, err
		}
		rec.Fields = upd.Fields.Clone()
	}
	rec.LastUpdated = m.timestamp()

	if err := m.put(ctx, rec); err != nil {
		return schema.SchemaRecord{}, daerrors.WrapRegistryError("update schema", err)
	}

	// The alias is part of the registry key, so a new alias is a new item.
	// When the old item cannot be removed the new one is removed again, so
	// tableName never owns two registry items.
	if oldKey[schema.AttrAlias] != rec.Alias {
		if err := m.backend.DeleteItem(ctx, RegistryTableName, oldKey); err != nil {
			if rbErr := m.backend.DeleteItem(ctx, RegistryTableName, rec.Key()); rbErr != nil {
				m.logger.Error("failed to roll back alias change", "table", rec.TableName, "alias", rec.Alias, "error", rbErr)
				err = errors.Join(err, rbErr)
			}
			return schema.SchemaRecord{}, daerrors.WrapRegistryError("update schema", err)
		}
	}

	m.logger.Info("schema updated", "table", rec.TableName, "alias", rec.Alias)
	return rec, nil
}

// Delete removes the schema of tableName. The record table is left alone.
func (m *Manager) Delete(ctx context.Context, tableName string) error {
	rec, err := m.findByTableName(ctx, tableName)
	if err != nil {
		return daerrors.WrapRegistryError("delete schema", err)
	}
	if err := m.backend.DeleteItem(ctx, RegistryTableName, rec.Key()); err != nil {
		return daerrors.WrapRegistryError("delete schema", err)
	}
	m.logger.Info("schema deleted", "table", tableName)
	return nil
}

// GetByTableName returns the schema whose table name equals tableName.
// Unlike Get, aliases are not consulted.
func (m *Manager) GetByTableName(ctx context.Context, tableName string) (schema.SchemaRecord, error) {
	rec, err := m.findByTableName(ctx, tableName)
	return rec, daerrors.WrapRegistryError("get schema", err)
}

// findByTableName loads the schema whose table name equals tableName.
func (m *Manager) findByTableName(ctx context.Context, tableName string) (schema.SchemaRecord, error) {
	items, err := m.backend.Scan(ctx, &storagemodels.ScanParams{
		TableName: RegistryTableName,
		MatchAny:  map[string]any{schema.AttrTableName: tableName},
	})
	if err != nil {
		return schema.SchemaRecord{}, err
	}
	if len(items) == 0 {
		return schema.SchemaRecord{}, daerrors.NewSchemaNotFoundError(tableName)
	}
	return schema.FromItem(items[0])
}

func (m *Manager) put(ctx context.Context, rec schema.SchemaRecord) error {
	item, err := rec.ToItem()
	if err != nil {
		return err
	}
	return m.backend.PutItem(ctx, &storagemodels.PutParams{
		TableName: RegistryTableName,
		Item:      item,
	})
}
