/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package records

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/dynadmin/datastore"
	daerrors "github.com/suparena/dynadmin/errors"
	"github.com/suparena/dynadmin/storagemodels"
)

// LastUpdatedAttribute is stamped on every insert and update.
const LastUpdatedAttribute = "lastUpdated"

const defaultIDAttempts = 5

// maxSafeInteger keeps ids exact when they pass through float64 and JSON.
const maxSafeInteger = 1<<53 - 1

// Store reads and writes records of user-defined tables.
type Store struct {
	backend    datastore.Backend
	logger     *slog.Logger
	waitOpts   []datastore.WaitOption
	now        func() time.Time
	newID      func() int64
	idAttempts int

	mu        sync.Mutex
	lastStamp time.Time
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source for lastUpdated
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator replaces the random id source
func WithIDGenerator(gen func() int64) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// WithIDAttempts bounds the retries after an id collision
func WithIDAttempts(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.idAttempts = n
		}
	}
}

// WithWaitOptions overrides table activation polling
func WithWaitOptions(opts ...datastore.WaitOption) Option {
	return func(s *Store) {
		s.waitOpts = append(s.waitOpts, opts...)
	}
}

// NewStore creates a Store over backend.
func NewStore(backend datastore.Backend, opts ...Option) *Store {
	s := &Store{
		backend:    backend,
		logger:     slog.Default(),
		now:        time.Now,
		newID:      RandomID,
		idAttempts: defaultIDAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RandomID derives a non-negative 53-bit id from a random UUID.
func RandomID() int64 {
	u := uuid.New()
	return int64(binary.BigEndian.Uint64(u[:8]) & maxSafeInteger)
}

// stamp returns the lastUpdated value for a write. Successive stamps from
// one Store strictly increase even when the clock does not move.
func (s *Store) stamp() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.now().UTC().Truncate(time.Millisecond)
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(time.Millisecond)
	}
	s.lastStamp = t
	return strfmt.DateTime(t).String()
}

// AddResult describes the outcome of AddItem.
type AddResult struct {
	// Item is the stored record, or the existing match for a duplicate.
	Item storagemodels.Item
	// Duplicate is set when an equal record already existed and nothing
	// was written.
	Duplicate bool
}

// AddItem inserts a record into tableName, creating the table when needed.
// Caller-supplied id and lastUpdated attributes are ignored. When a record
// whose attributes equal every candidate attribute already exists, the
// insert is skipped. The duplicate check is a scan followed by a put, so
// concurrent inserts of the same record may both succeed.
func (s *Store) AddItem(ctx context.Context, tableName string, fields map[string]any) (AddResult, error) {
	if tableName == "" {
		return AddResult{}, daerrors.NewValidationError("tableName", "tableName is required")
	}

	waitOpts := append([]datastore.WaitOption{datastore.WithLogger(s.logger)}, s.waitOpts...)
	if err := datastore.EnsureTable(ctx, s.backend, datastore.RecordTableSpec(tableName), waitOpts...); err != nil {
		return AddResult{}, err
	}

	candidate := withoutSystemAttributes(fields)

	existing, err := s.backend.Scan(ctx, &storagemodels.ScanParams{TableName: tableName})
	if err != nil {
		return AddResult{}, fmt.Errorf("failed to check duplicates in %s: %w", tableName, err)
	}
	for _, item := range existing {
		if isDuplicate(candidate, item) {
			s.logger.Info("duplicate item found, skipping insertion", "table", tableName, "id", item[datastore.IDAttribute])
			return AddResult{Item: item, Duplicate: true}, nil
		}
	}

	for attempt := 0; attempt < s.idAttempts; attempt++ {
		item := make(storagemodels.Item, len(candidate)+2)
		for k, v := range candidate {
			item[k] = v
		}
		item[datastore.IDAttribute] = s.newID()
		item[LastUpdatedAttribute] = s.stamp()

		err := s.backend.PutItem(ctx, &storagemodels.PutParams{
			TableName:   tableName,
			Item:        item,
			IfNotExists: datastore.IDAttribute,
		})
		if err == nil {
			s.logger.Info("item added", "table", tableName, "id", item[datastore.IDAttribute])
			return AddResult{Item: item}, nil
		}
		if !daerrors.IsConditionFailed(err) {
			return AddResult{}, fmt.Errorf("failed to add item to %s: %w", tableName, err)
		}
		s.logger.Warn("id collision, retrying", "table", tableName, "attempt", attempt+1)
	}
	return AddResult{}, fmt.Errorf("failed to add item to %s: no free id after %d attempts: %w",
		tableName, s.idAttempts, daerrors.ErrConditionFailed)
}

// GetItems returns every record of tableName. A missing table has no
// records.
func (s *Store) GetItems(ctx context.Context, tableName string) ([]storagemodels.Item, error) {
	items, err := s.backend.Scan(ctx, &storagemodels.ScanParams{TableName: tableName})
	if err != nil {
		if daerrors.IsTableNotFound(err) {
			return []storagemodels.Item{}, nil
		}
		return nil, fmt.Errorf("failed to get items from %s: %w", tableName, err)
	}
	if items == nil {
		items = []storagemodels.Item{}
	}
	return items, nil
}

// GetItem returns the record with id, or a NotFoundError.
func (s *Store) GetItem(ctx context.Context, tableName string, id int64) (storagemodels.Item, error) {
	item, err := s.backend.GetItem(ctx, tableName, idKey(id))
	if err != nil {
		if daerrors.IsTableNotFound(err) {
			return nil, daerrors.NewNotFoundError("item", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to get item %d from %s: %w", id, tableName, err)
	}
	if item == nil {
		return nil, daerrors.NewNotFoundError("item", strconv.FormatInt(id, 10))
	}
	return item, nil
}

// UpdateItem sets the given attributes on the record with id and refreshes
// lastUpdated. id and lastUpdated in updates are ignored. The record is
// not required to exist beforehand.
func (s *Store) UpdateItem(ctx context.Context, tableName string, id int64, updates map[string]any) error {
	set := withoutSystemAttributes(updates)
	set[LastUpdatedAttribute] = s.stamp()

	err := s.backend.UpdateItem(ctx, &storagemodels.UpdateParams{
		TableName: tableName,
		Key:       idKey(id),
		Set:       set,
	})
	if err != nil {
		return fmt.Errorf("failed to update item %d in %s: %w", id, tableName, err)
	}
	return nil
}

// DeleteItem removes the record with id. Deleting a missing record is not
// an error.
func (s *Store) DeleteItem(ctx context.Context, tableName string, id int64) error {
	if err := s.backend.DeleteItem(ctx, tableName, idKey(id)); err != nil {
		return fmt.Errorf("failed to delete item %d from %s: %w", id, tableName, err)
	}
	return nil
}

func idKey(id int64) storagemodels.Key {
	return storagemodels.Key{datastore.IDAttribute: id}
}

func withoutSystemAttributes(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		if k == datastore.IDAttribute || k == LastUpdatedAttribute {
			continue
		}
		out[k] = v
	}
	return out
}
