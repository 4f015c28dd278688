/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/suparena/dynadmin/datastore"
	daerrors "github.com/suparena/dynadmin/errors"
	"github.com/suparena/dynadmin/storagemodels"
)

// PhaseResult is the outcome of one phase of a field rename.
type PhaseResult struct {
	// ItemsRewritten counts the items changed by the phase: record items
	// for the data phase, registry items for the schema phase.
	ItemsRewritten int
	Err            error
}

// RenameOutcome reports both phases of RenameField. The phases are not
// transactional, so one may succeed while the other fails.
type RenameOutcome struct {
	Data   PhaseResult
	Schema PhaseResult
}

// Err joins the errors of both phases, or returns nil.
func (o RenameOutcome) Err() error {
	return errors.Join(o.Data.Err, o.Schema.Err)
}

// RenameField renames oldName to newName in every record of tableName and in
// the table's schema. Both phases always run and no rollback is attempted.
func (m *Manager) RenameField(ctx context.Context, tableName, oldName, newName string) (RenameOutcome, error) {
	switch {
	case tableName == "":
		return RenameOutcome{}, daerrors.NewValidationError("tableName", "tableName is required")
	case oldName == "" || newName == "":
		return RenameOutcome{}, daerrors.NewValidationError("", "oldFieldName and newFieldName are required")
	case oldName == newName:
		return RenameOutcome{}, daerrors.NewValidationError("newFieldName", "must differ from oldFieldName")
	case oldName == datastore.IDAttribute || newName == datastore.IDAttribute:
		return RenameOutcome{}, daerrors.NewValidationError("", "the id attribute cannot be renamed")
	}

	var outcome RenameOutcome
	outcome.Data = m.renameInData(ctx, tableName, oldName, newName)
	outcome.Schema = m.renameInSchema(ctx, tableName, oldName, newName)

	m.logger.Info("field renamed",
		"table", tableName,
		"from", oldName,
		"to", newName,
		"itemsRewritten", outcome.Data.ItemsRewritten,
		"dataError", errString(outcome.Data.Err),
		"schemaError", errString(outcome.Schema.Err),
	)
	return outcome, outcome.Err()
}

func (m *Manager) renameInData(ctx context.Context, tableName, oldName, newName string) PhaseResult {
	items, err := m.backend.Scan(ctx, &storagemodels.ScanParams{TableName: tableName})
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("failed to rename field in data: %w", err)}
	}

	var rewritten atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.renameConcurrency)

	for _, item := range items {
		value, ok := item[oldName]
		if !ok {
			continue
		}
		id, ok := item[datastore.IDAttribute]
		if !ok {
			continue
		}
		g.Go(func() error {
			err := m.backend.UpdateItem(gctx, &storagemodels.UpdateParams{
				TableName: tableName,
				Key:       storagemodels.Key{datastore.IDAttribute: id},
				Set:       map[string]any{newName: value},
				Remove:    []string{oldName},
			})
			if err != nil {
				return fmt.Errorf("item %v: %w", id, err)
			}
			rewritten.Add(1)
			return nil
		})
	}

	result := PhaseResult{}
	if err := g.Wait(); err != nil {
		result.Err = fmt.Errorf("failed to rename field in data: %w", err)
	}
	result.ItemsRewritten = int(rewritten.Load())
	return result
}

func (m *Manager) renameInSchema(ctx context.Context, tableName, oldName, newName string) PhaseResult {
	rec, err := m.findByTableName(ctx, tableName)
	if err != nil {
		return PhaseResult{Err: daerrors.WrapRegistryError("rename field in schema", err)}
	}
	if !rec.Fields.Rename(oldName, newName) {
		return PhaseResult{Err: daerrors.NewValidationError(oldName, "field not found in schema")}
	}
	rec.LastUpdated = m.timestamp()

	if err := m.put(ctx, rec); err != nil {
		return PhaseResult{Err: daerrors.WrapRegistryError("rename field in schema", err)}
	}
	return PhaseResult{ItemsRewritten: 1}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
