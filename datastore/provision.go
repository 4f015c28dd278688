/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	daerrors "github.com/suparena/dynadmin/errors"
	"github.com/suparena/dynadmin/storagemodels"
)

// ErrWaitTimeout is the cause reported when a table never turns ACTIVE.
var ErrWaitTimeout = errors.New("timeout waiting for table to become active")

// WaitOptions bounds table activation polling.
type WaitOptions struct {
	MaxAttempts int           // default: 30
	Interval    time.Duration // default: 1s
	Logger      *slog.Logger
}

// WaitOption is a functional option for configuring WaitOptions
type WaitOption func(*WaitOptions)

// DefaultWaitOptions returns the 30 x 1s polling budget.
func DefaultWaitOptions() WaitOptions {
	return WaitOptions{
		MaxAttempts: 30,
		Interval:    time.Second,
	}
}

// WithMaxAttempts sets the number of DescribeTable polls
func WithMaxAttempts(n int) WaitOption {
	return func(o *WaitOptions) {
		o.MaxAttempts = n
	}
}

// WithInterval sets the spacing between polls
func WithInterval(d time.Duration) WaitOption {
	return func(o *WaitOptions) {
		o.Interval = d
	}
}

// WithLogger sets the logger used for provisioning messages
func WithLogger(l *slog.Logger) WaitOption {
	return func(o *WaitOptions) {
		o.Logger = l
	}
}

func buildWaitOptions(opts []WaitOption) WaitOptions {
	o := DefaultWaitOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 1
	}
	return o
}

// EnsureTable creates the table and blocks until it is ACTIVE. A table that
// is already in use counts as success. Any other failure is returned as a
// TableOperationError.
func EnsureTable(ctx context.Context, b Backend, spec storagemodels.TableSpec, opts ...WaitOption) error {
	o := buildWaitOptions(opts)

	if err := b.CreateTable(ctx, spec); err != nil {
		if daerrors.IsTableInUse(err) {
			o.Logger.Info("table already exists", "table", spec.Name)
			return nil
		}
		return daerrors.NewTableOperationError("create", spec.Name, err)
	}
	o.Logger.Info("table created", "table", spec.Name)

	return waitForActive(ctx, b, spec.Name, o)
}

// WaitForActive polls DescribeTable until the table reports ACTIVE or the
// attempt budget is exhausted.
func WaitForActive(ctx context.Context, b Backend, tableName string, opts ...WaitOption) error {
	return waitForActive(ctx, b, tableName, buildWaitOptions(opts))
}

func waitForActive(ctx context.Context, b Backend, tableName string, o WaitOptions) error {
	for attempt := 0; attempt < o.MaxAttempts; attempt++ {
		status, err := b.DescribeTable(ctx, tableName)
		if err != nil {
			return daerrors.NewTableOperationError("check status for", tableName, err)
		}
		if status == storagemodels.TableStatusActive {
			return nil
		}

		select {
		case <-ctx.Done():
			return daerrors.NewTableOperationError("wait for", tableName, ctx.Err())
		case <-time.After(o.Interval):
		}
	}
	return daerrors.NewTableOperationError("wait for", tableName, ErrWaitTimeout)
}

// TableExists reports whether DescribeTable finds the table.
func TableExists(ctx context.Context, b Backend, tableName string) (bool, error) {
	_, err := b.DescribeTable(ctx, tableName)
	if err == nil {
		return true, nil
	}
	if daerrors.IsTableNotFound(err) {
		return false, nil
	}
	return false, err
}

// IDAttribute is the numeric hash key of every record table.
const IDAttribute = "id"

// DefaultCapacity is the read and write capacity hint for provisioned tables.
const DefaultCapacity = 5

// RecordTableSpec describes a physical record table keyed by a numeric id.
func RecordTableSpec(tableName string) storagemodels.TableSpec {
	return storagemodels.TableSpec{
		Name:          tableName,
		HashKey:       storagemodels.KeyAttribute{Name: IDAttribute, Type: storagemodels.KeyTypeNumber},
		ReadCapacity:  DefaultCapacity,
		WriteCapacity: DefaultCapacity,
	}
}
