/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a record point lookup misses
	ErrNotFound = errors.New("item not found")

	// ErrSchemaNotFound is returned when no schema resolves for an identifier
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrAlreadyExists is returned when attempting to register something that already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrTableOperation is returned when creating, describing or waiting for a table fails
	ErrTableOperation = errors.New("table operation failed")

	// ErrConditionFailed is returned when a conditional write fails
	ErrConditionFailed = errors.New("condition check failed")

	// ErrTableInUse is returned by backends when a table being created already exists
	ErrTableInUse = errors.New("table already in use")

	// ErrTableNotFound is returned by backends when the addressed table does not exist
	ErrTableNotFound = errors.New("table not found")
)

// NotFoundError represents an error when an item is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// SchemaNotFoundError is returned when neither a table name nor an alias matches.
type SchemaNotFoundError struct {
	Identifier string
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("schema not found for identifier: %s", e.Identifier)
}

func (e *SchemaNotFoundError) Is(target error) bool {
	return target == ErrSchemaNotFound
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// TableOperationError wraps a backend failure during table provisioning.
type TableOperationError struct {
	Operation string
	Table     string
	Err       error
}

func (e *TableOperationError) Error() string {
	return fmt.Sprintf("failed to %s table %s: %v", e.Operation, e.Table, e.Err)
}

func (e *TableOperationError) Is(target error) bool {
	return target == ErrTableOperation
}

func (e *TableOperationError) Unwrap() error {
	return e.Err
}

// TableRegistryError is the catch-all wrapper for registry failures. The
// underlying error stays reachable through errors.Is and errors.As.
type TableRegistryError struct {
	Op  string
	Err error
}

func (e *TableRegistryError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *TableRegistryError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewSchemaNotFoundError creates a new SchemaNotFoundError
func NewSchemaNotFoundError(identifier string) error {
	return &SchemaNotFoundError{Identifier: identifier}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewTableOperationError creates a new TableOperationError
func NewTableOperationError(operation, table string, err error) error {
	return &TableOperationError{Operation: operation, Table: table, Err: err}
}

// WrapRegistryError wraps err unless it already carries a meaningful
// classification that callers switch on.
func WrapRegistryError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsSchemaNotFound(err) || IsAlreadyExists(err) || IsValidationError(err) {
		return err
	}
	return &TableRegistryError{Op: op, Err: err}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsSchemaNotFound checks if an error is a schema not found error
func IsSchemaNotFound(err error) bool {
	return errors.Is(err, ErrSchemaNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTableOperation checks if an error is a table operation error
func IsTableOperation(err error) bool {
	return errors.Is(err, ErrTableOperation)
}

// IsConditionFailed checks if an error is a condition failed error
func IsConditionFailed(err error) bool {
	return errors.Is(err, ErrConditionFailed)
}

// IsTableInUse reports whether a backend rejected a create because the table exists
func IsTableInUse(err error) bool {
	return errors.Is(err, ErrTableInUse)
}

// IsTableNotFound reports whether the addressed physical table is missing
func IsTableNotFound(err error) bool {
	return errors.Is(err, ErrTableNotFound)
}
