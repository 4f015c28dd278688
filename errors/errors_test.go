/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("item", "42")

	expected := `item with key "42" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestSchemaNotFoundError(t *testing.T) {
	err := NewSchemaNotFoundError("Pets")

	expected := "schema not found for identifier: Pets"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsSchemaNotFound(err) {
		t.Error("IsSchemaNotFound should return true for SchemaNotFoundError")
	}
	if IsNotFound(err) {
		t.Error("SchemaNotFoundError should not match ErrNotFound")
	}
}

func TestAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("schema", "Orders")

	expected := `schema with key "Orders" already exists`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrAlreadyExists) {
		t.Error("AlreadyExistsError should match ErrAlreadyExists")
	}

	if !IsAlreadyExists(err) {
		t.Error("IsAlreadyExists should return true for AlreadyExistsError")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "age",
			message:  "must be a number",
			expected: `validation failed for field "age": must be a number`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "tableName is required",
			expected: "validation failed: tableName is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !IsValidationError(err) {
				t.Error("IsValidationError should return true for ValidationError")
			}
		})
	}
}

func TestTableOperationError(t *testing.T) {
	cause := errors.New("throttled")
	err := NewTableOperationError("create", "Pets", cause)

	expected := "failed to create table Pets: throttled"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsTableOperation(err) {
		t.Error("IsTableOperation should return true for TableOperationError")
	}
	if !errors.Is(err, cause) {
		t.Error("TableOperationError should unwrap to its cause")
	}
}

func TestWrapRegistryError(t *testing.T) {
	if WrapRegistryError("list schemas", nil) != nil {
		t.Fatal("wrapping nil should return nil")
	}

	notFound := NewSchemaNotFoundError("x")
	if WrapRegistryError("get schema", notFound) != notFound {
		t.Error("schema not found errors should pass through unwrapped")
	}

	cause := NewTableOperationError("wait for", "Pets", errors.New("timeout"))
	wrapped := WrapRegistryError("register schema", cause)

	var regErr *TableRegistryError
	if !errors.As(wrapped, &regErr) {
		t.Fatalf("Expected TableRegistryError, got %T", wrapped)
	}
	if !IsTableOperation(wrapped) {
		t.Error("wrapped table operation error should still match ErrTableOperation")
	}
	expected := "failed to register schema: failed to wait for table Pets: timeout"
	if wrapped.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, wrapped.Error())
	}
}

func TestErrorWrapping(t *testing.T) {
	original := NewNotFoundError("item", "7")
	wrapped := fmt.Errorf("get item: %w", original)

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should work with wrapped errors")
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrSchemaNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrTableOperation,
		ErrConditionFailed,
		ErrTableInUse,
		ErrTableNotFound,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
