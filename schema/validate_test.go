/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	daerrors "github.com/suparena/dynadmin/errors"
)

func ageStatusSchema() SchemaRecord {
	return SchemaRecord{
		TableName: "People",
		Alias:     "People",
		Fields: NewFieldMap(
			Field{Name: "age", Definition: FieldDefinition{Type: FieldTypeNumber, Required: true}},
			Field{Name: "status", Definition: FieldDefinition{Type: FieldTypeString, Enum: []string{"active", "inactive"}}},
		),
	}
}

func validationField(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	var ve *daerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Field
}

func TestValidate_TypeMismatchBeforeLaterFields(t *testing.T) {
	err := Validate(ageStatusSchema(), map[string]any{"age": "30", "status": "archived"})
	assert.Equal(t, "age", validationField(t, err))
	assert.EqualError(t, err, `validation failed for field "age": must be a number`)
}

func TestValidate_EnumViolation(t *testing.T) {
	err := Validate(ageStatusSchema(), map[string]any{"age": 30, "status": "archived"})
	assert.Equal(t, "status", validationField(t, err))
	assert.EqualError(t, err, `validation failed for field "status": must be one of: active, inactive`)
}

func TestValidate_OptionalFieldAbsent(t *testing.T) {
	assert.NoError(t, Validate(ageStatusSchema(), map[string]any{"age": 30}))
	assert.NoError(t, Validate(ageStatusSchema(), map[string]any{"age": float64(30), "status": "active"}))
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(ageStatusSchema(), map[string]any{"status": "active"})
	assert.Equal(t, "age", validationField(t, err))
	assert.True(t, daerrors.IsValidationError(err))
}

func TestValidate_TypeChecks(t *testing.T) {
	s := SchemaRecord{Fields: NewFieldMap(
		Field{Name: "name", Definition: FieldDefinition{Type: FieldTypeString}},
		Field{Name: "vaccinated", Definition: FieldDefinition{Type: FieldTypeBoolean}},
		Field{Name: "photo", Definition: FieldDefinition{Type: "binary"}},
	)}

	tests := []struct {
		name      string
		candidate map[string]any
		wantField string
	}{
		{name: "all valid", candidate: map[string]any{"name": "Rex", "vaccinated": true, "photo": 12}},
		{name: "string given number", candidate: map[string]any{"name": 1}, wantField: "name"},
		{name: "boolean given string", candidate: map[string]any{"vaccinated": "yes"}, wantField: "vaccinated"},
		{name: "null is not a string", candidate: map[string]any{"name": nil}, wantField: "name"},
		{name: "undeclared attributes pass", candidate: map[string]any{"color": []any{1, "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(s, tt.candidate)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantField, validationField(t, err))
		})
	}
}

func TestValidate_EnumRequiresString(t *testing.T) {
	s := SchemaRecord{Fields: NewFieldMap(
		Field{Name: "size", Definition: FieldDefinition{Type: "any", Enum: []string{"1", "2"}}},
	)}
	err := Validate(s, map[string]any{"size": 1})
	assert.Equal(t, "size", validationField(t, err))
	assert.NoError(t, Validate(s, map[string]any{"size": "2"}))
}

func TestValidate_Format(t *testing.T) {
	s := SchemaRecord{Fields: NewFieldMap(
		Field{Name: "contact", Definition: FieldDefinition{Type: FieldTypeString, Format: "email"}},
		Field{Name: "nickname", Definition: FieldDefinition{Type: FieldTypeString, Format: "shouty"}},
	)}

	assert.NoError(t, Validate(s, map[string]any{"contact": "owner@example.com", "nickname": "x"}))

	err := Validate(s, map[string]any{"contact": "not an address"})
	assert.Equal(t, "contact", validationField(t, err))
	assert.Contains(t, err.Error(), "must be a valid email")
}

func TestValidateFields(t *testing.T) {
	assert.NoError(t, ValidateFields(ageStatusSchema().Fields))

	err := ValidateFields(NewFieldMap(Field{Name: "x", Definition: FieldDefinition{Type: "date"}}))
	assert.Equal(t, "x", validationField(t, err))

	err = ValidateFields(NewFieldMap(Field{Name: "n", Definition: FieldDefinition{Type: FieldTypeNumber, Default: "ten"}}))
	assert.Equal(t, "n", validationField(t, err))
}

func TestApplyDefaults(t *testing.T) {
	s := SchemaRecord{Fields: NewFieldMap(
		Field{Name: "status", Definition: FieldDefinition{Type: FieldTypeString, Default: "active"}},
		Field{Name: "vaccinated", Definition: FieldDefinition{Type: FieldTypeBoolean, Default: false}},
		Field{Name: "name", Definition: FieldDefinition{Type: FieldTypeString}},
	)}
	in := map[string]any{"name": "Rex", "status": "inactive"}

	out := ApplyDefaults(s, in)
	assert.Equal(t, map[string]any{"name": "Rex", "status": "inactive", "vaccinated": false}, out)
	assert.NotContains(t, in, "vaccinated", "input must not be modified")
}
