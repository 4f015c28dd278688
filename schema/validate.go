/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-openapi/strfmt"

	daerrors "github.com/suparena/dynadmin/errors"
)

// Validate checks candidate against the schema's declared fields in order
// and reports the first violation as a ValidationError. Per field it checks
// presence of required fields, then the primitive type, then enum membership,
// then the format hint. Undeclared attributes are not inspected.
func Validate(s SchemaRecord, candidate map[string]any) error {
	for _, name := range s.Fields.names {
		def := s.Fields.defs[name]

		value, present := candidate[name]
		if !present {
			if def.Required {
				return daerrors.NewValidationError(name, "missing required field")
			}
			continue
		}

		if !matchesType(def.Type, value) {
			return daerrors.NewValidationError(name, "must be a "+string(def.Type))
		}

		if len(def.Enum) > 0 && !inEnum(def.Enum, value) {
			return daerrors.NewValidationError(name, "must be one of: "+strings.Join(def.Enum, ", "))
		}

		if def.Format != "" && strfmt.Default.ContainsName(def.Format) {
			if str, ok := value.(string); ok && !strfmt.Default.Validates(def.Format, str) {
				return daerrors.NewValidationError(name, fmt.Sprintf("must be a valid %s", def.Format))
			}
		}
	}
	return nil
}

// ValidateFields checks that field definitions are well formed.
func ValidateFields(fields FieldMap) error {
	for _, name := range fields.names {
		def := fields.defs[name]
		if name == "" {
			return daerrors.NewValidationError("", "field names must not be empty")
		}
		if !def.Type.Known() {
			return daerrors.NewValidationError(name, fmt.Sprintf("unsupported type %q", def.Type))
		}
		if def.Default != nil && !matchesType(def.Type, def.Default) {
			return daerrors.NewValidationError(name, "default must be a "+string(def.Type))
		}
	}
	return nil
}

// ApplyDefaults returns a copy of candidate with the defaults of absent
// fields filled in.
func ApplyDefaults(s SchemaRecord, candidate map[string]any) map[string]any {
	out := make(map[string]any, len(candidate))
	for k, v := range candidate {
		out[k] = v
	}
	for _, name := range s.Fields.names {
		def := s.Fields.defs[name]
		if def.Default == nil {
			continue
		}
		if _, ok := out[name]; !ok {
			out[name] = def.Default
		}
	}
	return out
}

func matchesType(t FieldType, value any) bool {
	switch t {
	case FieldTypeNumber:
		return isNumber(value)
	case FieldTypeString:
		_, ok := value.(string)
		return ok
	case FieldTypeBoolean:
		_, ok := value.(bool)
		return ok
	default:
		return true
	}
}

func isNumber(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return true
	}
	return false
}

func inEnum(enum []string, value any) bool {
	str, ok := value.(string)
	if !ok {
		return false
	}
	for _, allowed := range enum {
		if allowed == str {
			return true
		}
	}
	return false
}
