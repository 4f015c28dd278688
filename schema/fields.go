/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FieldType is the declared primitive type of a field.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

// Known reports whether t is one of the supported primitive types.
func (t FieldType) Known() bool {
	switch t {
	case FieldTypeString, FieldTypeNumber, FieldTypeBoolean:
		return true
	}
	return false
}

// FieldDefinition describes one declared attribute of a table.
type FieldDefinition struct {
	Type     FieldType `json:"type" yaml:"type"`
	Required bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Enum     []string  `json:"enum,omitempty" yaml:"enum,omitempty"`
	// Default is applied to records that omit the field.
	Default any `json:"default,omitempty" yaml:"default,omitempty"`
	// Format is a hint such as "email" or "date-time". Formats known to
	// strfmt are checked on string values.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// FieldMap is an insertion-ordered mapping of field name to definition.
// The zero value is an empty map ready to use.
type FieldMap struct {
	names []string
	defs  map[string]FieldDefinition
}

// Field is a named definition, used to build a FieldMap in order.
type Field struct {
	Name       string
	Definition FieldDefinition
}

// NewFieldMap builds a FieldMap from fields, in order.
func NewFieldMap(fields ...Field) FieldMap {
	var m FieldMap
	for _, f := range fields {
		m.Set(f.Name, f.Definition)
	}
	return m
}

// Len returns the number of fields.
func (m FieldMap) Len() int { return len(m.names) }

// Names returns the field names in order.
func (m FieldMap) Names() []string {
	return append([]string(nil), m.names...)
}

// Get returns the definition of name.
func (m FieldMap) Get(name string) (FieldDefinition, bool) {
	def, ok := m.defs[name]
	return def, ok
}

// Has reports whether name is declared.
func (m FieldMap) Has(name string) bool {
	_, ok := m.defs[name]
	return ok
}

// Set adds or replaces a field. Replacing keeps the original position.
func (m *FieldMap) Set(name string, def FieldDefinition) {
	if m.defs == nil {
		m.defs = make(map[string]FieldDefinition)
	}
	if _, ok := m.defs[name]; !ok {
		m.names = append(m.names, name)
	}
	m.defs[name] = def
}

// Delete removes a field if present.
func (m *FieldMap) Delete(name string) {
	if _, ok := m.defs[name]; !ok {
		return
	}
	delete(m.defs, name)
	for i, n := range m.names {
		if n == name {
			m.names = append(m.names[:i], m.names[i+1:]...)
			break
		}
	}
}

// Rename moves the definition of oldName under newName at the same
// position. An existing newName field is overwritten. It returns false when
// oldName is not declared.
func (m *FieldMap) Rename(oldName, newName string) bool {
	def, ok := m.defs[oldName]
	if !ok {
		return false
	}
	if oldName == newName {
		return true
	}
	m.Delete(newName)
	for i, n := range m.names {
		if n == oldName {
			m.names[i] = newName
			break
		}
	}
	delete(m.defs, oldName)
	m.defs[newName] = def
	return true
}

// Clone returns an independent copy.
func (m FieldMap) Clone() FieldMap {
	var out FieldMap
	for _, name := range m.names {
		def := m.defs[name]
		def.Enum = append([]string(nil), def.Enum...)
		out.Set(name, def)
	}
	return out
}

// reorder puts the listed names first, in the given order. Names not in
// order keep their relative position after them.
func (m *FieldMap) reorder(order []string) {
	seen := make(map[string]bool, len(order))
	names := make([]string, 0, len(m.names))
	for _, name := range order {
		if _, ok := m.defs[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	for _, name := range m.names {
		if !seen[name] {
			names = append(names, name)
		}
	}
	m.names = names
}

// MarshalJSON encodes the map as a JSON object preserving field order.
func (m FieldMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.defs[name])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the order of its keys.
func (m *FieldMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = FieldMap{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("fields must be a JSON object")
	}

	var out FieldMap
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var def FieldDefinition
		if err := dec.Decode(&def); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		out.Set(name, def)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}

// MarshalYAML encodes the map as an ordered YAML mapping.
func (m FieldMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range m.names {
		var val yaml.Node
		if err := val.Encode(m.defs[name]); err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&val,
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping keeping the order of its keys.
func (m *FieldMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fields must be a mapping", value.Line)
	}
	var out FieldMap
	for i := 0; i+1 < len(value.Content); i += 2 {
		name := value.Content[i].Value
		var def FieldDefinition
		if err := value.Content[i+1].Decode(&def); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		out.Set(name, def)
	}
	*m = out
	return nil
}
