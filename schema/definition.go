/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition is the client-supplied part of a schema: everything except
// the timestamps the registry stamps.
type Definition struct {
	TableName string   `json:"tableName" yaml:"tableName"`
	Alias     string   `json:"alias" yaml:"alias"`
	Fields    FieldMap `json:"fields" yaml:"fields"`
}

// definitionFile is the layout of a schema seed file:
//
//	schemas:
//	  - tableName: Pets
//	    alias: Pets
//	    fields:
//	      name: {type: string, required: true}
type definitionFile struct {
	Schemas []Definition `yaml:"schemas"`
}

// LoadDefinitions parses a YAML schema file.
func LoadDefinitions(r io.Reader) ([]Definition, error) {
	var file definitionFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse schema definitions: %w", err)
	}
	for i, def := range file.Schemas {
		if def.TableName == "" {
			return nil, fmt.Errorf("schema definition %d: tableName is required", i)
		}
	}
	return file.Schemas, nil
}

// LoadDefinitionsFile parses the YAML schema file at path.
func LoadDefinitionsFile(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema file: %w", err)
	}
	defer f.Close()
	return LoadDefinitions(f)
}
