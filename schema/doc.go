/*
Package schema defines table schemas and validates records against them.

A SchemaRecord names a table, gives it a display alias and declares its
fields in order. Each FieldDefinition carries a primitive type (string,
number or boolean), a required flag, an optional enum of allowed strings, an
optional default and an optional format hint.

Validation is schema-on-write and fail-fast:

	err := schema.Validate(rec, map[string]any{"age": "30"})
	// validation failed for field "age": must be a number

Fields are checked in declaration order, so only the first violation is
reported. Attributes the schema does not declare pass through unchecked.
*/
package schema
