/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package records stores the rows of user-defined tables.
//
// Records are free-form attribute maps keyed by a numeric id. The store
// creates a table on first insert, suppresses exact duplicates on a
// best-effort basis and stamps lastUpdated on every write. Shape validation
// against a schema is the caller's job; see package schema.
package records
