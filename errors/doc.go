/*
Package errors provides semantic error types for dynadmin.

The package defines the failure taxonomy of the schema registry and the
dynamic record store. Every typed error matches a sentinel, so callers can
use the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound        = errors.New("item not found")
	    ErrSchemaNotFound  = errors.New("schema not found")
	    ErrAlreadyExists   = errors.New("already exists")
	    ErrInvalidInput    = errors.New("invalid input")
	    ErrTableOperation  = errors.New("table operation failed")
	    ErrConditionFailed = errors.New("condition check failed")
	    ErrTableInUse      = errors.New("table already in use")
	    ErrTableNotFound   = errors.New("table not found")
	)

Usage:

	rec, err := manager.Get(ctx, "Pets")
	if err != nil {
	    if errors.IsSchemaNotFound(err) {
	        // respond with 404
	    }
	    return err
	}

Backends translate their native failures into ErrTableInUse, ErrTableNotFound
and ErrConditionFailed, so the registry and record store never inspect
provider specific exception types.
*/
package errors
