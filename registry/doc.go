/*
Package registry manages the schema registry of dynadmin and the lifecycle of
the physical tables it describes.

Every SchemaRecord lives in the TableRegistry table under the composite key
(tableName, alias). Registering a schema also provisions a record table with a
numeric "id" hash key and waits for it to become ACTIVE:

	mgr := registry.NewManager(backend, registry.WithLogger(logger))
	if err := mgr.Initialize(ctx); err != nil {
	    return err
	}
	rec, err := mgr.Register(ctx, schema.Definition{
	    TableName: "Pets",
	    Alias:     "Pets",
	    Fields:    fields,
	})

Get resolves an identifier against table names and aliases alike. Aliases
are not unique; when several schemas share one, the first match in scan
order wins.

RenameField runs two independent phases, rewriting the records and then the
schema. Its RenameOutcome reports each phase, since either may fail while the
other succeeds.
*/
package registry
