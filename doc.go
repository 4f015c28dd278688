/*
Package dynadmin is a dynamic CRUD admin backend on top of DynamoDB.

Users register table schemas at runtime. Every schema lives as one item of
the TableRegistry table and owns a physical record table keyed by a numeric
id. Records written through the admin surface are validated against their
schema, deduplicated, and stamped with lastUpdated.

The module is layered:
  - schema: field definitions, validation and seed file loading
  - registry: the schema registry manager, table listing and field renames
  - records: the dynamic record store
  - datastore: the backend contract, provisioning helpers, DynamoDB and mock backends
  - internal/api: the chi HTTP surface

Basic Usage:

	backend, _ := ddb.Connect(ctx, ddb.ClientConfig{Region: "us-east-1"})
	app := dynadmin.New(backend, dynadmin.Options{Logger: logger})
	if err := app.Bootstrap(ctx, seed); err != nil {
	    return err
	}

	rec, _ := app.Schemas.Get(ctx, "Pets")
	res, _ := app.Records.AddItem(ctx, rec.TableName, map[string]any{"name": "Rex"})

The cmd/dynadmin binary serves the HTTP API and applies schema files.
*/
package dynadmin
