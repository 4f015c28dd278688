/*
Package ddb provides a DynamoDB implementation of the datastore.Backend
interface.

The DynamodbBackend supports:
  - Table provisioning with hash or hash+range keys, provisioned or on-demand
  - Paginated scans with OR-ed equality filters and retry on throttling
  - Partial updates rendered as "SET #f0 = :v0 REMOVE #r0" expressions
  - Conditional puts (attribute_not_exists) for collision-free inserts
  - Translation of DynamoDB exceptions into the errors package sentinels

Connecting:

	backend, err := ddb.Connect(ctx, ddb.ClientConfig{
	    Region:   "eu-west-1",
	    Endpoint: "http://localhost:8000", // optional, DynamoDB Local
	})

Items are converted with the attributevalue codec, so numbers are returned as
float64, lists as []any and maps as map[string]any.

An existing *dynamodb.Client, or any value implementing Client, can be
wrapped directly with NewDynamodbBackend.
*/
package ddb
