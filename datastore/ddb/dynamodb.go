/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	daerrors "github.com/suparena/dynadmin/errors"
	"github.com/suparena/dynadmin/storagemodels"
)

// DynamodbBackend implements datastore.Backend by using AWS DynamoDB as the
// underlying store. One backend serves every table of the account.
type DynamodbBackend struct {
	client  Client
	options storagemodels.ScanOptions
}

// NewDynamodbBackend wraps an existing client.
func NewDynamodbBackend(client Client, opts ...storagemodels.ScanOption) *DynamodbBackend {
	options := storagemodels.DefaultScanOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &DynamodbBackend{
		client:  client,
		options: options,
	}
}

// Connect creates a DynamoDB client from cc and wraps it.
func Connect(ctx context.Context, cc ClientConfig, opts ...storagemodels.ScanOption) (*DynamodbBackend, error) {
	client, err := NewDynamoDBClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return NewDynamodbBackend(client, opts...), nil
}

// translateError maps DynamoDB exceptions onto the backend-neutral sentinels
// while keeping the original error in the chain.
func translateError(op, tableName string, err error) error {
	var inUse *types.ResourceInUseException
	if errors.As(err, &inUse) {
		return fmt.Errorf("%s %s: %w: %w", op, tableName, daerrors.ErrTableInUse, err)
	}
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%s %s: %w: %w", op, tableName, daerrors.ErrTableNotFound, err)
	}
	var cfe *types.ConditionalCheckFailedException
	if errors.As(err, &cfe) {
		return fmt.Errorf("%s %s: %w: %w", op, tableName, daerrors.ErrConditionFailed, err)
	}
	return fmt.Errorf("%s %s failed: %w", op, tableName, err)
}

func scalarType(t storagemodels.KeyType) types.ScalarAttributeType {
	if t == storagemodels.KeyTypeNumber {
		return types.ScalarAttributeTypeN
	}
	return types.ScalarAttributeTypeS
}

// CreateTable issues CreateTable and returns without waiting for ACTIVE.
func (d *DynamodbBackend) CreateTable(ctx context.Context, spec storagemodels.TableSpec) error {
	input := &sdk.CreateTableInput{
		TableName: aws.String(spec.Name),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(spec.HashKey.Name), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(spec.HashKey.Name), AttributeType: scalarType(spec.HashKey.Type)},
		},
	}
	if spec.RangeKey != nil {
		input.KeySchema = append(input.KeySchema, types.KeySchemaElement{
			AttributeName: aws.String(spec.RangeKey.Name), KeyType: types.KeyTypeRange,
		})
		input.AttributeDefinitions = append(input.AttributeDefinitions, types.AttributeDefinition{
			AttributeName: aws.String(spec.RangeKey.Name), AttributeType: scalarType(spec.RangeKey.Type),
		})
	}
	if spec.ReadCapacity > 0 || spec.WriteCapacity > 0 {
		input.BillingMode = types.BillingModeProvisioned
		input.ProvisionedThroughput = &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(spec.ReadCapacity),
			WriteCapacityUnits: aws.Int64(spec.WriteCapacity),
		}
	} else {
		input.BillingMode = types.BillingModePayPerRequest
	}

	if _, err := d.client.CreateTable(ctx, input); err != nil {
		return translateError("CreateTable", spec.Name, err)
	}
	return nil
}

// DescribeTable returns the table's current status.
func (d *DynamodbBackend) DescribeTable(ctx context.Context, tableName string) (storagemodels.TableStatus, error) {
	out, err := d.client.DescribeTable(ctx, &sdk.DescribeTableInput{TableName: aws.String(tableName)})
	if err != nil {
		return "", translateError("DescribeTable", tableName, err)
	}
	if out.Table == nil {
		return "", fmt.Errorf("DescribeTable %s: empty table description", tableName)
	}
	return storagemodels.TableStatus(out.Table.TableStatus), nil
}

// DeleteTable drops the physical table.
func (d *DynamodbBackend) DeleteTable(ctx context.Context, tableName string) error {
	if _, err := d.client.DeleteTable(ctx, &sdk.DeleteTableInput{TableName: aws.String(tableName)}); err != nil {
		return translateError("DeleteTable", tableName, err)
	}
	return nil
}

// ListTables returns every table name, following pagination.
func (d *DynamodbBackend) ListTables(ctx context.Context) ([]string, error) {
	var names []string
	input := &sdk.ListTablesInput{}
	for {
		out, err := d.client.ListTables(ctx, input)
		if err != nil {
			return nil, translateError("ListTables", "", err)
		}
		names = append(names, out.TableNames...)
		if out.LastEvaluatedTableName == nil {
			return names, nil
		}
		input.ExclusiveStartTableName = out.LastEvaluatedTableName
	}
}

// PutItem writes a whole item, optionally only when the key is unused.
func (d *DynamodbBackend) PutItem(ctx context.Context, params *storagemodels.PutParams) error {
	av, err := attributevalue.MarshalMap(params.Item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	input := &sdk.PutItemInput{
		TableName: aws.String(params.TableName),
		Item:      av,
	}
	if params.IfNotExists != "" {
		input.ConditionExpression = aws.String("attribute_not_exists(#k)")
		input.ExpressionAttributeNames = map[string]string{"#k": params.IfNotExists}
	}

	if _, err := d.client.PutItem(ctx, input); err != nil {
		return translateError("PutItem", params.TableName, err)
	}
	return nil
}

// GetItem performs a point lookup. It returns nil, nil when no item is found.
func (d *DynamodbBackend) GetItem(ctx context.Context, tableName string, key storagemodels.Key) (storagemodels.Item, error) {
	keyMap, err := attributevalue.MarshalMap(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: aws.String(tableName),
		Key:       keyMap,
	})
	if err != nil {
		return nil, translateError("GetItem", tableName, err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var item storagemodels.Item
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return item, nil
}

// Scan reads every page of the table, applying the optional filter.
func (d *DynamodbBackend) Scan(ctx context.Context, params *storagemodels.ScanParams) ([]storagemodels.Item, error) {
	input := &sdk.ScanInput{
		TableName: aws.String(params.TableName),
		Limit:     aws.Int32(d.options.PageSize),
	}
	if len(params.MatchAny) > 0 {
		expr, names, values, err := buildMatchAnyFilter(params.MatchAny)
		if err != nil {
			return nil, err
		}
		input.FilterExpression = aws.String(expr)
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	var results []storagemodels.Item
	for {
		out, err := d.scanWithRetry(ctx, input)
		if err != nil {
			return nil, translateError("Scan", params.TableName, err)
		}

		for _, raw := range out.Items {
			var item storagemodels.Item
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal scanned item: %w", err)
			}
			results = append(results, item)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return results, nil
}

// scanWithRetry executes one page with configurable retry logic
func (d *DynamodbBackend) scanWithRetry(ctx context.Context, input *sdk.ScanInput) (*sdk.ScanOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= d.options.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		out, err := d.client.Scan(ctx, input)
		if err == nil {
			return out, nil
		}

		lastErr = err

		if !isRetryableError(err) {
			return nil, err
		}

		// Don't sleep after last attempt
		if attempt < d.options.MaxRetries {
			backoff := time.Duration(attempt+1) * d.options.RetryBackoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("scan failed after %d retries: %w", d.options.MaxRetries, lastErr)
}

// UpdateItem applies a partial SET/REMOVE update to one item.
func (d *DynamodbBackend) UpdateItem(ctx context.Context, params *storagemodels.UpdateParams) error {
	keyMap, err := attributevalue.MarshalMap(params.Key)
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}

	updateExpr, exprAttrNames, exprAttrValues, err := buildUpdateExpression(params.Set, params.Remove)
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	input := &sdk.UpdateItemInput{
		TableName:                 aws.String(params.TableName),
		Key:                       keyMap,
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeNames:  exprAttrNames,
		ExpressionAttributeValues: exprAttrValues,
	}

	if _, err := d.client.UpdateItem(ctx, input); err != nil {
		return translateError("UpdateItem", params.TableName, err)
	}
	return nil
}

// DeleteItem removes an item by key; a missing key is not an error.
func (d *DynamodbBackend) DeleteItem(ctx context.Context, tableName string, key storagemodels.Key) error {
	keyMap, err := attributevalue.MarshalMap(key)
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: aws.String(tableName),
		Key:       keyMap,
	})
	if err != nil {
		return translateError("DeleteItem", tableName, err)
	}
	return nil
}

// isRetryableError determines if a DynamoDB error is retryable
func isRetryableError(err error) bool {
	var throughput *types.ProvisionedThroughputExceededException
	var limit *types.RequestLimitExceeded
	var internal *types.InternalServerError
	if errors.As(err, &throughput) || errors.As(err, &limit) || errors.As(err, &internal) {
		return true
	}

	// Check for AWS SDK retryable errors
	var retryable interface{ IsRetryable() bool }
	if errors.As(err, &retryable) {
		return retryable.IsRetryable()
	}

	return false
}
