/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// fakeClient records inputs and returns scripted outputs.
type fakeClient struct {
	createInputs   []*sdk.CreateTableInput
	putInputs      []*sdk.PutItemInput
	updateInputs   []*sdk.UpdateItemInput
	scanInputs     []*sdk.ScanInput
	listInputs     []*sdk.ListTablesInput
	describeOutput *sdk.DescribeTableOutput
	getOutput      *sdk.GetItemOutput
	scanOutputs    []*sdk.ScanOutput
	scanErrors     []error
	listOutputs    []*sdk.ListTablesOutput
	err            error
}

func (f *fakeClient) CreateTable(ctx context.Context, params *sdk.CreateTableInput, optFns ...func(*sdk.Options)) (*sdk.CreateTableOutput, error) {
	f.createInputs = append(f.createInputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sdk.CreateTableOutput{}, nil
}

func (f *fakeClient) DescribeTable(ctx context.Context, params *sdk.DescribeTableInput, optFns ...func(*sdk.Options)) (*sdk.DescribeTableOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.describeOutput, nil
}

func (f *fakeClient) DeleteTable(ctx context.Context, params *sdk.DeleteTableInput, optFns ...func(*sdk.Options)) (*sdk.DeleteTableOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sdk.DeleteTableOutput{}, nil
}

func (f *fakeClient) ListTables(ctx context.Context, params *sdk.ListTablesInput, optFns ...func(*sdk.Options)) (*sdk.ListTablesOutput, error) {
	copied := *params
	f.listInputs = append(f.listInputs, &copied)
	if f.err != nil {
		return nil, f.err
	}
	out := f.listOutputs[0]
	f.listOutputs = f.listOutputs[1:]
	return out, nil
}

func (f *fakeClient) PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.putInputs = append(f.putInputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeClient) GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.getOutput, nil
}

func (f *fakeClient) Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	copied := *params
	f.scanInputs = append(f.scanInputs, &copied)
	if len(f.scanErrors) > 0 {
		err := f.scanErrors[0]
		f.scanErrors = f.scanErrors[1:]
		if err != nil {
			return nil, err
		}
	}
	out := f.scanOutputs[0]
	f.scanOutputs = f.scanOutputs[1:]
	return out, nil
}

func (f *fakeClient) UpdateItem(ctx context.Context, params *sdk.UpdateItemInput, optFns ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error) {
	f.updateInputs = append(f.updateInputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sdk.UpdateItemOutput{}, nil
}

func (f *fakeClient) DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sdk.DeleteItemOutput{}, nil
}
