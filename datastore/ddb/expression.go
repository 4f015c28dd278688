/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// buildUpdateExpression transforms SET and REMOVE lists into:
//   - an "update expression" (e.g., "SET #f0 = :v0, #f1 = :v1 REMOVE #r0")
//   - a corresponding map of expression attribute names
//   - a corresponding map of expression attribute values (nil when empty)
//
// Placeholders are assigned in sorted field order.
func buildUpdateExpression(set map[string]any, remove []string) (string,
	map[string]string,
	map[string]types.AttributeValue,
	error) {

	if len(set) == 0 && len(remove) == 0 {
		return "", nil, nil, errors.New("no updates provided")
	}

	exprAttrNames := make(map[string]string)
	var exprAttrValues map[string]types.AttributeValue
	var clauses []string

	if len(set) > 0 {
		exprAttrValues = make(map[string]types.AttributeValue, len(set))
		setClauses := make([]string, 0, len(set))
		for i, field := range sortedKeys(set) {
			placeholderName := fmt.Sprintf("#f%d", i)
			placeholderValue := fmt.Sprintf(":v%d", i)

			av, err := attributevalue.Marshal(set[field])
			if err != nil {
				return "", nil, nil, fmt.Errorf("unhandled update value type for field '%s': %w", field, err)
			}
			setClauses = append(setClauses, fmt.Sprintf("%s = %s", placeholderName, placeholderValue))
			exprAttrNames[placeholderName] = field
			exprAttrValues[placeholderValue] = av
		}
		clauses = append(clauses, "SET "+strings.Join(setClauses, ", "))
	}

	if len(remove) > 0 {
		fields := append([]string(nil), remove...)
		sort.Strings(fields)
		removeClauses := make([]string, 0, len(fields))
		for i, field := range fields {
			placeholderName := fmt.Sprintf("#r%d", i)
			removeClauses = append(removeClauses, placeholderName)
			exprAttrNames[placeholderName] = field
		}
		clauses = append(clauses, "REMOVE "+strings.Join(removeClauses, ", "))
	}

	return strings.Join(clauses, " "), exprAttrNames, exprAttrValues, nil
}

// buildMatchAnyFilter renders an OR of equality conditions, e.g.
// "#m0 = :m0 OR #m1 = :m1".
func buildMatchAnyFilter(match map[string]any) (string,
	map[string]string,
	map[string]types.AttributeValue,
	error) {

	names := make(map[string]string, len(match))
	values := make(map[string]types.AttributeValue, len(match))
	conds := make([]string, 0, len(match))

	for i, field := range sortedKeys(match) {
		placeholderName := fmt.Sprintf("#m%d", i)
		placeholderValue := fmt.Sprintf(":m%d", i)

		av, err := attributevalue.Marshal(match[field])
		if err != nil {
			return "", nil, nil, fmt.Errorf("failed to marshal filter value for field '%s': %w", field, err)
		}
		conds = append(conds, fmt.Sprintf("%s = %s", placeholderName, placeholderValue))
		names[placeholderName] = field
		values[placeholderValue] = av
	}

	return strings.Join(conds, " OR "), names, values, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
