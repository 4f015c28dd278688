/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package records

import (
	"encoding/json"
	"reflect"

	"github.com/suparena/dynadmin/storagemodels"
)

// isDuplicate reports whether existing carries every attribute of candidate
// with an equal value. Attributes only present on existing are ignored.
func isDuplicate(candidate map[string]any, existing storagemodels.Item) bool {
	for k, want := range candidate {
		got, ok := existing[k]
		if !ok || !equalValues(want, got) {
			return false
		}
	}
	return true
}

// equalValues compares values across the shapes a backend and a JSON decoder
// produce: numbers of any Go type compare by value, lists and maps deeply.
func equalValues(a, b any) bool {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			if !equalValues(v, bv[k]) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalValues(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
