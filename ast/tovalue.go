// Copyright (C) 2026 Wes France. All Rights Reserved.

package ast

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// ToValue converts a plain Go value into an equivalent Value. It panics if v
// does not have one of the supported types:
//
//	nil, bool, string, int, int64, float64,
//	[]any, map[string]any, or any Value.
//
// Object members converted from a map are ordered by key, since Go maps have
// no source order to preserve.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case bool:
		return Bool{value: t}
	case string:
		return String{datum{text: t}}
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float64:
		return Float(t)
	case []any:
		arr := &Array{Values: make([]Value, len(t))}
		for i, elt := range t {
			arr.Values[i] = ToValue(elt)
		}
		return arr
	case map[string]any:
		obj := &Object{Members: make([]*Member, 0, len(t))}
		for _, key := range slices.Sorted(maps.Keys(t)) {
			obj.Members = append(obj.Members, Field(key, ToValue(t[key])))
		}
		return obj
	case Value:
		return t
	default:
		panic(fmt.Sprintf("type %T cannot be converted to a value", v))
	}
}

// Int constructs a Number from an int64.
func Int(z int64) Number {
	return Number{datum: datum{text: strconv.FormatInt(z, 10)}, value: float64(z), isInt: true}
}

// Float constructs a Number from a float64.
func Float(f float64) Number {
	return Number{datum: datum{text: strconv.FormatFloat(f, 'g', -1, 64)}, value: f}
}
