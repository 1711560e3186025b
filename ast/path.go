// Copyright (C) 2026 Wes France. All Rights Reserved.

package ast

import "fmt"

// A PathFunc is a path step applied to the value reached so far.
type PathFunc func(Value) (Value, error)

// Path traverses a sequence of steps into the structure of v and returns the
// value it reaches. Each step must be one of:
//
//   - a string, selecting the first member with that key of an Object;
//   - an int, indexing an Array (a negative index counts from the end);
//   - a PathFunc or func(Value) (Value, error), applied to the current value.
//
// If traversal fails, Path returns v unchanged along with the error.
func Path(v Value, path ...any) (Value, error) {
	cur := v
	for i, elt := range path {
		next, err := pathStep(cur, elt)
		if err != nil {
			return v, fmt.Errorf("path %d: %w", i+1, err)
		}
		cur = next
	}
	return cur, nil
}

func pathStep(cur Value, elt any) (Value, error) {
	switch t := elt.(type) {
	case string:
		obj, ok := cur.(*Object)
		if !ok {
			return nil, fmt.Errorf("cannot key %T with %q", cur, t)
		}
		m := obj.Find(t)
		if m == nil {
			return nil, fmt.Errorf("key %q not found", t)
		}
		return m.Value, nil
	case int:
		arr, ok := cur.(*Array)
		if !ok {
			return nil, fmt.Errorf("cannot index %T with %d", cur, t)
		}
		idx := t
		if idx < 0 {
			idx += len(arr.Values)
		}
		if idx < 0 || idx >= len(arr.Values) {
			return nil, fmt.Errorf("index %d out of range (%d elements)", t, len(arr.Values))
		}
		return arr.Values[idx], nil
	case PathFunc:
		return t(cur)
	case func(Value) (Value, error):
		return t(cur)
	default:
		return nil, fmt.Errorf("invalid path step %T", elt)
	}
}
