package store

import (
	"encoding/json"
	"reflect"
)

// Filter matches records by field equality. A nested map compares one level
// of sub-object fields; a slice matches when the field equals any element.
type Filter map[string]any

// Matches reports whether doc satisfies every entry of f. f must already be
// normalised with normalize.
func (f Filter) Matches(doc Document) bool {
	for key, want := range f {
		got := doc[key]
		switch w := want.(type) {
		case map[string]any:
			sub, ok := got.(map[string]any)
			if !ok {
				return false
			}
			for subKey, subWant := range w {
				if !valuesEqual(sub[subKey], subWant) {
					return false
				}
			}
		case []any:
			found := false
			for _, candidate := range w {
				if valuesEqual(got, candidate) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			if !valuesEqual(got, want) {
				return false
			}
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// normalize converts Go values (typed ids, ints, structs) into their
// JSON-decoded form so they compare equal to what is stored.
func normalize[M ~map[string]any](m M) (M, error) {
	if m == nil {
		return M{}, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var out M
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = M{}
	}
	return out, nil
}

func clone(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	default:
		return v
	}
}

func cloneAll(docs []Document) []Document {
	out := make([]Document, len(docs))
	for i, d := range docs {
		out[i] = clone(d)
	}
	return out
}

// IDOf extracts the integer id of a record.
func IDOf(doc Document) int64 {
	switch v := doc[FieldID].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	}
	return 0
}

// nextID returns max(existing ids, issued)+1.
func nextID(docs []Document, issued int64) int64 {
	max := issued
	for _, d := range docs {
		if id := IDOf(d); id > max {
			max = id
		}
	}
	return max + 1
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
