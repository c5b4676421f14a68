package storage

import "gorm.io/datatypes"

// newJSONMap wraps m for a JSON column, normalizing nil to an empty map
// so the stored document is always valid JSON.
func newJSONMap(m map[string]string) datatypes.JSONType[map[string]string] {
	if m == nil {
		m = map[string]string{}
	}
	return datatypes.NewJSONType(m)
}

// newJSONSlice wraps v for a JSON column, normalizing nil to an empty list.
func newJSONSlice[T any](v []T) datatypes.JSONSlice[T] {
	if v == nil {
		v = []T{}
	}
	return datatypes.JSONSlice[T](v)
}
