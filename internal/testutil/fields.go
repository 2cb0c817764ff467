//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"
)

// Field sets key to value in a request map, or removes it when value is nil.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}

// DtoMap round-trips v through JSON so tests can mutate individual fields.
func DtoMap(t *testing.T, v any, muts ...func(map[string]any)) map[string]any {
	t.Helper()
	b, _ := json.Marshal(v)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	for _, f := range muts {
		f(m)
	}
	return m
}
