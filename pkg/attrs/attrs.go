// Package attrs reads values back out of slog-style key/value lists.
package attrs

import "slices"

// String returns the string paired with key in kv ([k1, v1, k2, v2, ...]).
// It returns "" when the key is missing or its value is not a string.
func String(kv []any, key string) string {
	for pair := range slices.Chunk(kv, 2) {
		if len(pair) < 2 {
			break
		}
		if k, ok := pair[0].(string); ok && k == key {
			v, _ := pair[1].(string)
			return v
		}
	}
	return ""
}
