// Package dedupe removes duplicates from slices while keeping first-seen order.
package dedupe

import (
	"strings"
)

// Ordered returns values without duplicates. Order of first occurrence is preserved.
func Ordered[T comparable](values []T) []T {
	if len(values) == 0 {
		return values
	}
	seen := make(map[T]struct{}, len(values))
	result := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// Trimmed trims whitespace, drops empty strings and removes duplicates.
//
//	Trimmed([]string{"  UFORE ", "FORMUE", "UFORE", ""})
//	// []string{"UFORE", "FORMUE"}
func Trimmed(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return Ordered(trimmed)
}
