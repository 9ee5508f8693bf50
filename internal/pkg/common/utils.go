package common

import (
	"github.com/google/uuid"
)

// GenerateUUID returns a random UUID string.
func GenerateUUID() string {
	return uuid.New().String()
}

// UniqueStrings returns values without repeats, keeping the first occurrence
// of each.
func UniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
