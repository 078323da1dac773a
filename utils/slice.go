package utils

import "strings"

// UniqueStrings removes duplicates and blank entries, trimming whitespace.
// Used to normalize user-supplied tag lists.
func UniqueStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := []string{}
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		out = append(out, trimmed)
	}
	return out
}
