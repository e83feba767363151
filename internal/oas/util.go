package oas

import "sort"

// sortedKeys keeps extraction deterministic: materializing the same
// document twice must yield identical parameter trees.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
