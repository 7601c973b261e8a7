package indexer

import "strings"

// Normalize collapses every run of whitespace into a single space and trims
// leading and trailing whitespace.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
