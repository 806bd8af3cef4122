package models

import "strings"

// NormalizeAddress returns the canonical store key for an address.
// Keys are lower-cased so checksummed and plain hex forms collide.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
