// Package hash derives the 64-bit IDs that index metrics by their
// fully-qualified name.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given fully-qualified metric name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}
