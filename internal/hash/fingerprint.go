// Package hash computes content fingerprints for pixel payloads.
package hash

import "github.com/cespare/xxhash/v2"

// Fingerprint computes the xxHash64 of a byte span. Used to identify a
// subblock's pixel content without interpreting it.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}
