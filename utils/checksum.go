package utils

import (
	"fmt"

	"github.com/minio/sha256-simd"
)

// Fingerprint returns the hex sha256 of the given parts. Every part is length-prefixed,
// so moving bytes from one part to the next changes the result.
func Fingerprint(parts ...[]byte) string {
	hash := sha256.New()
	for _, part := range parts {
		_, _ = fmt.Fprintf(hash, "%d:", len(part))
		_, _ = hash.Write(part)
	}
	return fmt.Sprintf("%x", hash.Sum(nil))
}
