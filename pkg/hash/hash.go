package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Iterations applied when deriving quota keys from client IPs. Slows down
// offline reversal of keys that end up in memory or logs.
const clientKeyIterations = 1000

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// IteratedSHA256 applies SHA256 iteratively n times to produce a derived hash.
func IteratedSHA256(input string, iterations int) string {
	data := []byte(input)
	for range iterations {
		h := sha256.Sum256(data)
		data = h[:]
	}
	return hex.EncodeToString(data)
}

// ClientKey derives the quota-map key for a client IP. The raw IP never
// enters the quota map; the salt keeps keys unlinkable across deployments.
func ClientKey(ip, salt string) string {
	return IteratedSHA256(salt+ip, clientKeyIterations)
}

// ShortID returns the first 12 hex chars of SHA256(input), used for log
// correlation without recording PII.
func ShortID(input string) string {
	return SHA256Hex(input)[:12]
}
