// Package checksum fingerprints snippets so index sync can skip unchanged ones.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Of returns the digest of v's JSON encoding. Struct field order is fixed,
// so equal values always produce equal digests.
func Of(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Sum(data), nil
}
