package analytics

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash pseudonymizes an identifier as the lowercase hex SHA-256 digest of its
// UTF-8 bytes. The empty string means "no identifier" and is returned as is.
func Hash(id string) string {
	if id == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
