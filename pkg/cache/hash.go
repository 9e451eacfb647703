package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ArtifactKey generates the cache key for a rendered artifact.
// The key format is: artifact:<format>:hash(dot), so the same network
// rendered to different formats caches independently.
func ArtifactKey(dot, format string) string {
	return fmt.Sprintf("artifact:%s:%s", format, Hash([]byte(dot)))
}
