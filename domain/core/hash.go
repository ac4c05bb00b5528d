package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// SourceHash fingerprints the raw bytes of an input file so a report can be
// tied back to the exact data it was produced from.
type SourceHash Hash

// NewSourceHash computes the fingerprint of raw file content
func NewSourceHash(data []byte) SourceHash {
	return SourceHash(NewHash(data))
}

// String returns the string representation
func (h SourceHash) String() string { return Hash(h).String() }

// Short returns the first 12 hex chars, enough to eyeball in logs
func (h SourceHash) Short() string {
	s := Hash(h).String()
	if len(s) <= 12 {
		return s
	}
	return s[:12]
}
