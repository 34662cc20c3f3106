package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
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

// RowHash identifies a table row by its cell contents
type RowHash Hash

func (h RowHash) String() string { return Hash(h).String() }

// rowSeparator keeps adjacent cells from colliding ("ab","c" vs "a","bc")
const rowSeparator = "\x1f"

// ComputeRowHash hashes the canonical string form of a row's cells.
// Cell order matters; identical rows always produce identical hashes.
func ComputeRowHash(cells []string) RowHash {
	var data strings.Builder
	for i, cell := range cells {
		if i > 0 {
			data.WriteString(rowSeparator)
		}
		data.WriteString(cell)
	}
	return RowHash(NewHash([]byte(data.String())))
}
