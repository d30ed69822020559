package common

import (
	"encoding/hex"
	"math/big"
	"regexp"

	"golang.org/x/crypto/sha3"
)

const (
	MinAccountIDLen = 2
	MaxAccountIDLen = 64
)

// Account IDs are lowercase alphanumeric segments joined by '.', where each
// segment may contain '-' or '_' between alphanumeric runs. This mirrors the
// account model of the source chain; destination-chain address formats are
// validated elsewhere.
var accountIDPattern = regexp.MustCompile(`^(([a-z\d]+[-_])*[a-z\d]+\.)*([a-z\d]+[-_])*[a-z\d]+$`)

// IsValidAccountID reports whether s is a syntactically valid account ID.
func IsValidAccountID(s string) bool {
	if len(s) < MinAccountIDLen || len(s) > MaxAccountIDLen {
		return false
	}
	return accountIDPattern.MatchString(s)
}

// Hash256Hex returns the sha3-256 digest of data as a hex string without
// prefix. Used to derive fixed keys for the kv table.
func Hash256Hex(data []byte) string {
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ParseAtomAmount parses a base-10 amount of atoms (smallest units).
// Returns nil if the string is not a valid non-negative integer.
func ParseAtomAmount(s string) *big.Int {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok || amount.Sign() < 0 {
		return nil
	}
	return amount
}
