// Package digest implements the canonical encoding and hashing rules for
// sealing and validating records in the ledger.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// ZeroHash is the sentinel previous-hash value carried by the genesis record
// to mark the absence of a predecessor.
const ZeroHash = "0"

// HashLen is the length of a hex encoded digest.
const HashLen = 64

// MaxDifficulty is the largest number of leading zero hex digits a digest
// can carry.
const MaxDifficulty = HashLen

// Hash produces the digest for a record's fields. The fields are concatenated
// in this exact order using their decimal/text representation and hashed with
// SHA-256. The encoding must stay stable or validation against chains built
// by other implementations will diverge.
func Hash(index uint64, timeStamp uint64, payload string, prevHash string, nonce uint64) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(index, 10))
	sb.WriteString(strconv.FormatUint(timeStamp, 10))
	sb.WriteString(payload)
	sb.WriteString(prevHash)
	sb.WriteString(strconv.FormatUint(nonce, 10))

	hash := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(hash[:])
}

// Solved checks the hash to make sure it complies with the POW rules. We
// need to match a difficulty number of leading zero hex digits.
func Solved(difficulty uint, hash string) bool {
	if len(hash) != HashLen {
		return false
	}

	for i := uint(0); i < difficulty; i++ {
		if hash[i] != '0' {
			return false
		}
	}

	return true
}
