package util

import (
	"crypto/sha256"
	"fmt"
	"hash/fnv"
	"math/big"
)

// uidRoot is the UID prefix for generated objects (the pydicom/dcm4che test root).
const uidRoot = "1.2.826.0.1.3680043.8.498."

// GenerateDeterministicUID derives a DICOM UID from a key. The same key always
// yields the same UID; the result is at most 64 characters.
func GenerateDeterministicUID(key string) string {
	sum := sha256.Sum256([]byte(key))
	n := new(big.Int).SetBytes(sum[:])
	digits := n.String()

	maxDigits := 64 - len(uidRoot)
	if len(digits) > maxDigits {
		digits = digits[:maxDigits]
	}
	// Components must not have leading zeros
	for len(digits) > 1 && digits[0] == '0' {
		digits = digits[1:]
	}
	return uidRoot + digits
}

// GenerateFieldID derives a short identifier (e.g., "SF1A2B3C4D") from a key.
func GenerateFieldID(key string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key)) // hash.Write never returns an error
	return fmt.Sprintf("SF%08X", h.Sum32())
}
