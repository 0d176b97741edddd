package license

import (
	"math/rand"
	"strings"
)

const (
	// KeyPrefix is the fixed literal every generated key starts with.
	KeyPrefix = "STOX"

	keyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	keyGroups   = 4
	keyGroupLen = 4
)

// GenerateKey returns a new key of the form STOX-XXXX-XXXX-XXXX-XXXX with
// each X drawn uniformly from A-Z0-9. Uniqueness is probabilistic; the
// primary key constraint on the license table catches collisions.
func GenerateKey() string {
	var b strings.Builder
	b.Grow(len(KeyPrefix) + keyGroups*(keyGroupLen+1))

	b.WriteString(KeyPrefix)
	for g := 0; g < keyGroups; g++ {
		b.WriteByte('-')
		for i := 0; i < keyGroupLen; i++ {
			b.WriteByte(keyAlphabet[rand.Intn(len(keyAlphabet))])
		}
	}
	return b.String()
}
