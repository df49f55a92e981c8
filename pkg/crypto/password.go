package crypto

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes plaintext with bcrypt at the given cost. Each call
// generates a fresh salt, so hashing the same plaintext twice yields
// different digests. Costs outside bcrypt's supported range fall back to
// the library default.
func HashPassword(plain string, cost int) ([]byte, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return bcrypt.GenerateFromPassword([]byte(plain), cost)
}

// VerifyPassword reports whether plaintext matches the stored digest.
// Comparison is constant-time inside bcrypt; a malformed digest fails
// closed instead of erroring out of the auth path.
func VerifyPassword(plain string, digest []byte) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(plain)) == nil
}
