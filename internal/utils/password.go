package utils

import "golang.org/x/crypto/bcrypt" // Password hashing

// Hasher hashes and verifies passwords with bcrypt.
// bcrypt generates a random salt per call and embeds it in the result.
type Hasher struct {
	cost int // bcrypt work factor
}

// NewHasher returns a Hasher with the given cost, using bcrypt.DefaultCost when out of range
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the salted bcrypt hash of plain
func (h *Hasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plain matches hashed
func (h *Hasher) Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
