// Package password provides one-way credential hashing and verification.
package password

import "golang.org/x/crypto/bcrypt"

// Hasher abstracts the hash algorithm so services never touch bcrypt directly.
type Hasher interface {
	Hash(plain string) (string, error)
	Compare(hashed, plain string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a Hasher backed by bcrypt with the default cost.
func NewBcryptHasher() Hasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *bcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare reports whether plain matches hashed. Malformed hashes are treated
// as a mismatch, never an error.
func (h *bcryptHasher) Compare(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
