package hash

import "golang.org/x/crypto/bcrypt"

// Hasher is the credential verifier capability: it produces password
// hashes and checks plaintext against stored hashes.
type Hasher interface {
	Hash(plain string) (string, error)
	Compare(plain, hashed string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcrypt returns a bcrypt-backed Hasher.
func NewBcrypt() Hasher {
	return &bcryptHasher{cost: 10}
}

func (h *bcryptHasher) Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h *bcryptHasher) Compare(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
