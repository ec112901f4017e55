package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher is the one-way hashing contract: Hash salts per call so the
// same plaintext never hashes to the same value twice, and Verify compares in
// constant time.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt at the default cost.
type BcryptHasher struct{}

// Hash generates a salted bcrypt hash of the plaintext.
func (BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether the plaintext matches the stored hash.
func (BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
