package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades hashing speed for brute-force resistance. Bumping it
// only affects newly stored hashes; existing ones keep their recorded cost.
const bcryptCost = 12

// HashPassword derives a one-way salted hash from a plaintext password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(b), err
}

// CheckPassword reports whether password matches the stored hash.
// bcrypt's comparison is constant-time with respect to the hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
