package services

import "golang.org/x/crypto/bcrypt"

// BcryptCost is the work factor for stored password hashes.
const BcryptCost = 12

// HashFunc turns a plaintext password into the hash sent to the backend.
type HashFunc func(password string) (string, error)

// HashPassword hashes password with bcrypt at BcryptCost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
