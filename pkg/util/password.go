package util

import "golang.org/x/crypto/bcrypt"

// adminHashCost is the bcrypt work factor for the stored admin password.
const adminHashCost = 12

// HashPassword returns the bcrypt hash persisted in the settings record.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), adminHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether a candidate matches the stored hash.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
