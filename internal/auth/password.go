package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword creates a bcrypt hash from the given plaintext password.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword checks if the provided plaintext password matches the stored bcrypt hash.
func VerifyPassword(hashedPassword, providedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword))
}

const specialChars = `!@#$%^&*(),.?":{}|<>`

// CheckPasswordPolicy enforces the platform password rules: 8-16
// characters with at least one uppercase letter and one special character.
func CheckPasswordPolicy(password string) bool {
	if len(password) < 8 || len(password) > 16 {
		return false
	}

	hasUpper := false
	hasSpecial := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if strings.ContainsRune(specialChars, r) {
			hasSpecial = true
		}
	}

	return hasUpper && hasSpecial
}
