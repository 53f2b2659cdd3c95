package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost of 8 keeps PIN verification fast on low-CPU nodes
// Cost 8 = ~25ms, Cost 10 = ~100ms per hash
const bcryptCost = 8

// HashPIN generates a bcrypt hash of the login PIN
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPIN checks if the provided PIN matches the hash
func VerifyPIN(hashedPIN, pin string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPIN), []byte(pin))
	return err == nil
}
