package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt cost used for hashes produced by this service.
const DefaultHashCost = 12

// MinAcceptedCost is the lowest bcrypt cost accepted for configured admin hashes.
const MinAcceptedCost = 10

var ErrWeakHash = errors.New("password hash cost below minimum")

// HashPassword generates a bcrypt hash with DefaultHashCost.
func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, DefaultHashCost)
}

// HashPasswordWithCost generates a bcrypt hash with an explicit cost.
// Tests use bcrypt.MinCost to keep suites fast.
func HashPasswordWithCost(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if password matches hash.
// A mismatch is reported as (false, nil); a malformed hash as an error.
func VerifyPassword(password, encodedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

// CheckHashStrength rejects hashes that are malformed or cheaper than MinAcceptedCost.
func CheckHashStrength(encodedHash string) error {
	cost, err := bcrypt.Cost([]byte(encodedHash))
	if err != nil {
		return err
	}
	if cost < MinAcceptedCost {
		return ErrWeakHash
	}
	return nil
}
