package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Test constants
const (
	testPassword      = "SecurePassword123!"
	testWrongPassword = "WrongPassword456!"
)

func TestHashPassword_Success(t *testing.T) {
	hash, err := HashPasswordWithCost(testPassword, bcrypt.MinCost)

	require.NoError(t, err, "HashPassword should not return error for valid password")
	assert.NotEmpty(t, hash, "Hash should not be empty")
	assert.NotEqual(t, testPassword, hash, "Hash should be different from password")
	assert.True(t, strings.HasPrefix(hash, "$2a$"), "Hash should carry the bcrypt identifier")
}

func TestHashPassword_DefaultCost(t *testing.T) {
	hash, err := HashPassword(testPassword)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultHashCost, cost)
	assert.GreaterOrEqual(t, cost, MinAcceptedCost)
}

func TestVerifyPassword_Correct(t *testing.T) {
	hash, err := HashPasswordWithCost(testPassword, bcrypt.MinCost)
	require.NoError(t, err, "Setup: HashPassword should not fail")

	match, err := VerifyPassword(testPassword, hash)

	require.NoError(t, err, "VerifyPassword should not return error")
	assert.True(t, match, "Password should match its hash")
}

func TestVerifyPassword_Incorrect(t *testing.T) {
	hash, err := HashPasswordWithCost(testPassword, bcrypt.MinCost)
	require.NoError(t, err, "Setup: HashPassword should not fail")

	match, err := VerifyPassword(testWrongPassword, hash)

	require.NoError(t, err, "A mismatch is not an error")
	assert.False(t, match, "Wrong password should not match hash")
}

func TestHashPassword_UniqueHashes(t *testing.T) {
	hash1, err1 := HashPasswordWithCost(testPassword, bcrypt.MinCost)
	hash2, err2 := HashPasswordWithCost(testPassword, bcrypt.MinCost)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotEqual(t, hash1, hash2, "Same password should produce different hashes due to unique salt")
}

func TestHashPassword_TooLong(t *testing.T) {
	// bcrypt only looks at 72 bytes; longer inputs are refused rather than truncated
	_, err := HashPasswordWithCost(strings.Repeat("a", 100), bcrypt.MinCost)
	assert.Error(t, err)
}

func TestHashPassword_UnicodeCharacters(t *testing.T) {
	unicodePasswords := []string{
		"パスワード123",
		"Şifre123!",
		"Пароль123",
		"🔒🔑Password123",
	}

	for _, password := range unicodePasswords {
		t.Run(password, func(t *testing.T) {
			hash, err := HashPasswordWithCost(password, bcrypt.MinCost)
			require.NoError(t, err)

			match, err := VerifyPassword(password, hash)
			require.NoError(t, err)
			assert.True(t, match, "Unicode password should match its hash")
		})
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	invalidHashes := []string{
		"",
		"plain-text-not-hash",
		"$invalid$format$",
		"$2a$10$short",
	}

	for _, invalidHash := range invalidHashes {
		t.Run(invalidHash, func(t *testing.T) {
			match, err := VerifyPassword(testPassword, invalidHash)

			assert.Error(t, err, "VerifyPassword should return error for invalid hash format")
			assert.False(t, match, "Match should be false for invalid hash")
		})
	}
}

func TestCheckHashStrength(t *testing.T) {
	weak, err := HashPasswordWithCost(testPassword, bcrypt.MinCost)
	require.NoError(t, err)
	strong, err := HashPasswordWithCost(testPassword, MinAcceptedCost)
	require.NoError(t, err)

	assert.ErrorIs(t, CheckHashStrength(weak), ErrWeakHash)
	assert.NoError(t, CheckHashStrength(strong))
	assert.Error(t, CheckHashStrength("not-a-hash"))
}
