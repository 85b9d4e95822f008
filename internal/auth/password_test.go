package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("admin123", testBcryptCost)
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
}

func TestHashPassword_SaltsEachHash(t *testing.T) {
	first, err := HashPassword("same-password", testBcryptCost)
	require.NoError(t, err)
	second, err := HashPassword("same-password", testBcryptCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashPassword_Limits(t *testing.T) {
	_, err := HashPassword("", testBcryptCost)
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = HashPassword(strings.Repeat("a", MaxPasswordLength), testBcryptCost)
	assert.NoError(t, err)

	_, err = HashPassword(strings.Repeat("a", MaxPasswordLength+1), testBcryptCost)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("user123", testBcryptCost)
	require.NoError(t, err)

	assert.NoError(t, CheckPassword("user123", hash))
	assert.ErrorIs(t, CheckPassword("user124", hash), ErrInvalidPassword)
	assert.Error(t, CheckPassword("user123", "not-a-hash"))
}

func TestNewBcryptHasher_Cost(t *testing.T) {
	assert.Equal(t, 4, NewBcryptHasher(4).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).Cost)

	hash, err := NewBcryptHasher(testBcryptCost).HashPassword("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, testBcryptCost, cost)
}
