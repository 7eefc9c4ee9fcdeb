package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Verifies(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$2"), "bcrypt modular crypt format")
	assert.True(t, VerifyPassword("password123", hash))
	assert.False(t, VerifyPassword("password124", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("same")
	require.NoError(t, err)
	second, err := HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("same", first))
	assert.True(t, VerifyPassword("same", second))
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("password123", "not-a-hash"))
	assert.False(t, VerifyPassword("password123", ""))
}
