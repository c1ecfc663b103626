package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("securepassword")
	require.NoError(t, err)
	require.Len(t, hash, encodedLen)

	ok, err := VerifyPassword("securepassword", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrongpassword", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same input")
	require.NoError(t, err)
	second, err := HashPassword("same input")
	require.NoError(t, err)

	// Salts differ, so stored hashes differ, yet both verify.
	assert.NotEqual(t, first, second)

	for _, hash := range []string{first, second} {
		ok, err := VerifyPassword("same input", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestVerifyPasswordEmptyInput(t *testing.T) {
	hash, err := HashPassword("")
	require.NoError(t, err)

	ok, err := VerifyPassword("", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("anything", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordMalformedStored(t *testing.T) {
	cases := map[string]string{
		"empty":     "",
		"short":     "abcdef",
		"not hex":   strings.Repeat("zz", saltLen+keyLen),
		"truncated": strings.Repeat("ab", saltLen),
	}
	for name, stored := range cases {
		t.Run(name, func(t *testing.T) {
			ok, err := VerifyPassword("pw", stored)
			assert.Error(t, err)
			assert.False(t, ok)
		})
	}
}
