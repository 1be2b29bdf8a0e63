package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("secret124", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("secret123")
	require.NoError(t, err)
	second, err := HashPassword("secret123")
	require.NoError(t, err)
	// bcrypt salts per call; both still verify.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPasswordHash("secret123", first))
	assert.True(t, CheckPasswordHash("secret123", second))
}

func TestCheckPasswordHashMalformedDigest(t *testing.T) {
	assert.False(t, CheckPasswordHash("secret123", "not-a-bcrypt-digest"))
	assert.False(t, CheckPasswordHash("secret123", ""))
}
