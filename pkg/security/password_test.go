package security

import (
	"strings"
	"testing"

	"github.com/bazaarly/bazaarly-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := testPasswordConfig()

	hash, err := HashPassword("s3cret-passphrase", cfg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	ok, err := VerifyPassword("s3cret-passphrase", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong-passphrase", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("", testPasswordConfig())
	assert.Error(t, err)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("anything", "$bcrypt$not-a-real-hash")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	cfg := testPasswordConfig()

	first, err := HashPassword("same-input", cfg)
	require.NoError(t, err)
	second, err := HashPassword("same-input", cfg)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
