package auth

import (
	"testing"
	"time"

	"github.com/bazaarly/bazaarly-backend/pkg/config"
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "bazaarly-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()
	vendorID := uuid.New()

	payload := AccessTokenPayload{
		UserID:         uuid.New(),
		Role:           enums.UserRoleVendorAdmin,
		VendorID:       &vendorID,
		VendorApproved: true,
	}

	signed, err := MintAccessToken(cfg, now, payload)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := ParseAccessToken(cfg, signed)
	require.NoError(t, err)

	assert.Equal(t, payload.UserID, claims.UserID)
	assert.Equal(t, enums.UserRoleVendorAdmin, claims.Role)
	require.NotNil(t, claims.VendorID)
	assert.Equal(t, vendorID, *claims.VendorID)
	assert.True(t, claims.VendorApproved)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, cfg.Issuer, claims.Issuer)
}

func TestMintAccessTokenValidation(t *testing.T) {
	now := time.Now()
	payload := AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRoleCustomer}

	_, err := MintAccessToken(config.JWTConfig{Issuer: "x", ExpirationMinutes: 5}, now, payload)
	assert.Error(t, err)

	_, err = MintAccessToken(config.JWTConfig{Secret: "x", ExpirationMinutes: 5}, now, payload)
	assert.Error(t, err)

	_, err = MintAccessToken(testJWTConfig(), now, AccessTokenPayload{UserID: uuid.New(), Role: "superuser"})
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	past := time.Now().Add(-2 * time.Hour)

	signed, err := MintAccessToken(cfg, past, AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleCustomer,
	})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, signed)
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()

	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleCustomer,
	})
	require.NoError(t, err)

	other := cfg
	other.Secret = "different-secret"
	_, err = ParseAccessToken(other, signed)
	assert.Error(t, err)
}
