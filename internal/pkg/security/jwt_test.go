package security

import (
	"community/internal/api/config"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Cfg = &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 1}}

	token, err := GenerateToken(42)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)

	sig, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.Equal(t, strings.Split(token, ".")[2], sig)

	_, err = ExtractSignature("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	config.Cfg = &config.Config{JWT: config.JWTConfig{Secret: "secret-a", ExpireHours: 1}}
	token, err := GenerateToken(1)
	require.NoError(t, err)

	config.Cfg = &config.Config{JWT: config.JWTConfig{Secret: "secret-b", ExpireHours: 1}}
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, CheckPasswordHash("s3cret-pass", hash))
	assert.Error(t, CheckPasswordHash("wrong", hash))

	_, err = HashPassword("")
	assert.Error(t, err)
}
