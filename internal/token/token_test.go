package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	m := NewManager("test-secret")

	signed, err := m.Sign("653f1c2e9b1e8a0012345678", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "653f1c2e9b1e8a0012345678", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParse_WrongSecret(t *testing.T) {
	signed, err := NewManager("secret-a").Sign("user-1", "user")
	require.NoError(t, err)

	_, err = NewManager("secret-b").Parse(signed)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, err := NewManager("secret").Parse("not-a-token")
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	now := time.Now()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-24 * time.Hour)),
		},
		UserID: "user-1",
		Role:   "user",
	})
	signed, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewManager("secret").Parse(signed)
	assert.Error(t, err)
}

func TestParse_WrongSigningMethod(t *testing.T) {
	// alg "none" tokens must never validate
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1"})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager("secret").Parse(signed)
	assert.Error(t, err)
}
