package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_ValidateAccessToken_Valid(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)

	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "baseline-api", claims.Issuer)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTService_ValidateAccessToken_WrongSecret(t *testing.T) {
	svc1 := NewJWTService("secret-1", 15*time.Minute)
	svc2 := NewJWTService("secret-2", 15*time.Minute)

	token, err := svc1.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = svc2.ValidateAccessToken(token)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse token")
}

func TestJWTService_ValidateAccessToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", 1*time.Millisecond)

	token, err := svc.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.ValidateAccessToken(token)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse token")
}

func TestJWTService_ValidateAccessToken_NoneAlgorithm(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: uuid.New()})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)

	assert.Error(t, err)
}

func TestJWTService_ValidateAccessToken_MissingUserID(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	token, err := svc.GenerateAccessToken(uuid.Nil)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)

	assert.Error(t, err)
}

func TestJWTService_ValidateAccessToken_MalformedToken(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	testCases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt-token"},
		{"partial jwt", "eyJhbGciOiJIUzI1NiJ9."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tc.token)
			assert.Error(t, err)
		})
	}
}
