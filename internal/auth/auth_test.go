package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-registry/internal/types"
)

func testUser() types.User {
	return types.User{ID: uuid.New(), Name: "Admin", Email: "admin@example.com"}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", "student-registry", time.Hour)
	user := testUser()

	token, err := svc.Issue(user)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "Admin", claims.Name)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "student-registry", claims.Issuer)
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", "student-registry", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(testUser())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService("secret", "student-registry", time.Hour)
	user := testUser()

	otherKey, err := NewTokenService("another-secret", "student-registry", time.Hour).Issue(user)
	require.NoError(t, err)

	otherIssuer, err := NewTokenService("secret", "someone-else", time.Hour).Issue(user)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: user.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "student-registry",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tokens := map[string]string{
		"garbage":      "not-a-jwt",
		"wrong key":    otherKey,
		"wrong issuer": otherIssuer,
		"alg none":     unsigned,
		"empty":        "",
	}
	for name, token := range tokens {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Validate(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.NoError(t, ComparePassword(hash, "s3cret!"))
	assert.ErrorIs(t, ComparePassword(hash, "wrong"), ErrPasswordMismatch)

	_, err = HashPassword("")
	assert.Error(t, err)
}

func TestHashPassword_LimitIsBytesNotCharacters(t *testing.T) {
	_, err := HashPassword(strings.Repeat("é", 40))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = HashPassword(strings.Repeat("é", 36))
	assert.NoError(t, err)
}
