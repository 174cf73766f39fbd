package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventboard/internal/domain"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("ops@example.com", []string{domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "ops@example.com", claims.Subject)
	assert.Equal(t, []string{"admin"}, claims.Roles)
}

func TestJWTVerifier_Verify(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")
	verifier := NewJWTVerifier("test-secret")

	valid, err := issuer.Issue("ops", []string{domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	expired, err := issuer.Issue("ops", []string{domain.RoleAdmin}, -time.Minute)
	require.NoError(t, err)
	foreign, err := NewJWTIssuer("other-secret").Issue("ops", []string{domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	anonymous, err := issuer.Issue("", nil, time.Hour)
	require.NoError(t, err)

	subject, roles, err := verifier.Verify(valid)
	require.NoError(t, err)
	assert.Equal(t, "ops", subject)
	assert.Equal(t, []string{"admin"}, roles)

	for name, token := range map[string]string{
		"expired":    expired,
		"foreign":    foreign,
		"no subject": anonymous,
		"garbage":    "not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := verifier.Verify(token)
			require.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
