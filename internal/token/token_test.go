package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduagri-backend/internal/models"
	"eduagri-backend/internal/token"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	issuer := token.NewIssuer("test-secret", 7*24*time.Hour)

	tokenString, err := issuer.Issue(1, "a", models.UserRoleCustomer)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := issuer.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "a", claims.Username)
	assert.Equal(t, models.UserRoleCustomer, claims.Role)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyExpired(t *testing.T) {
	issuer := token.NewIssuer("test-secret", -time.Hour)

	tokenString, err := issuer.Issue(1, "a", models.UserRoleCustomer)
	require.NoError(t, err)

	claims, err := issuer.Verify(tokenString)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	other := token.NewIssuer("other-secret", time.Hour)

	tokenString, err := issuer.Issue(1, "a", models.UserRoleCustomer)
	require.NoError(t, err)

	_, err = other.Verify(tokenString)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)

	valid, err := issuer.Issue(1, "a", models.UserRoleCustomer)
	require.NoError(t, err)

	testCases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong segment count", "a.b"},
		{"junk segments", "a.b.c"},
		{"truncated signature", valid[:len(valid)-5]},
		{"alg none", "eyJhbGciOiJub25lIn0.eyJ1c2VySWQiOjF9."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := issuer.Verify(tc.input)
			assert.ErrorIs(t, err, token.ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}
