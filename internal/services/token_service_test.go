package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	token, err := tokens.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, userID)
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	other := NewTokenService("other-secret", time.Hour)

	token, err := other.Issue(42)
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	tokens := NewTokenService("test-secret", -time.Minute)

	token, err := tokens.Issue(42)
	require.NoError(t, err)

	verifier := NewTokenService("test-secret", time.Hour)
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	for _, input := range []string{"", "garbage", "a.b.c"} {
		_, err := tokens.Verify(input)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestAuthorizeOwner(t *testing.T) {
	require.True(t, AuthorizeOwner(7, 7))
	require.False(t, AuthorizeOwner(7, 8))
}
