package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestSignAndParse(t *testing.T) {
	tok, err := Sign("42", TypeAccess, secret, time.Minute)
	require.NoError(t, err)

	claims, err := Parse(tok, secret)
	require.NoError(t, err)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, TypeAccess, claims.Type)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	require.Equal(t, time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Sign("42", TypeAccess, secret, time.Minute)
	require.NoError(t, err)

	_, err = Parse(tok, []byte("other-secret"))
	require.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Sign("42", TypeAccess, secret, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(tok, secret)
	require.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse("not.a.jwt", secret)
	require.Error(t, err)
}

func TestParse_TypePreserved(t *testing.T) {
	tok, err := Sign("7", TypeRefresh, secret, time.Hour)
	require.NoError(t, err)

	claims, err := Parse(tok, secret)
	require.NoError(t, err)
	require.Equal(t, TypeRefresh, claims.Type)
}
