package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundtrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	tok, err := svc.Issue("12345678", "student")
	require.NoError(t, err)

	claims, err := svc.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "12345678", claims.Sub)
	require.Equal(t, "student", claims.Role)
	require.Equal(t, "examprom", claims.Issuer)
	require.NotEmpty(t, claims.ID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewService("secret-a", time.Hour).Issue("admin", "admin")
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Hour).Parse(tok)
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	svc := NewService("test-secret", time.Nanosecond)

	tok, err := svc.Issue("12345678", "student")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.Parse(tok)
	require.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewService("test-secret", time.Hour).Parse("not.a.token")
	require.Error(t, err)
}

func TestTokensCarryUniqueIDs(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	a, err := svc.Issue("12345678", "student")
	require.NoError(t, err)
	b, err := svc.Issue("12345678", "student")
	require.NoError(t, err)

	ca, err := svc.Parse(a)
	require.NoError(t, err)
	cb, err := svc.Parse(b)
	require.NoError(t, err)
	require.NotEqual(t, ca.ID, cb.ID)
}
