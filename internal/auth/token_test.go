package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateParseRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, exp, err := tm.Generate("alice@example.com")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(60*time.Minute), exp, 5*time.Second)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Subject)

	subject, ok := tm.Subject(token)
	require.True(t, ok)
	require.Equal(t, "alice@example.com", subject)
}

func TestParseFailuresAreIndistinguishable(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	foreign := NewTokenManager("other-secret", 60)
	foreignToken, _, err := foreign.Generate("alice@example.com")
	require.NoError(t, err)

	expired := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
	expiredToken, _, err := expired.Generate("alice@example.com")
	require.NoError(t, err)

	cases := map[string]string{
		"foreign key": foreignToken,
		"malformed":   "not-a-token",
		"empty":       "",
		"expired":     expiredToken,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			claims, err := tm.Parse(token)
			require.Nil(t, claims)
			require.ErrorIs(t, err, ErrInvalidCredential)

			_, ok := tm.Subject(token)
			require.False(t, ok)
		})
	}
}

func TestExpiredTokenRejectedAfterTTL(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: time.Millisecond}

	token, _, err := tm.Generate("bob@example.com")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = tm.Parse(token)
	require.ErrorIs(t, err, ErrInvalidCredential)
}

func TestDefaultTTLApplied(t *testing.T) {
	tm := NewTokenManager("s", 0)
	require.Equal(t, time.Hour, tm.ttl)
}
