package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type session struct {
	UserID        string `json:"uid"`
	WalletAddress string `json:"wallet"`
}

func TestJWT(t *testing.T) {
	engine := NewEngine("pngfun", "secret")
	token, err := engine.Generate(time.Minute, session{UserID: "user1", WalletAddress: "0xabc"})
	require.NoError(t, err)

	var s session
	require.NoError(t, engine.Verify(token, &s))
	require.Equal(t, session{UserID: "user1", WalletAddress: "0xabc"}, s)
}

func TestJWTExpiration(t *testing.T) {
	engine := NewEngine("pngfun", "secret")
	token, err := engine.Generate(time.Nanosecond, "abc")
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	var msg string
	require.Error(t, engine.Verify(token, &msg))
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewEngine("pngfun", "secret").Generate(time.Minute, "abc")
	require.NoError(t, err)

	var msg string
	require.Error(t, NewEngine("pngfun", "other").Verify(token, &msg))
}

func TestJWTWrongIssuer(t *testing.T) {
	token, err := NewEngine("other", "secret").Generate(time.Minute, "abc")
	require.NoError(t, err)

	var msg string
	require.ErrorIs(t, NewEngine("pngfun", "secret").Verify(token, &msg), ErrInvalidToken)
}
