package crypto

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateNonce(t *testing.T) {
	nonce, err := GenerateNonce(16)
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile("^[0-9a-f]{32}$"), nonce)

	other, err := GenerateNonce(16)
	require.NoError(t, err)
	require.NotEqual(t, nonce, other)
}

func TestGenerateRandomAlphabet(t *testing.T) {
	s := GenerateRandomAlphabet(8)
	require.Regexp(t, regexp.MustCompile("^[a-z0-9]{8}$"), s)
}
