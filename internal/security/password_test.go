package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptVerifier(t *testing.T) {
	verifier := NewBcryptVerifier(bcrypt.MinCost)

	hash, err := verifier.Hash("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)

	assert.True(t, verifier.ComparePlaintextToStored("password", hash))
	assert.False(t, verifier.ComparePlaintextToStored("Password", hash))
	assert.False(t, verifier.ComparePlaintextToStored("password", "not-a-hash"))
}
