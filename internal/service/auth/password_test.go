package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndCompare(t *testing.T) {
	t.Parallel()

	verifier := NewBcryptVerifier(bcrypt.MinCost) // MinCost keeps the test fast

	hashed, err := verifier.Hash("hunter2hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
	assert.NotEqual(t, "hunter2hunter2", hashed)

	assert.NoError(t, verifier.Compare(hashed, "hunter2hunter2"))
	assert.Error(t, verifier.Compare(hashed, "wrong password"))
}

func TestBcryptZeroCostFallsBackToDefault(t *testing.T) {
	t.Parallel()

	verifier := NewBcryptVerifier(0)
	assert.Equal(t, bcrypt.DefaultCost, verifier.cost)
}

func TestBcryptCompareRejectsGarbageHash(t *testing.T) {
	t.Parallel()

	verifier := NewBcryptVerifier(bcrypt.MinCost)
	assert.Error(t, verifier.Compare("not-a-bcrypt-hash", "anything"))
}
