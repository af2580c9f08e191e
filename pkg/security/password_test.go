package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/teame/hospital-api/pkg/security"
)

func TestHashCompareRoundTrip(t *testing.T) {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cretpass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", hash)

	assert.NoError(t, hasher.Compare(hash, "s3cretpass"))
	assert.Error(t, hasher.Compare(hash, "wrongpass"))
}

func TestHashRejectsShortPassword(t *testing.T) {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)

	_, err := hasher.Hash("short")
	assert.ErrorIs(t, err, security.ErrPasswordTooShort)
}
