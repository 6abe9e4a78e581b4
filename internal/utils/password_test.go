package utils

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"
)

func TestHashPassword_Verify(t *testing.T) {
    hash, err := HashPassword("jaguar123", bcrypt.MinCost)
    require.NoError(t, err)
    assert.NotEqual(t, "jaguar123", hash)
    assert.True(t, VerifyPassword(hash, "jaguar123"))
    assert.False(t, VerifyPassword(hash, "ocelote"))
}

func TestVerifyPassword_NotAHash(t *testing.T) {
    assert.False(t, VerifyPassword("plain-text", "plain-text"))
}
