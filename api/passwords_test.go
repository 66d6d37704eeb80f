package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordSalted(t *testing.T) {
	h1, err := hashPassword("secret1")
	require.NoError(t, err)
	h2, err := hashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := hashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, verifyPassword("secret1", hash))
	assert.False(t, verifyPassword("secret2", hash))
	assert.False(t, verifyPassword("", hash))
	assert.False(t, verifyPassword("secret1", []byte("not a bcrypt hash")))
}
