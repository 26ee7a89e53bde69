package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	salt, err := GenSalt()
	require.NoError(t, err)
	require.Len(t, salt, 32)

	hash, err := HashPassword("s3cret", salt)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	ok, err := ComparePassword("s3cret", hash, salt)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ComparePassword("wrong", hash, salt)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordRejectsEmptyInput(t *testing.T) {
	_, err := HashPassword("", "salt")
	assert.Error(t, err)

	_, err = HashPassword("pw", "")
	assert.Error(t, err)
}

func TestHashPasswordDeterministicPerSalt(t *testing.T) {
	h1, err := HashPassword("pw", "aaaa")
	require.NoError(t, err)
	h2, err := HashPassword("pw", "aaaa")
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	h3, err := HashPassword("pw", "bbbb")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}
