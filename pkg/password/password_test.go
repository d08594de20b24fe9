package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	h := NewBcryptHasher()

	hashed, err := h.Hash("longenough1")
	require.NoError(t, err)
	assert.NotEqual(t, "longenough1", hashed)

	assert.True(t, h.Compare(hashed, "longenough1"))
	assert.False(t, h.Compare(hashed, "different1"))
}

func TestCompareMalformedHash(t *testing.T) {
	h := NewBcryptHasher()

	assert.False(t, h.Compare("not-a-bcrypt-hash", "longenough1"))
	assert.False(t, h.Compare("", "longenough1"))
}

func TestHashIsSalted(t *testing.T) {
	h := NewBcryptHasher()

	first, err := h.Hash("longenough1")
	require.NoError(t, err)
	second, err := h.Hash("longenough1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
