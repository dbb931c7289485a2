package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newHasher(t *testing.T) *Bcrypt {
	t.Helper()
	h, err := NewBcrypt(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestNewBcrypt_Cost(t *testing.T) {
	h, err := NewBcrypt(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, h.Cost())

	h, err = NewBcrypt(bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, h.Cost())

	_, err = NewBcrypt(bcrypt.MinCost - 1)
	assert.Error(t, err)
	_, err = NewBcrypt(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}

func TestBcrypt_HashEmbedsCost(t *testing.T) {
	t.Parallel()
	h := newHasher(t)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestBcrypt_HashIsSalted(t *testing.T) {
	t.Parallel()
	h := newHasher(t)

	a, err := h.Hash("same input")
	require.NoError(t, err)
	b, err := h.Hash("same input")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Compare("same input", a))
	assert.True(t, h.Compare("same input", b))
}

func TestBcrypt_Compare(t *testing.T) {
	t.Parallel()
	h := newHasher(t)

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, h.Compare("s3cret-pass", hash))
	assert.False(t, h.Compare("s3cret-Pass", hash))
	assert.False(t, h.Compare("", hash))
	assert.False(t, h.Compare("s3cret-pass", "not-a-hash"))
}

func TestBcrypt_HashRejectsEmptyAndTooLong(t *testing.T) {
	t.Parallel()
	h := newHasher(t)

	_, err := h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = h.Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestBcrypt_DummyNeverMatches(t *testing.T) {
	t.Parallel()
	h := newHasher(t)

	d := h.Dummy()
	require.NotEmpty(t, d)
	assert.Equal(t, d, h.Dummy(), "dummy hash is computed once")
	assert.False(t, h.Compare("", d))
	assert.False(t, h.Compare("password", d))
}
