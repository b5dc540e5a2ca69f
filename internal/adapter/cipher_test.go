package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipher_RoundTrip(t *testing.T) {
	c, err := NewCipher("local-secret")
	require.NoError(t, err)

	sealed, err := c.Encrypt("refresh-credential")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "refresh-credential")

	again, err := c.Encrypt("refresh-credential")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per seal")

	plain, err := c.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "refresh-credential", plain)
}

func TestCipher_DecryptFailures(t *testing.T) {
	c, err := NewCipher("local-secret")
	require.NoError(t, err)
	other, err := NewCipher("rotated-secret")
	require.NoError(t, err)

	sealed, err := c.Encrypt("x")
	require.NoError(t, err)

	_, err = other.Decrypt(sealed)
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = c.Decrypt("not base64!")
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = c.Decrypt("AAAA")
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestNewCipher_EmptySecret(t *testing.T) {
	_, err := NewCipher("")
	require.Error(t, err)
}
