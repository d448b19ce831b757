package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	sealed, err := Encrypt("some.refresh.token", "short-key")
	require.NoError(t, err)
	assert.NotEqual(t, "some.refresh.token", sealed)

	opened, err := Decrypt(sealed, "short-key")
	require.NoError(t, err)
	assert.Equal(t, "some.refresh.token", opened)
}

func TestEncryptIsRandomized(t *testing.T) {
	a, err := Encrypt("value", "key")
	require.NoError(t, err)
	b, err := Encrypt("value", "key")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecryptWrongKey(t *testing.T) {
	sealed, err := Encrypt("value", "key-one")
	require.NoError(t, err)

	opened, err := Decrypt(sealed, "key-two")
	require.NoError(t, err)
	assert.NotEqual(t, "value", opened)
}

func TestDecryptGarbage(t *testing.T) {
	if _, err := Decrypt("!!!", "key"); err == nil {
		t.Error("expected error for non-base64 input")
	}
	if _, err := Decrypt("dG9vc2hvcnQ=", "key"); err == nil {
		t.Error("expected error for truncated ciphertext")
	}
}
