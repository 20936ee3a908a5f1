package solana

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyManager(t *testing.T) {
	km := NewKeyManager(t.TempDir())

	t.Run("Generate Key Pair", func(t *testing.T) {
		account, err := km.GenerateKeyPair()
		require.NoError(t, err)
		assert.NotNil(t, account)
		assert.NotEmpty(t, account.PublicKey.ToBase58())
		assert.Equal(t, 64, len(account.PrivateKey), "Private key should be 64 bytes")
	})

	t.Run("Encrypt and Decrypt Private Key", func(t *testing.T) {
		account, err := km.GenerateKeyPair()
		require.NoError(t, err)

		password := "test-password"
		encrypted, err := km.EncryptPrivateKey(account.PrivateKey, password)
		require.NoError(t, err)
		assert.NotEmpty(t, encrypted)

		decrypted, err := km.DecryptPrivateKey(encrypted, password)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(account.PrivateKey[:], decrypted), "Decrypted private key should match original")

		_, err = km.DecryptPrivateKey(encrypted, "wrong-password")
		assert.Error(t, err)
	})

	t.Run("Save and Load KeyStore Entry", func(t *testing.T) {
		account, err := km.GenerateKeyPair()
		require.NoError(t, err)

		password := "test-password"
		require.NoError(t, km.SaveKeyStoreEntry(account, password))

		loaded, err := km.LoadKeyStoreEntry(account.PublicKey.ToBase58(), password)
		require.NoError(t, err)
		assert.Equal(t, account.PublicKey.ToBase58(), loaded.PublicKey.ToBase58())
	})

	t.Run("Load Or Create Authority", func(t *testing.T) {
		km2 := NewKeyManager(t.TempDir())
		password := "authority-pass"

		first, err := km2.LoadOrCreateAuthority(password)
		require.NoError(t, err)
		assert.True(t, ValidAddress(first))

		second, err := km2.LoadOrCreateAuthority(password)
		require.NoError(t, err)
		assert.Equal(t, first, second, "authority address should be stable")
	})
}
