package security

import (
	"auth-service/config"
	"auth-service/internal/apperr"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testKeyOnce sync.Once
	testKeyPEM  []byte
)

// testPrivateKeyPEM : генерация 2048 бит медленная, ключ один на пакет
func testPrivateKeyPEM(t *testing.T) []byte {
	t.Helper()
	testKeyOnce.Do(func() {
		privatePEM, _, err := GenerateKeyPEM(MinRSAKeyBits)
		if err != nil {
			panic(err)
		}
		testKeyPEM = privatePEM
	})
	return testKeyPEM
}

func testKeyMaterial(t *testing.T) *KeyMaterial {
	t.Helper()
	keys, err := ParsePrivateKeyPEM(testPrivateKeyPEM(t))
	require.NoError(t, err)
	return keys
}

type staticSource struct {
	data []byte
	err  error
}

func (s staticSource) GetObject(context.Context, string) ([]byte, error) {
	return s.data, s.err
}

func TestParsePrivateKeyPEM(t *testing.T) {
	keys, err := ParsePrivateKeyPEM(testPrivateKeyPEM(t))
	require.NoError(t, err)

	privateKey, err := keys.PrivateKey()
	require.NoError(t, err)
	publicKey, err := keys.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, &privateKey.PublicKey, publicKey)

	_, err = ParsePrivateKeyPEM([]byte("not a key"))
	assert.ErrorIs(t, err, apperr.ErrKeyUnavailable)
}

func TestParsePrivateKeyPEM_RejectsShortKey(t *testing.T) {
	short, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	data := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(short)})

	_, err = ParsePrivateKeyPEM(data)

	assert.ErrorIs(t, err, apperr.ErrKeyUnavailable)
	assert.ErrorContains(t, err, "1024 bits")
}

func TestKeyMaterial_Nil(t *testing.T) {
	var keys *KeyMaterial

	_, err := keys.PrivateKey()
	assert.ErrorIs(t, err, apperr.ErrKeyUnavailable)
	_, err = keys.PublicKey()
	assert.ErrorIs(t, err, apperr.ErrKeyUnavailable)
}

func TestLoadKeyMaterial(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "private.pem")
	require.NoError(t, os.WriteFile(path, testPrivateKeyPEM(t), 0o600))

	t.Run("file", func(t *testing.T) {
		keys, err := LoadKeyMaterial(ctx, &config.KeysConfig{Source: "file", PrivateKeyPath: path}, nil)
		require.NoError(t, err)
		_, err = keys.PrivateKey()
		assert.NoError(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadKeyMaterial(ctx, &config.KeysConfig{PrivateKeyPath: filepath.Join(dir, "nope.pem")}, nil)
		assert.ErrorIs(t, err, apperr.ErrKeyUnavailable)
	})

	t.Run("s3", func(t *testing.T) {
		cfg := &config.KeysConfig{Source: "s3", S3: config.S3Config{Key: "keys/private.pem"}}
		keys, err := LoadKeyMaterial(ctx, cfg, staticSource{data: testPrivateKeyPEM(t)})
		require.NoError(t, err)
		assert.NotNil(t, keys)
	})

	t.Run("s3 failure", func(t *testing.T) {
		cfg := &config.KeysConfig{Source: "s3", S3: config.S3Config{Key: "keys/private.pem"}}
		_, err := LoadKeyMaterial(ctx, cfg, staticSource{err: errors.New("access denied")})
		assert.ErrorIs(t, err, apperr.ErrKeyUnavailable)

		_, err = LoadKeyMaterial(ctx, cfg, nil)
		assert.ErrorIs(t, err, apperr.ErrKeyUnavailable)
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := LoadKeyMaterial(ctx, &config.KeysConfig{Source: "vault"}, nil)
		assert.ErrorIs(t, err, apperr.ErrKeyUnavailable)
	})
}

func TestGenerateKeyPEM(t *testing.T) {
	_, _, err := GenerateKeyPEM(1024)
	assert.Error(t, err)

	privatePEM := testPrivateKeyPEM(t)
	block, _ := pem.Decode(privatePEM)
	require.NotNil(t, block)
	assert.Equal(t, "RSA PRIVATE KEY", block.Type)
}
