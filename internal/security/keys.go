package security

import (
	"auth-service/config"
	"auth-service/internal/apperr"
	"auth-service/internal/ports"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

const MinRSAKeyBits = 2048

// KeyMaterial : RSA ключи для access токенов. Загружается один раз при старте
type KeyMaterial struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// ParsePrivateKeyPEM : разбирает PEM (PKCS#1 или PKCS#8) и проверяет длину ключа
func ParsePrivateKeyPEM(data []byte) (*KeyMaterial, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse private key: %v", apperr.ErrKeyUnavailable, err)
	}

	if bits := key.N.BitLen(); bits < MinRSAKeyBits {
		return nil, fmt.Errorf("%w: rsa key is %d bits, need at least %d", apperr.ErrKeyUnavailable, bits, MinRSAKeyBits)
	}

	return &KeyMaterial{privateKey: key, publicKey: &key.PublicKey}, nil
}

func LoadKeyMaterialFromFile(path string) (*KeyMaterial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read private key: %v", apperr.ErrKeyUnavailable, err)
	}
	return ParsePrivateKeyPEM(data)
}

func LoadKeyMaterialFromSource(ctx context.Context, source ports.KeyObjectSource, key string) (*KeyMaterial, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: no key source configured", apperr.ErrKeyUnavailable)
	}

	data, err := source.GetObject(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch private key: %v", apperr.ErrKeyUnavailable, err)
	}
	return ParsePrivateKeyPEM(data)
}

// LoadKeyMaterial : выбирает источник ключа по конфигу
func LoadKeyMaterial(ctx context.Context, cfg *config.KeysConfig, source ports.KeyObjectSource) (*KeyMaterial, error) {
	switch cfg.Source {
	case "", "file":
		return LoadKeyMaterialFromFile(cfg.PrivateKeyPath)
	case "s3":
		return LoadKeyMaterialFromSource(ctx, source, cfg.S3.Key)
	default:
		return nil, fmt.Errorf("%w: unknown key source %q", apperr.ErrKeyUnavailable, cfg.Source)
	}
}

func (k *KeyMaterial) PrivateKey() (*rsa.PrivateKey, error) {
	if k == nil || k.privateKey == nil {
		return nil, apperr.ErrKeyUnavailable
	}
	return k.privateKey, nil
}

func (k *KeyMaterial) PublicKey() (*rsa.PublicKey, error) {
	if k == nil || k.publicKey == nil {
		return nil, apperr.ErrKeyUnavailable
	}
	return k.publicKey, nil
}

// GenerateKeyPEM : новая пара ключей в PEM, приватный в PKCS#1, публичный в PKIX
func GenerateKeyPEM(bits int) (privatePEM, publicPEM []byte, err error) {
	if bits < MinRSAKeyBits {
		return nil, nil, errors.New("rsa key size too small")
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, nil, fmt.Errorf("generate rsa key: %w", err)
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal public key: %w", err)
	}

	privatePEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	publicPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})
	return privatePEM, publicPEM, nil
}
