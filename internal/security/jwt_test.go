package security

import (
	"auth-service/config"
	"auth-service/internal/apperr"
	"auth-service/internal/model"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Issuer:             "auth-service",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     "1h",
		RefreshTokenTTL:    "8760h",
	}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func TestAccessToken_RoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	keys := testKeyMaterial(t)
	issuer := NewTokenIssuer(testJWTConfig(), keys, WithClock(clock.Now))
	verifier, err := NewAccessTokenVerifier(testJWTConfig(), keys, WithClock(clock.Now))
	require.NoError(t, err)

	token, err := issuer.IssueAccessToken(model.Claims{Subject: 42, Role: model.RoleCustomer})
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.Subject)
	assert.Equal(t, model.RoleCustomer, claims.Role)
	assert.Zero(t, claims.RefreshRecordID)
	assert.Equal(t, clock.now, claims.IssuedAt.UTC())

	// срок жизни 1h
	clock.now = clock.now.Add(time.Hour + time.Second)
	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, apperr.ErrInvalidCredential)
}

func TestAccessToken_Rejections(t *testing.T) {
	keys := testKeyMaterial(t)
	verifier, err := NewAccessTokenVerifier(testJWTConfig(), keys)
	require.NoError(t, err)
	issuer := NewTokenIssuer(testJWTConfig(), keys)

	token, err := issuer.IssueAccessToken(model.Claims{Subject: 1, Role: model.RoleAdmin})
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := verifier.Verify("")
		assert.ErrorIs(t, err, apperr.ErrInvalidCredential)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(token, ".")
		parts[1] = parts[1][:len(parts[1])-2] + "xx"
		_, err := verifier.Verify(strings.Join(parts, "."))
		assert.ErrorIs(t, err, apperr.ErrInvalidCredential)
	})

	t.Run("refresh token on access verifier", func(t *testing.T) {
		refresh, err := issuer.IssueRefreshToken(model.Claims{Subject: 1, Role: model.RoleAdmin}, 5)
		require.NoError(t, err)
		_, err = verifier.Verify(refresh)
		assert.ErrorIs(t, err, apperr.ErrInvalidCredential)
	})

	t.Run("other key", func(t *testing.T) {
		otherPEM, _, err := GenerateKeyPEM(MinRSAKeyBits)
		require.NoError(t, err)
		otherKeys, err := ParsePrivateKeyPEM(otherPEM)
		require.NoError(t, err)
		foreign, err := NewTokenIssuer(testJWTConfig(), otherKeys).IssueAccessToken(model.Claims{Subject: 1, Role: model.RoleAdmin})
		require.NoError(t, err)

		_, err = verifier.Verify(foreign)
		assert.ErrorIs(t, err, apperr.ErrInvalidCredential)
	})

	t.Run("other issuer", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.Issuer = "someone-else"
		foreign, err := NewTokenIssuer(cfg, keys).IssueAccessToken(model.Claims{Subject: 1, Role: model.RoleAdmin})
		require.NoError(t, err)

		_, err = verifier.Verify(foreign)
		assert.ErrorIs(t, err, apperr.ErrInvalidCredential)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": "1", "role": "admin", "iss": "auth-service", "exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = verifier.Verify(unsigned)
		assert.ErrorIs(t, err, apperr.ErrInvalidCredential)
	})

	t.Run("no expiry", func(t *testing.T) {
		privateKey, _ := keys.PrivateKey()
		noExp, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
			"sub": "1", "role": "admin", "iss": "auth-service",
		}).SignedString(privateKey)
		require.NoError(t, err)

		_, err = verifier.Verify(noExp)
		assert.ErrorIs(t, err, apperr.ErrInvalidCredential)
	})

	t.Run("unknown role", func(t *testing.T) {
		privateKey, _ := keys.PrivateKey()
		badRole, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
			"sub": "1", "role": "root", "iss": "auth-service", "exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(privateKey)
		require.NoError(t, err)

		_, err = verifier.Verify(badRole)
		assert.ErrorIs(t, err, apperr.ErrInvalidCredential)
	})
}

func TestIssueAccessToken_Errors(t *testing.T) {
	issuer := NewTokenIssuer(testJWTConfig(), nil)
	_, err := issuer.IssueAccessToken(model.Claims{Subject: 1, Role: model.RoleAdmin})
	assert.ErrorIs(t, err, apperr.ErrKeyUnavailable)

	issuer = NewTokenIssuer(testJWTConfig(), testKeyMaterial(t))
	_, err = issuer.IssueAccessToken(model.Claims{Subject: 0, Role: model.RoleAdmin})
	assert.Error(t, err)
	_, err = issuer.IssueAccessToken(model.Claims{Subject: 1, Role: "root"})
	assert.Error(t, err)

	_, err = NewAccessTokenVerifier(testJWTConfig(), nil)
	assert.ErrorIs(t, err, apperr.ErrKeyUnavailable)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	issuer := NewTokenIssuer(testJWTConfig(), testKeyMaterial(t), WithClock(clock.Now))
	verifier, err := NewRefreshTokenVerifier(testJWTConfig(), WithClock(clock.Now))
	require.NoError(t, err)

	token, err := issuer.IssueRefreshToken(model.Claims{Subject: 42, Role: model.RoleManager}, 17)
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.Subject)
	assert.Equal(t, model.RoleManager, claims.Role)
	assert.Equal(t, int64(17), claims.RefreshRecordID)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, &tokenClaims{})
	require.NoError(t, err)
	assert.Equal(t, "HS256", parsed.Method.Alg())
	assert.Equal(t, "17", parsed.Claims.(*tokenClaims).ID)

	clock.now = clock.now.Add(8760*time.Hour + time.Second)
	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, apperr.ErrInvalidCredential)
}

func TestRefreshToken_Rejections(t *testing.T) {
	keys := testKeyMaterial(t)
	issuer := NewTokenIssuer(testJWTConfig(), keys)
	verifier, err := NewRefreshTokenVerifier(testJWTConfig())
	require.NoError(t, err)

	t.Run("access token on refresh verifier", func(t *testing.T) {
		access, err := issuer.IssueAccessToken(model.Claims{Subject: 1, Role: model.RoleCustomer})
		require.NoError(t, err)
		_, err = verifier.Verify(access)
		assert.ErrorIs(t, err, apperr.ErrInvalidCredential)
	})

	t.Run("wrong secret", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.RefreshTokenSecret = "another-secret"
		foreign, err := NewTokenIssuer(cfg, keys).IssueRefreshToken(model.Claims{Subject: 1, Role: model.RoleCustomer}, 3)
		require.NoError(t, err)
		_, err = verifier.Verify(foreign)
		assert.ErrorIs(t, err, apperr.ErrInvalidCredential)
	})

	t.Run("missing jti", func(t *testing.T) {
		noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "1", "role": "customer", "iss": "auth-service", "exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("refresh-secret"))
		require.NoError(t, err)
		_, err = verifier.Verify(noID)
		assert.ErrorIs(t, err, apperr.ErrInvalidCredential)
	})

	t.Run("non positive record id", func(t *testing.T) {
		_, err := issuer.IssueRefreshToken(model.Claims{Subject: 1, Role: model.RoleCustomer}, 0)
		assert.Error(t, err)
	})

	t.Run("empty secret", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.RefreshTokenSecret = ""
		_, err := NewTokenIssuer(cfg, keys).IssueRefreshToken(model.Claims{Subject: 1, Role: model.RoleCustomer}, 3)
		assert.ErrorIs(t, err, apperr.ErrKeyUnavailable)
		_, err = NewRefreshTokenVerifier(cfg)
		assert.ErrorIs(t, err, apperr.ErrKeyUnavailable)
	})
}

func TestEncodeDecodeClaims(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	claims := model.Claims{Subject: 9, Role: model.RoleAdmin}

	wire, err := encodeClaims(claims, "auth-service", issuedAt, issuedAt.Add(time.Hour), 33)
	require.NoError(t, err)
	assert.Equal(t, "9", wire.Subject)
	assert.Equal(t, "33", wire.ID)

	decoded, err := decodeClaims(wire, true)
	require.NoError(t, err)
	assert.Equal(t, int64(9), decoded.Subject)
	assert.Equal(t, model.RoleAdmin, decoded.Role)
	assert.Equal(t, int64(33), decoded.RefreshRecordID)

	wire, err = encodeClaims(claims, "auth-service", issuedAt, issuedAt.Add(time.Hour), 0)
	require.NoError(t, err)
	assert.Empty(t, wire.ID)

	wire.Subject = "abc"
	_, err = decodeClaims(wire, false)
	assert.ErrorIs(t, err, apperr.ErrInvalidCredential)
}
