package security

import (
	"auth-service/config"
	"auth-service/internal/apperr"
	"auth-service/internal/metrics"
	"auth-service/internal/model"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims : формат полезной нагрузки на проводе.
// sub и jti хранятся строками
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type settings struct {
	now func() time.Time
}

type Option func(*settings)

// WithClock : подменяет источник времени, нужен в тестах
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

func newSettings(opts []Option) settings {
	s := settings{now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

type TokenIssuer struct {
	keys          *KeyMaterial
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenIssuer(cfg *config.JWTConfig, keys *KeyMaterial, opts ...Option) *TokenIssuer {
	s := newSettings(opts)
	return &TokenIssuer{
		keys:          keys,
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		issuer:        cfg.Issuer,
		accessTTL:     cfg.AccessTTL(),
		refreshTTL:    cfg.RefreshTTL(),
		now:           s.now,
	}
}

// IssueAccessToken : RS256, {sub, role}, срок жизни accessTTL
func (i *TokenIssuer) IssueAccessToken(claims model.Claims) (string, error) {
	privateKey, err := i.keys.PrivateKey()
	if err != nil {
		return "", err
	}

	now := i.now()
	wire, err := encodeClaims(claims, i.issuer, now, now.Add(i.accessTTL), 0)
	if err != nil {
		return "", err
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, wire).SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	metrics.TokensIssued.WithLabelValues(metrics.KindAccess).Inc()
	return signed, nil
}

// IssueRefreshToken : HS256, {sub, role, jti=recordID}, срок жизни refreshTTL.
// Запись с recordID должна быть сохранена до выдачи токена
func (i *TokenIssuer) IssueRefreshToken(claims model.Claims, recordID int64) (string, error) {
	if len(i.refreshSecret) == 0 {
		return "", fmt.Errorf("%w: refresh token secret is empty", apperr.ErrKeyUnavailable)
	}
	if recordID <= 0 {
		return "", fmt.Errorf("refresh record id must be positive, got %d", recordID)
	}

	now := i.now()
	wire, err := encodeClaims(claims, i.issuer, now, now.Add(i.refreshTTL), recordID)
	if err != nil {
		return "", err
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wire).SignedString(i.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}

	metrics.TokensIssued.WithLabelValues(metrics.KindRefresh).Inc()
	return signed, nil
}

func (i *TokenIssuer) AccessTTL() time.Duration {
	return i.accessTTL
}

func (i *TokenIssuer) RefreshTTL() time.Duration {
	return i.refreshTTL
}

// Verifier : проверяет подпись, алгоритм, издателя и срок действия.
// Любая ошибка сводится к apperr.ErrInvalidCredential
type Verifier struct {
	kind            string
	parser          *jwt.Parser
	keyFunc         jwt.Keyfunc
	requireRecordID bool
}

func NewAccessTokenVerifier(cfg *config.JWTConfig, keys *KeyMaterial, opts ...Option) (*Verifier, error) {
	publicKey, err := keys.PublicKey()
	if err != nil {
		return nil, err
	}

	return &Verifier{
		kind:   metrics.KindAccess,
		parser: newParser(jwt.SigningMethodRS256, cfg.Issuer, newSettings(opts)),
		keyFunc: func(*jwt.Token) (any, error) {
			return publicKey, nil
		},
	}, nil
}

func NewRefreshTokenVerifier(cfg *config.JWTConfig, opts ...Option) (*Verifier, error) {
	if cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("%w: refresh token secret is empty", apperr.ErrKeyUnavailable)
	}
	secret := []byte(cfg.RefreshTokenSecret)

	return &Verifier{
		kind:   metrics.KindRefresh,
		parser: newParser(jwt.SigningMethodHS256, cfg.Issuer, newSettings(opts)),
		keyFunc: func(*jwt.Token) (any, error) {
			return secret, nil
		},
		requireRecordID: true,
	}, nil
}

func newParser(method jwt.SigningMethod, issuer string, s settings) *jwt.Parser {
	return jwt.NewParser(
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
}

func (v *Verifier) Verify(token string) (*model.Claims, error) {
	claims, err := v.verify(token)
	if err != nil {
		metrics.VerificationsFailed.WithLabelValues(v.kind).Inc()
		return nil, err
	}
	return claims, nil
}

func (v *Verifier) verify(token string) (*model.Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty %s token", apperr.ErrInvalidCredential, v.kind)
	}

	wire := &tokenClaims{}
	parsed, err := v.parser.ParseWithClaims(token, wire, v.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s token: %v", apperr.ErrInvalidCredential, v.kind, err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("%w: %s token is not valid", apperr.ErrInvalidCredential, v.kind)
	}

	return decodeClaims(wire, v.requireRecordID)
}

func encodeClaims(claims model.Claims, issuer string, issuedAt, expiresAt time.Time, recordID int64) (*tokenClaims, error) {
	if claims.Subject <= 0 {
		return nil, fmt.Errorf("subject must be positive, got %d", claims.Subject)
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("cannot issue token for role %q", claims.Role)
	}

	wire := &tokenClaims{
		Role: claims.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(claims.Subject, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if recordID > 0 {
		wire.ID = strconv.FormatInt(recordID, 10)
	}
	return wire, nil
}

func decodeClaims(wire *tokenClaims, requireRecordID bool) (*model.Claims, error) {
	subject, err := strconv.ParseInt(wire.Subject, 10, 64)
	if err != nil || subject <= 0 {
		return nil, fmt.Errorf("%w: malformed subject %q", apperr.ErrInvalidCredential, wire.Subject)
	}

	role, err := model.ParseRole(wire.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidCredential, err)
	}

	claims := &model.Claims{
		Subject: subject,
		Role:    role,
	}
	if wire.IssuedAt != nil {
		claims.IssuedAt = wire.IssuedAt.Time
	}

	if requireRecordID {
		recordID, err := strconv.ParseInt(wire.ID, 10, 64)
		if err != nil || recordID <= 0 {
			return nil, fmt.Errorf("%w: malformed jti %q", apperr.ErrInvalidCredential, wire.ID)
		}
		claims.RefreshRecordID = recordID
	}

	return claims, nil
}
