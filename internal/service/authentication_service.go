package service

import (
	"auth-service/config"
	"auth-service/internal/apperr"
	"auth-service/internal/metrics"
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// unknownUserPassword : пароль для хэша, с которым сравнивается ввод при неизвестном email
const unknownUserPassword = "unknown-user-placeholder"

type AuthenticationService struct {
	refreshTokens ports.RefreshTokenStore
	users         ports.UserRepository
	cache         ports.UserCache
	issuer        ports.TokenIssuer
	credentials   ports.CredentialVerifier
	refreshTTL    time.Duration
	now           func() time.Time

	dummyHashOnce sync.Once
	dummyHash     string
}

type AuthOption func(*AuthenticationService)

// WithAuthClock : источник времени для сроков refresh записей
func WithAuthClock(now func() time.Time) AuthOption {
	return func(s *AuthenticationService) {
		s.now = now
	}
}

// WithUserCache : кэш профилей для /auth/self
func WithUserCache(cache ports.UserCache) AuthOption {
	return func(s *AuthenticationService) {
		s.cache = cache
	}
}

func NewAuthenticationService(
	refreshTokens ports.RefreshTokenStore,
	users ports.UserRepository,
	issuer ports.TokenIssuer,
	credentials ports.CredentialVerifier,
	cfg *config.JWTConfig,
	opts ...AuthOption,
) *AuthenticationService {
	s := &AuthenticationService{
		refreshTokens: refreshTokens,
		users:         users,
		issuer:        issuer,
		credentials:   credentials,
		refreshTTL:    cfg.RefreshTTL(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register : новый пользователь всегда получает роль customer
func (s *AuthenticationService) Register(ctx context.Context, data model.UserData) (*ports.AuthSession, error) {
	if err := validateUserData(&data); err != nil {
		return nil, err
	}

	hash, err := s.credentials.Hash(data.Password)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &model.User{
		Firstname:    data.Firstname,
		Lastname:     data.Lastname,
		Email:        data.Email,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
	})
	if err != nil {
		return nil, fmt.Errorf("[AuthService] create user: %w", err)
	}
	slog.InfoContext(ctx, "user has been registered", "id", user.ID)

	return s.startSession(ctx, user)
}

// Login : неизвестный email и неверный пароль дают одну и ту же ошибку
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*ports.AuthSession, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			// та же работа хэширования, что и для неверного пароля
			s.credentials.ComparePlaintextToStored(password, s.unknownUserHash(ctx))
			return nil, apperr.ErrBadCredentials
		}
		return nil, fmt.Errorf("[AuthService] find user: %w", err)
	}

	if !s.credentials.ComparePlaintextToStored(password, user.PasswordHash) {
		return nil, apperr.ErrBadCredentials
	}

	session, err := s.startSession(ctx, user)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "user has been logged in", "id", user.ID)
	return session, nil
}

// Self : текущий пользователь по subject из access токена
func (s *AuthenticationService) Self(ctx context.Context, claims *model.Claims) (*model.User, error) {
	if claims == nil {
		return nil, apperr.ErrInvalidCredential
	}

	if s.cache != nil {
		if cached, err := s.cache.GetUser(ctx, claims.Subject); err == nil && cached != nil {
			return cached, nil
		}
	}

	user, err := s.resolveUser(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetUser(ctx, user); err != nil {
			slog.WarnContext(ctx, "user cache set failed", "id", user.ID, "error", err)
		}
	}
	return user, nil
}

// ConfirmLive : вторая ступень проверки refresh токена.
// Подпись может быть верной, но запись уже удалена (logout, ротация)
// или выписана другому пользователю
func (s *AuthenticationService) ConfirmLive(ctx context.Context, recordID, userID int64) (bool, error) {
	if recordID <= 0 {
		return false, nil
	}

	record, err := s.refreshTokens.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("[AuthService] find refresh record: %w", err)
	}

	if record.UserID != userID {
		slog.WarnContext(ctx, "refresh record owner mismatch", "id", recordID, "owner", record.UserID, "subject", userID)
		return false, nil
	}
	return s.now().Before(record.ExpiresAt), nil
}

// Refresh : ротация пары токенов.
//  1. claims уже проверены (подпись + ConfirmLive) в middleware
//  2. пользователь должен существовать
//  3. старая запись удаляется до создания новой (Rotate, одна транзакция)
//  4. новая пара подписывается с id новой записи
//
// Если подпись упадет после шага 3, пользователь окажется разлогинен
func (s *AuthenticationService) Refresh(ctx context.Context, claims *model.Claims) (*ports.AuthSession, error) {
	session, err := s.rotate(ctx, claims)
	if err != nil {
		metrics.Rotations.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.Rotations.WithLabelValues("ok").Inc()
	return session, nil
}

func (s *AuthenticationService) rotate(ctx context.Context, claims *model.Claims) (*ports.AuthSession, error) {
	if claims == nil || claims.RefreshRecordID <= 0 {
		return nil, apperr.ErrInvalidCredential
	}

	user, err := s.resolveUser(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	record, err := s.refreshTokens.Rotate(ctx, claims.RefreshRecordID, user.ID, s.now().Add(s.refreshTTL))
	if err != nil {
		return nil, fmt.Errorf("[AuthService] rotate refresh record: %w", err)
	}
	slog.InfoContext(ctx, "refresh token has been rotated",
		"user_id", user.ID, "revoked_id", claims.RefreshRecordID, "new_id", record.ID)

	tokens, err := s.issuePair(ctx, user, record)
	if err != nil {
		return nil, err
	}
	return &ports.AuthSession{User: user, Tokens: tokens}, nil
}

// Logout : удаляет запись refresh токена. Повторный вызов не ошибка
func (s *AuthenticationService) Logout(ctx context.Context, claims *model.Claims) error {
	if claims == nil || claims.RefreshRecordID <= 0 {
		return apperr.ErrInvalidCredential
	}

	deleted, err := s.refreshTokens.DeleteByID(ctx, claims.RefreshRecordID, claims.Subject)
	if err != nil {
		return fmt.Errorf("[AuthService] delete refresh record: %w", err)
	}
	if !deleted {
		slog.DebugContext(ctx, "refresh record already gone", "id", claims.RefreshRecordID)
	}

	metrics.Logouts.Inc()
	slog.InfoContext(ctx, "user has been logged out", "user_id", claims.Subject)
	return nil
}

// startSession : общий шаг для входа и регистрации, запись -> пара токенов
func (s *AuthenticationService) startSession(ctx context.Context, user *model.User) (*ports.AuthSession, error) {
	record, err := s.refreshTokens.Persist(ctx, user.ID, s.now().Add(s.refreshTTL))
	if err != nil {
		return nil, fmt.Errorf("[AuthService] persist refresh record: %w", err)
	}

	tokens, err := s.issuePair(ctx, user, record)
	if err != nil {
		return nil, err
	}
	return &ports.AuthSession{User: user, Tokens: tokens}, nil
}

// issuePair : при ошибке подписи запись удаляется, чтобы не оставлять сирот
func (s *AuthenticationService) issuePair(ctx context.Context, user *model.User, record *model.RefreshTokenRecord) (*model.TokensPair, error) {
	claims := model.Claims{Subject: user.ID, Role: user.Role}

	accessToken, err := s.issuer.IssueAccessToken(claims)
	if err == nil {
		var refreshToken string
		refreshToken, err = s.issuer.IssueRefreshToken(claims, record.ID)
		if err == nil {
			return &model.TokensPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
		}
	}

	if _, delErr := s.refreshTokens.DeleteByID(ctx, record.ID, record.UserID); delErr != nil {
		slog.WarnContext(ctx, "cleanup of unissued refresh record failed", "id", record.ID, "error", delErr)
	}
	return nil, fmt.Errorf("[AuthService] issue tokens: %w", err)
}

func (s *AuthenticationService) unknownUserHash(ctx context.Context) string {
	s.dummyHashOnce.Do(func() {
		hash, err := s.credentials.Hash(unknownUserPassword)
		if err != nil {
			slog.WarnContext(ctx, "dummy password hash failed", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func (s *AuthenticationService) resolveUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, apperr.ErrUserNotFound)
		}
		return nil, fmt.Errorf("[AuthService] find user: %w", err)
	}
	return user, nil
}
