package ports

import (
	"auth-service/internal/model"
	"context"
	"time"
)

type TokenIssuer interface {
	IssueAccessToken(claims model.Claims) (string, error)
	IssueRefreshToken(claims model.Claims, recordID int64) (string, error)
}

// TokenVerifier : проверка подписи и срока действия, без обращения к хранилищу
type TokenVerifier interface {
	Verify(token string) (*model.Claims, error)
}

type RefreshTokenStore interface {
	Persist(ctx context.Context, userID int64, expiresAt time.Time) (*model.RefreshTokenRecord, error)
	FindByID(ctx context.Context, id int64) (*model.RefreshTokenRecord, error)
	DeleteByID(ctx context.Context, id, userID int64) (bool, error)
	Rotate(ctx context.Context, oldID, userID int64, expiresAt time.Time) (*model.RefreshTokenRecord, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
