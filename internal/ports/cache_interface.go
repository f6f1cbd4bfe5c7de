package ports

import (
	"auth-service/internal/model"
	"context"
)

// UserCache : Redis слой для профилей пользователей
type UserCache interface {
	SetUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id int64) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
