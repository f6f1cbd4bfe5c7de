package ports

import (
	"auth-service/internal/model"
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, id int64, update model.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type UserService interface {
	Create(ctx context.Context, data model.UserData) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, id int64, update model.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	SeedAdmin(ctx context.Context, data model.UserData) (*model.User, error)
}
