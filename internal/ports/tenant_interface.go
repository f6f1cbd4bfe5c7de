package ports

import (
	"auth-service/internal/model"
	"context"
)

type TenantRepository interface {
	Create(ctx context.Context, name, address string) (*model.Tenant, error)
	FindByID(ctx context.Context, id int64) (*model.Tenant, error)
	List(ctx context.Context) ([]*model.Tenant, error)
	Update(ctx context.Context, id int64, name, address string) (*model.Tenant, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type TenantService interface {
	Create(ctx context.Context, name, address string) (*model.Tenant, error)
	GetByID(ctx context.Context, id int64) (*model.Tenant, error)
	List(ctx context.Context) ([]*model.Tenant, error)
	Update(ctx context.Context, id int64, name, address string) (*model.Tenant, error)
	Delete(ctx context.Context, id int64) error
}
