package service

import (
	"auth-service/internal/apperr"
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"context"
	"log/slog"
)

type TenantService struct {
	tenantRepository ports.TenantRepository
}

func NewTenantService(tenantRepository ports.TenantRepository) *TenantService {
	return &TenantService{tenantRepository: tenantRepository}
}

func (s *TenantService) Create(ctx context.Context, name, address string) (*model.Tenant, error) {
	name, address, err := validateTenant(name, address)
	if err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepository.Create(ctx, name, address)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "a new tenant has been created", "id", tenant.ID)
	return tenant, nil
}

func (s *TenantService) GetByID(ctx context.Context, id int64) (*model.Tenant, error) {
	return s.tenantRepository.FindByID(ctx, id)
}

func (s *TenantService) List(ctx context.Context) ([]*model.Tenant, error) {
	return s.tenantRepository.List(ctx)
}

func (s *TenantService) Update(ctx context.Context, id int64, name, address string) (*model.Tenant, error) {
	name, address, err := validateTenant(name, address)
	if err != nil {
		return nil, err
	}
	return s.tenantRepository.Update(ctx, id, name, address)
}

func (s *TenantService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.tenantRepository.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.New(apperr.ErrNotFound, "tenant not found")
	}
	return nil
}
