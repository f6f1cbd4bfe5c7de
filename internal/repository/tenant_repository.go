package repository

import (
	"auth-service/config"
	"auth-service/internal/apperr"
	"auth-service/internal/model"
	"auth-service/internal/util"
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

const tenantColumns = `id, name, address, created_at, updated_at`

type TenantRepository struct {
	*config.Database
}

func NewTenantRepository(database *config.Database) *TenantRepository {
	return &TenantRepository{database}
}

func (r *TenantRepository) Create(ctx context.Context, name, address string) (*model.Tenant, error) {
	query := `INSERT INTO tenants (name, address) VALUES ($1, $2) RETURNING ` + tenantColumns

	tenant := &model.Tenant{}
	if err := sqlx.GetContext(ctx, r.DB, tenant, query, name, address); err != nil {
		return nil, util.LogError("[TenantRepo] insert tenant", err)
	}
	return tenant, nil
}

func (r *TenantRepository) FindByID(ctx context.Context, id int64) (*model.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *TenantRepository) List(ctx context.Context) ([]*model.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY id ASC`

	tenants := []*model.Tenant{}
	if err := sqlx.SelectContext(ctx, r.DB, &tenants, query); err != nil {
		return nil, util.LogError("[TenantRepo] list tenants", err)
	}
	return tenants, nil
}

func (r *TenantRepository) Update(ctx context.Context, id int64, name, address string) (*model.Tenant, error) {
	query := `
	UPDATE tenants SET name = $2, address = $3, updated_at = NOW()
	WHERE id = $1
	RETURNING ` + tenantColumns

	return r.findOne(ctx, query, id, name, address)
}

func (r *TenantRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return false, util.LogError("[TenantRepo] delete tenant", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, util.LogError("[TenantRepo] rows affected", err)
	}
	return rowsAffected > 0, nil
}

func (r *TenantRepository) findOne(ctx context.Context, query string, args ...any) (*model.Tenant, error) {
	tenant := &model.Tenant{}
	if err := sqlx.GetContext(ctx, r.DB, tenant, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.ErrNotFound, "tenant not found")
		}
		return nil, util.LogError("[TenantRepo] query tenant", err)
	}
	return tenant, nil
}
