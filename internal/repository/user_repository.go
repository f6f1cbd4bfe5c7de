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
	"github.com/lib/pq"
)

const userColumns = `id, firstname, lastname, email, password_hash, role, tenant_id, created_at, updated_at`

const uniqueViolation = "23505"

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// Create : сохраняет нового пользователя, email уникален
func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (firstname, lastname, email, password_hash, role, tenant_id)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + userColumns

	created := &model.User{}
	err := sqlx.GetContext(ctx, r.DB, created, query,
		user.Firstname, user.Lastname, user.Email, user.PasswordHash, user.Role, user.TenantID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.New(apperr.ErrAlreadyExists, "Email already exists")
		}
		return nil, util.LogError("[UserRepo] insert user", err)
	}

	return created, nil
}

// FindByID : справочник пользователей для ротации и /auth/self
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.findOne(ctx, query, email)
}

func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id ASC`

	users := []*model.User{}
	if err := sqlx.SelectContext(ctx, r.DB, &users, query); err != nil {
		return nil, util.LogError("[UserRepo] list users", err)
	}
	return users, nil
}

// Update : меняет имя, фамилию, роль и тенанта
func (r *UserRepository) Update(ctx context.Context, id int64, update model.UserUpdate) (*model.User, error) {
	query := `
	UPDATE users
	SET firstname = $2, lastname = $3, role = $4, tenant_id = $5, updated_at = NOW()
	WHERE id = $1
	RETURNING ` + userColumns

	return r.findOne(ctx, query, id, update.Firstname, update.Lastname, update.Role, update.TenantID)
}

// Delete : refresh записи пользователя удаляются каскадно
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, util.LogError("[UserRepo] delete user", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, util.LogError("[UserRepo] rows affected", err)
	}
	return rowsAffected > 0, nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*model.User, error) {
	user := &model.User{}
	if err := sqlx.GetContext(ctx, r.DB, user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.ErrNotFound, "user not found")
		}
		return nil, util.LogError("[UserRepo] query user", err)
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
