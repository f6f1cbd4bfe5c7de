package repository

import (
	"auth-service/config"
	"auth-service/internal/apperr"
	"auth-service/internal/model"
	"auth-service/internal/util"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	insertRefreshTokenQuery = `
	INSERT INTO refresh_tokens (user_id, expires_at)
	VALUES ($1, $2)
	RETURNING id, user_id, expires_at, created_at
	`
	selectRefreshTokenQuery        = `SELECT id, user_id, expires_at, created_at FROM refresh_tokens WHERE id = $1`
	deleteRefreshTokenQuery        = `DELETE FROM refresh_tokens WHERE id = $1 AND user_id = $2`
	deleteExpiredRefreshTokenQuery = `DELETE FROM refresh_tokens WHERE expires_at <= $1`
)

// RefreshTokenRepository : хранилище записей refresh токенов.
// id назначает БД (BIGSERIAL), записи никогда не обновляются
type RefreshTokenRepository struct {
	*config.Database
}

func NewRefreshTokenRepository(database *config.Database) *RefreshTokenRepository {
	return &RefreshTokenRepository{database}
}

// Persist : создает запись и возвращает ее с назначенным id.
// Вызывается до выдачи refresh токена, в котором этот id будет jti
func (r *RefreshTokenRepository) Persist(ctx context.Context, userID int64, expiresAt time.Time) (*model.RefreshTokenRecord, error) {
	return persistRefreshToken(ctx, r.DB, userID, expiresAt)
}

// FindByID : apperr.ErrNotFound, если записи нет
func (r *RefreshTokenRepository) FindByID(ctx context.Context, id int64) (*model.RefreshTokenRecord, error) {
	record := &model.RefreshTokenRecord{}
	err := sqlx.GetContext(ctx, r.DB, record, selectRefreshTokenQuery, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.ErrNotFound, fmt.Sprintf("refresh record %d not found", id))
		}
		return nil, util.LogError("[RefreshTokenRepo] find refresh record", err)
	}
	return record, nil
}

// DeleteByID : идемпотентно. false, если записи уже не было
// или она принадлежит другому пользователю
func (r *RefreshTokenRepository) DeleteByID(ctx context.Context, id, userID int64) (bool, error) {
	return deleteRefreshToken(ctx, r.DB, id, userID)
}

// Rotate : удаляет старую запись и создает новую в одной транзакции.
// Если старой записи уже нет (параллельная ротация или logout) или она
// принадлежит другому пользователю, ничего не создается
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldID, userID int64, expiresAt time.Time) (*model.RefreshTokenRecord, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, util.LogError("[RefreshTokenRepo] begin rotation", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleted, err := deleteRefreshToken(ctx, tx, oldID, userID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, fmt.Errorf("%w: refresh record %d already revoked", apperr.ErrInvalidCredential, oldID)
	}

	record, err := persistRefreshToken(ctx, tx, userID, expiresAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, util.LogError("[RefreshTokenRepo] commit rotation", err)
	}
	return record, nil
}

// DeleteExpired : чистит записи с истекшим сроком
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx, deleteExpiredRefreshTokenQuery, now)
	if err != nil {
		return 0, util.LogError("[RefreshTokenRepo] delete expired records", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, util.LogError("[RefreshTokenRepo] rows affected", err)
	}
	return rowsAffected, nil
}

func persistRefreshToken(ctx context.Context, exec sqlx.ExtContext, userID int64, expiresAt time.Time) (*model.RefreshTokenRecord, error) {
	record := &model.RefreshTokenRecord{}
	if err := sqlx.GetContext(ctx, exec, record, insertRefreshTokenQuery, userID, expiresAt); err != nil {
		return nil, util.LogError("[RefreshTokenRepo] insert refresh record", err)
	}
	return record, nil
}

func deleteRefreshToken(ctx context.Context, exec sqlx.ExtContext, id, userID int64) (bool, error) {
	result, err := exec.ExecContext(ctx, deleteRefreshTokenQuery, id, userID)
	if err != nil {
		return false, util.LogError("[RefreshTokenRepo] delete refresh record", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, util.LogError("[RefreshTokenRepo] rows affected", err)
	}
	return rowsAffected > 0, nil
}
