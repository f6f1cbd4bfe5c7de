package repository

import (
	"auth-service/config"
	"auth-service/internal/model"
	"auth-service/internal/util"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheRepository : кэш профилей пользователей в Redis.
// Хэш пароля в кэш не попадает (json:"-")
type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return util.LogError("[CacheRepo] marshal user", err)
	}

	if err := r.client.Client.Set(ctx, r.key(user.ID), data, r.ttl).Err(); err != nil {
		return util.LogError("[CacheRepo] redis set", err)
	}
	return nil
}

// GetUser : (nil, nil), если в кэше нет
func (r *CacheRepository) GetUser(ctx context.Context, id int64) (*model.User, error) {
	val, err := r.client.Client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, util.LogError("[CacheRepo] redis get", err)
	}

	var user model.User
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		return nil, util.LogError("[CacheRepo] unmarshal user", err)
	}
	return &user, nil
}

func (r *CacheRepository) DeleteUser(ctx context.Context, id int64) error {
	if err := r.client.Client.Del(ctx, r.key(id)).Err(); err != nil {
		return util.LogError("[CacheRepo] redis del", err)
	}
	return nil
}

func (r *CacheRepository) key(id int64) string {
	return fmt.Sprintf("user:%d", id)
}
