package model

import "time"

// RefreshTokenRecord : запись о выданном refresh токене.
// Существование записи и есть признак валидности токена, удаление = отзыв
type RefreshTokenRecord struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// TokensPair содержит пару access и refresh токенов
type TokensPair struct {
	AccessToken  string
	RefreshToken string
}

// Claims : содержимое проверенного токена.
// RefreshRecordID заполнен только для refresh токенов
type Claims struct {
	Subject         int64
	Role            Role
	RefreshRecordID int64
	IssuedAt        time.Time
}
