package model

import "time"

type User struct {
	ID           int64     `db:"id" json:"id"`
	Firstname    string    `db:"firstname" json:"firstname"`
	Lastname     string    `db:"lastname" json:"lastname"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	TenantID     *int64    `db:"tenant_id" json:"tenantId,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// UserData : данные для создания пользователя
type UserData struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
	Role      Role
	TenantID  *int64
}

// UserUpdate : поля, которые админ может поменять
type UserUpdate struct {
	Firstname string
	Lastname  string
	Role      Role
	TenantID  *int64
}
