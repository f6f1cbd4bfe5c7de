package ports

import (
	"auth-service/internal/model"
	"context"
)

// AuthSession : результат входа, регистрации или обновления токенов
type AuthSession struct {
	User   *model.User
	Tokens *model.TokensPair
}

type AuthenticationService interface {
	Register(ctx context.Context, data model.UserData) (*AuthSession, error)
	Login(ctx context.Context, email, password string) (*AuthSession, error)
	Self(ctx context.Context, claims *model.Claims) (*model.User, error)
	ConfirmLive(ctx context.Context, recordID, userID int64) (bool, error)
	Refresh(ctx context.Context, claims *model.Claims) (*AuthSession, error)
	Logout(ctx context.Context, claims *model.Claims) error
}

type CredentialVerifier interface {
	ComparePlaintextToStored(plain, stored string) bool
	Hash(plain string) (string, error)
}
