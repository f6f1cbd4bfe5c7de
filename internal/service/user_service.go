package service

import (
	"auth-service/internal/apperr"
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"log/slog"
)

type UserService struct {
	userRepository ports.UserRepository
	cache          ports.UserCache
	credentials    ports.CredentialVerifier
}

// NewUserService : cache может быть nil
func NewUserService(
	userRepository ports.UserRepository,
	cache ports.UserCache,
	credentials ports.CredentialVerifier,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		cache:          cache,
		credentials:    credentials,
	}
}

// Create : пользователей через админку создаем с ролью manager
func (s *UserService) Create(ctx context.Context, data model.UserData) (*model.User, error) {
	data.Role = model.RoleManager
	return s.create(ctx, data)
}

// SeedAdmin : создает администратора из конфига, если его еще нет
func (s *UserService) SeedAdmin(ctx context.Context, data model.UserData) (*model.User, error) {
	if data.Email == "" {
		return nil, nil
	}

	existing, err := s.userRepository.FindByEmail(ctx, data.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("[UserService] find admin: %w", err)
	}

	data.Role = model.RoleAdmin
	user, err := s.create(ctx, data)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "admin user has been seeded", "id", user.ID)
	return user, nil
}

func (s *UserService) create(ctx context.Context, data model.UserData) (*model.User, error) {
	if err := validateUserData(&data); err != nil {
		return nil, err
	}

	hash, err := s.credentials.Hash(data.Password)
	if err != nil {
		return nil, fmt.Errorf("[UserService] hash password: %w", err)
	}

	user, err := s.userRepository.Create(ctx, &model.User{
		Firstname:    data.Firstname,
		Lastname:     data.Lastname,
		Email:        data.Email,
		PasswordHash: hash,
		Role:         data.Role,
		TenantID:     data.TenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("[UserService] create user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetUser(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	user, err := s.userRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetUser(ctx, user); err != nil {
			slog.WarnContext(ctx, "user cache set failed", "id", user.ID, "error", err)
		}
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepository.List(ctx)
}

func (s *UserService) Update(ctx context.Context, id int64, update model.UserUpdate) (*model.User, error) {
	if !update.Role.Valid() {
		return nil, apperr.New(apperr.ErrValidation, "role is not valid")
	}
	if update.Firstname == "" || update.Lastname == "" {
		return nil, apperr.New(apperr.ErrValidation, "firstname and lastname are required")
	}

	user, err := s.userRepository.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.userRepository.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.New(apperr.ErrNotFound, "user not found")
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *UserService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteUser(ctx, id); err != nil {
		slog.WarnContext(ctx, "user cache invalidation failed", "id", id, "error", err)
	}
}
