// Package auth реализует бизнес-логику регистрации, входа и проверки JWT.
package auth

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/movie-streaming/internal/lib/jwt"
	"github.com/magabrotheeeer/movie-streaming/internal/lib/password"
	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

// Интерфейс репозитория пользователей
type UserRepository interface {
	RegisterUser(ctx context.Context, user models.User) (int, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service реализует бизнес-логику авторизации и аутентификации
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register — создание нового пользователя с хэшированием пароля и дефолтной ролью "user"
func (s *Service) Register(ctx context.Context, email, username, rawPassword string) (int, error) {
	const op = "services.auth.Register"
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         models.RoleUser, // дефолтная роль при регистрации
	}
	return s.users.RegisterUser(ctx, user)
}

// Login — проверка пароля и генерация JWT с username, ролью и ID пользователя
func (s *Service) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", models.ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", models.ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.ID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken — проверка JWT и возврат claims с данными пользователя
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
