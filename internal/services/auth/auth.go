// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/openhearts/openhearts/internal/lib/jwt"
	"github.com/openhearts/openhearts/internal/lib/password"
	"github.com/openhearts/openhearts/internal/models"
)

// Ошибки бизнес-уровня аутентификации.
var (
	// ErrEmailTaken возвращается при попытке регистрации с занятым email.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials возвращается при неверном email или пароле.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken возвращается при невалидном или просроченном токене.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью "donor".
// Возвращает созданного пользователя и JWT для немедленного входа.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, "", ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, "", err
	}
	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hashed,
		Role:         "donor", // дефолтная роль при регистрации
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}
	user.UID = uid

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, req models.DummyLogin) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := password.CompareHash(user.PasswordHash, req.Password); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.UID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Me возвращает профиль пользователя по UID.
func (s *AuthService) Me(ctx context.Context, userUID string) (*models.User, error) {
	return s.users.GetUser(ctx, userUID)
}

// ValidateToken проверяет JWT и возвращает актуальные данные пользователя
// из базы. Токен удалённого пользователя считается невалидным.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	user, err := s.users.GetUser(ctx, claims.UserUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
