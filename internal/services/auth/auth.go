// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
	"github.com/magabrotheeeer/car-rental-service/internal/lib/jwt"
	"github.com/magabrotheeeer/car-rental-service/internal/lib/password"
	"github.com/magabrotheeeer/car-rental-service/internal/metrics"
)

// UserRepository описывает контракт для работы с хранилищем пользователей.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя; пароль уже захэширован.
	// Нарушение уникальности email или национального идентификатора —
	// ошибка, хранилище при этом не меняется.
	CreateUser(ctx context.Context, name, email, nationalID, passwordHash string) (*domain.User, error)

	// FindByEmail возвращает пользователя по email или domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID возвращает пользователя по идентификатору или domain.ErrUserNotFound.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// ListAll возвращает всех пользователей без хэшей паролей.
	ListAll(ctx context.Context) ([]domain.PublicUser, error)
}

// AuthService отвечает за регистрацию, вход и проверку JWT.
// Секрет подписи токенов приходит внутрь через jwt.Maker при конструировании.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	metrics  metrics.Recorder
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, rec metrics.Recorder) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		metrics:  rec,
	}
}

// Register создает нового пользователя, хэшируя его пароль.
// Email и национальный идентификатор должны быть уникальны.
func (s *AuthService) Register(ctx context.Context, name, email, nationalID, rawPassword string) (*domain.User, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}
	user, err := s.users.CreateUser(ctx, name, email, nationalID, hashed)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordRegistration()
	return user, nil
}

// Login проверяет учётные данные и выдаёт подписанный токен доступа.
// Несуществующий аккаунт и неверный пароль неразличимы снаружи:
// оба случая — domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.metrics.RecordLogin(false)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		s.metrics.RecordLogin(false)
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	s.metrics.RecordLogin(true)
	return token, user, nil
}

// ResolveToken проверяет токен и возвращает пользователя, которому он выдан.
// Повреждённый, просроченный, подписанный чужим ключом токен, равно как и
// токен удалённого пользователя, снаружи выглядят одинаково:
// domain.ErrUnauthenticated.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// ListUsers возвращает всех пользователей без хэшей паролей.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.PublicUser, error) {
	return s.users.ListAll(ctx)
}

// GetUserByID возвращает пользователя без хэша пароля.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*domain.PublicUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}
