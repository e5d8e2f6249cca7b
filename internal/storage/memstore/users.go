// Package memstore реализует хранилища пользователей, автомобилей и договоров
// аренды в виде таблиц в памяти процесса. Каждая таблица принадлежит ровно
// одному хранилищу; другие компоненты меняют её только через публичные методы.
// Хранилища создаются один раз на процесс (или на тест) и передаются
// в сервисы через конструкторы; метод Reset очищает таблицу для изоляции тестов.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
)

// UserStore владеет таблицей пользователей и следит за уникальностью
// email и национального идентификатора.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string // email -> id, регистр учитывается как есть
	byNID   map[string]string // national id -> id
	order   []string          // порядок вставки для стабильного листинга
}

// NewUserStore создает пустое хранилище пользователей.
func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
		byNID:   make(map[string]string),
	}
}

// CreateUser сохраняет нового пользователя и возвращает созданную запись.
// Пароль к этому моменту уже должен быть захэширован вызывающей стороной.
// При нарушении уникальности таблица не меняется.
func (s *UserStore) CreateUser(ctx context.Context, name, email, nationalID, passwordHash string) (*domain.User, error) {
	const op = "memstore.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return nil, domain.ErrDuplicateEmail
	}
	if _, ok := s.byNID[nationalID]; ok {
		return nil, domain.ErrDuplicateNationalID
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		NationalID:   nationalID,
		PasswordHash: passwordHash,
	}
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u.ID
	s.byNID[u.NationalID] = u.ID
	s.order = append(s.order, u.ID)

	cp := *u
	return &cp, nil
}

// FindByEmail возвращает пользователя по email или domain.ErrUserNotFound.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "memstore.FindByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *s.byID[id]
	return &cp, nil
}

// FindByNationalID возвращает пользователя по национальному идентификатору
// или domain.ErrUserNotFound.
func (s *UserStore) FindByNationalID(ctx context.Context, nationalID string) (*domain.User, error) {
	const op = "memstore.FindByNationalID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byNID[nationalID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *s.byID[id]
	return &cp, nil
}

// FindByID возвращает пользователя по идентификатору или domain.ErrUserNotFound.
func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	const op = "memstore.FindUserByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// ListAll возвращает всех пользователей без хэшей паролей в порядке регистрации.
func (s *UserStore) ListAll(ctx context.Context) ([]domain.PublicUser, error) {
	const op = "memstore.ListAllUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.PublicUser, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.byID[id].Public())
	}
	return result, nil
}

// Reset очищает таблицу. Используется для изоляции тестов.
func (s *UserStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]*domain.User)
	s.byEmail = make(map[string]string)
	s.byNID = make(map[string]string)
	s.order = nil
}
