package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
)

// CarStore владеет таблицей автомобилей и следит за уникальностью госномера.
// Флаг доступности меняется только через SetAvailability.
type CarStore struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Car
	byPlate map[string]string // plate -> id
	order   []string
}

// NewCarStore создает пустое хранилище автомобилей.
func NewCarStore() *CarStore {
	return &CarStore{
		byID:    make(map[string]*domain.Car),
		byPlate: make(map[string]string),
	}
}

// CreateCar сохраняет новый автомобиль и возвращает созданную запись.
// Новый автомобиль всегда доступен для аренды.
func (s *CarStore) CreateCar(ctx context.Context, brand, model string, year int, plate string, dailyRate float64) (*domain.Car, error) {
	const op = "memstore.CreateCar"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byPlate[plate]; ok {
		return nil, domain.ErrDuplicatePlate
	}

	c := &domain.Car{
		ID:          uuid.NewString(),
		Brand:       brand,
		Model:       model,
		Year:        year,
		Plate:       plate,
		DailyRate:   dailyRate,
		IsAvailable: true,
	}
	s.byID[c.ID] = c
	s.byPlate[c.Plate] = c.ID
	s.order = append(s.order, c.ID)

	cp := *c
	return &cp, nil
}

// FindByPlate возвращает автомобиль по госномеру или domain.ErrCarNotFound.
func (s *CarStore) FindByPlate(ctx context.Context, plate string) (*domain.Car, error) {
	const op = "memstore.FindCarByPlate"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byPlate[plate]
	if !ok {
		return nil, domain.ErrCarNotFound
	}
	cp := *s.byID[id]
	return &cp, nil
}

// FindByID возвращает автомобиль по идентификатору или domain.ErrCarNotFound.
func (s *CarStore) FindByID(ctx context.Context, id string) (*domain.Car, error) {
	const op = "memstore.FindCarByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrCarNotFound
	}
	cp := *c
	return &cp, nil
}

// ListAvailable возвращает автомобили с IsAvailable == true в порядке регистрации.
func (s *CarStore) ListAvailable(ctx context.Context) ([]*domain.Car, error) {
	const op = "memstore.ListAvailableCars"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Car
	for _, id := range s.order {
		if c := s.byID[id]; c.IsAvailable {
			cp := *c
			result = append(result, &cp)
		}
	}
	return result, nil
}

// SetAvailability выставляет флаг доступности автомобиля. Операция идемпотентна;
// это единственная точка записи флага во всей системе.
func (s *CarStore) SetAvailability(ctx context.Context, carID string, available bool) (*domain.Car, error) {
	const op = "memstore.SetAvailability"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[carID]
	if !ok {
		return nil, domain.ErrCarNotFound
	}
	c.IsAvailable = available

	cp := *c
	return &cp, nil
}

// Reset очищает таблицу. Используется для изоляции тестов.
func (s *CarStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]*domain.Car)
	s.byPlate = make(map[string]string)
	s.order = nil
}
