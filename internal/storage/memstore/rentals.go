package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
)

// RentalStore владеет журналом договоров аренды. Сам по себе он не выполняет
// проверок допуска — это ответственность сервиса аренды; хранилище лишь
// отвечает на вопросы об активных договорах и фиксирует переходы открыт/закрыт.
type RentalStore struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Rental
	order []string
}

// NewRentalStore создает пустой журнал аренды.
func NewRentalStore() *RentalStore {
	return &RentalStore{
		byID: make(map[string]*domain.Rental),
	}
}

func cloneRental(r *domain.Rental) *domain.Rental {
	cp := *r
	if r.ActualEndDate != nil {
		end := *r.ActualEndDate
		cp.ActualEndDate = &end
	}
	return &cp
}

// CreateRental добавляет новый договор в журнал и возвращает созданную запись.
// Договор создается открытым: ActualEndDate == nil.
func (s *RentalStore) CreateRental(ctx context.Context, userID, carID string, startDate, expectedEndDate time.Time) (*domain.Rental, error) {
	const op = "memstore.CreateRental"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := &domain.Rental{
		ID:              uuid.NewString(),
		UserID:          userID,
		CarID:           carID,
		StartDate:       startDate,
		ExpectedEndDate: expectedEndDate,
		ActualEndDate:   nil,
	}
	s.byID[r.ID] = r
	s.order = append(s.order, r.ID)

	return cloneRental(r), nil
}

// RemoveRental убирает договор из журнала. Единственный легальный вызов —
// откат только что созданной записи, когда переключить доступность
// автомобиля не удалось и создание надо сделать невидимым целиком.
func (s *RentalStore) RemoveRental(ctx context.Context, rentalID string) error {
	const op = "memstore.RemoveRental"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[rentalID]; !ok {
		return domain.ErrRentalNotFound
	}
	delete(s.byID, rentalID)
	for i, id := range s.order {
		if id == rentalID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindByID возвращает договор по идентификатору или domain.ErrRentalNotFound.
func (s *RentalStore) FindByID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	const op = "memstore.FindRentalByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byID[rentalID]
	if !ok {
		return nil, domain.ErrRentalNotFound
	}
	return cloneRental(r), nil
}

// FindOpenByUser возвращает активные договоры пользователя.
func (s *RentalStore) FindOpenByUser(ctx context.Context, userID string) ([]*domain.Rental, error) {
	const op = "memstore.FindOpenRentalsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Rental
	for _, id := range s.order {
		if r := s.byID[id]; r.UserID == userID && r.IsOpen() {
			result = append(result, cloneRental(r))
		}
	}
	return result, nil
}

// FindOpenByCar возвращает активный договор по автомобилю.
// Если такого договора нет, возвращает (nil, nil): отсутствие активной
// аренды — нормальный исход, а не ошибка.
func (s *RentalStore) FindOpenByCar(ctx context.Context, carID string) (*domain.Rental, error) {
	const op = "memstore.FindOpenRentalByCar"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if r := s.byID[id]; r.CarID == carID && r.IsOpen() {
			return cloneRental(r), nil
		}
	}
	return nil, nil
}

// FindAllByUser возвращает все договоры пользователя, включая закрытые.
func (s *RentalStore) FindAllByUser(ctx context.Context, userID string) ([]*domain.Rental, error) {
	const op = "memstore.FindAllRentalsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Rental
	for _, id := range s.order {
		if r := s.byID[id]; r.UserID == userID {
			result = append(result, cloneRental(r))
		}
	}
	return result, nil
}

// ListAll возвращает все договоры в порядке создания.
func (s *RentalStore) ListAll(ctx context.Context) ([]*domain.Rental, error) {
	const op = "memstore.ListAllRentals"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Rental, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, cloneRental(s.byID[id]))
	}
	return result, nil
}

// FinishRental проставляет фактическую дату возврата.
// Доступность автомобиля здесь не трогается: вернуть её обязан вызывающий
// через CarStore.SetAvailability.
func (s *RentalStore) FinishRental(ctx context.Context, rentalID string, actualEndDate time.Time) (*domain.Rental, error) {
	const op = "memstore.FinishRental"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byID[rentalID]
	if !ok {
		return nil, domain.ErrRentalNotFound
	}
	end := actualEndDate
	r.ActualEndDate = &end

	return cloneRental(r), nil
}

// Reset очищает журнал. Используется для изоляции тестов.
func (s *RentalStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]*domain.Rental)
	s.order = nil
}
