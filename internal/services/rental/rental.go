// Package services содержит логику допуска заявок на аренду и ведения журнала договоров.
//
// RentalService — единственный компонент, которому разрешено одобрять создание
// аренды. Проверки выполняются в строгом порядке и обрываются на первой
// неудаче; создание записи в журнале и переключение доступности автомобиля
// выполняются как одна логическая единица работы.
package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
	"github.com/magabrotheeeer/car-rental-service/internal/lib/sl"
	"github.com/magabrotheeeer/car-rental-service/internal/metrics"
)

// UserFinder — доступ сервису аренды к хранилищу пользователей, только чтение.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// CarRepository — доступ к хранилищу автомобилей. Переключение доступности
// идёт через публичную операцию хранилища, а не через запись в поле.
type CarRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Car, error)
	SetAvailability(ctx context.Context, carID string, available bool) (*domain.Car, error)
}

// RentalRepository определяет методы журнала договоров аренды.
type RentalRepository interface {
	CreateRental(ctx context.Context, userID, carID string, startDate, expectedEndDate time.Time) (*domain.Rental, error)
	// RemoveRental откатывает только что созданную запись, если переключить
	// доступность автомобиля не удалось.
	RemoveRental(ctx context.Context, rentalID string) error
	FindByID(ctx context.Context, rentalID string) (*domain.Rental, error)
	FindOpenByUser(ctx context.Context, userID string) ([]*domain.Rental, error)
	FindOpenByCar(ctx context.Context, carID string) (*domain.Rental, error)
	FindAllByUser(ctx context.Context, userID string) ([]*domain.Rental, error)
	ListAll(ctx context.Context) ([]*domain.Rental, error)
	FinishRental(ctx context.Context, rentalID string, actualEndDate time.Time) (*domain.Rental, error)
}

// maxActiveRentalsPerUser — предел одновременных активных договоров у пользователя.
const maxActiveRentalsPerUser = 2

// RentalService реализует допуск заявок на аренду и операции над журналом.
type RentalService struct {
	users   UserFinder
	cars    CarRepository
	rentals RentalRepository
	log     *slog.Logger
	metrics metrics.Recorder

	// mu сериализует окно чтение-затем-запись допуска: от подсчёта активных
	// договоров до переключения доступности. Без него два конкурентных
	// запроса на один автомобиль или от одного пользователя могли бы оба
	// пройти проверки по устаревшим данным.
	mu sync.Mutex
}

// NewRentalService создает новый экземпляр RentalService.
func NewRentalService(users UserFinder, cars CarRepository, rentals RentalRepository, log *slog.Logger, rec metrics.Recorder) *RentalService {
	return &RentalService{
		users:   users,
		cars:    cars,
		rentals: rentals,
		log:     log,
		metrics: rec,
	}
}

// Create проверяет заявку на аренду и при успехе создает договор,
// помечая автомобиль занятым. Порядок проверок фиксирован:
// пользователь, автомобиль, лимит активных договоров, занятость автомобиля,
// флаг доступности. Первая неудача обрывает обработку.
func (s *RentalService) Create(ctx context.Context, userID, carID string, startDate, expectedEndDate time.Time) (*domain.Rental, error) {
	if !expectedEndDate.After(startDate) {
		s.metrics.RecordRentalRejected("invalid_period")
		return nil, domain.ErrInvalidRentalPeriod
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		s.metrics.RecordRentalRejected("user_not_found")
		return nil, domain.ErrUserNotFound
	}

	car, err := s.cars.FindByID(ctx, carID)
	if err != nil {
		s.metrics.RecordRentalRejected("car_not_found")
		return nil, domain.ErrCarNotFound
	}

	active, err := s.rentals.FindOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(active) >= maxActiveRentalsPerUser {
		s.metrics.RecordRentalRejected("too_many_active_rentals")
		return nil, domain.ErrTooManyActiveRentals
	}

	openByCar, err := s.rentals.FindOpenByCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	if openByCar != nil {
		s.metrics.RecordRentalRejected("car_already_rented")
		return nil, domain.ErrCarAlreadyRented
	}

	// Флаг проверяется отдельно от журнала: наружу источником истины о
	// доступности является именно он.
	if !car.IsAvailable {
		s.metrics.RecordRentalRejected("car_not_available")
		return nil, domain.ErrCarNotAvailable
	}

	rental, err := s.rentals.CreateRental(ctx, userID, carID, startDate, expectedEndDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.cars.SetAvailability(ctx, carID, false); err != nil {
		// Либо видимы обе записи, либо ни одной: запись журнала откатывается.
		if rmErr := s.rentals.RemoveRental(ctx, rental.ID); rmErr != nil {
			s.log.Error("failed to roll back rental after availability flip error", sl.Err(rmErr))
		}
		return nil, err
	}

	s.metrics.RecordRentalAdmitted()
	s.log.Info("rental admitted",
		slog.String("rental_id", rental.ID),
		slog.String("user_id", userID),
		slog.String("car_id", carID))
	return rental, nil
}

// ListByUser возвращает все договоры пользователя, включая закрытые.
func (s *RentalService) ListByUser(ctx context.Context, userID string) ([]*domain.Rental, error) {
	return s.rentals.FindAllByUser(ctx, userID)
}

// ListAll возвращает все договоры.
func (s *RentalService) ListAll(ctx context.Context) ([]*domain.Rental, error) {
	return s.rentals.ListAll(ctx)
}

// GetByID возвращает договор по идентификатору.
func (s *RentalService) GetByID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	return s.rentals.FindByID(ctx, rentalID)
}

// Finish закрывает договор, проставляя фактическую дату возврата.
// Доступность автомобиля намеренно не восстанавливается: вернуть машину
// в парк обязан вызывающий через CarRepository.SetAvailability.
func (s *RentalService) Finish(ctx context.Context, rentalID string, actualEndDate time.Time) (*domain.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rental, err := s.rentals.FinishRental(ctx, rentalID, actualEndDate)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordRentalFinished()
	s.log.Info("rental finished", slog.String("rental_id", rental.ID))
	return rental, nil
}
