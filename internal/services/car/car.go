// Package services содержит логику бизнес-уровня для работы с парком автомобилей.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
)

// CarRepository определяет методы для работы с автомобилями в хранилище.
type CarRepository interface {
	// CreateCar добавляет новый автомобиль; госномер должен быть уникален.
	CreateCar(ctx context.Context, brand, model string, year int, plate string, dailyRate float64) (*domain.Car, error)
	// FindByPlate возвращает автомобиль по госномеру.
	FindByPlate(ctx context.Context, plate string) (*domain.Car, error)
	// FindByID возвращает автомобиль по идентификатору.
	FindByID(ctx context.Context, id string) (*domain.Car, error)
	// ListAvailable возвращает автомобили, доступные для аренды.
	ListAvailable(ctx context.Context) ([]*domain.Car, error)
	// SetAvailability выставляет флаг доступности.
	SetAvailability(ctx context.Context, carID string, available bool) (*domain.Car, error)
}

// CarService реализует операции над парком автомобилей.
type CarService struct {
	cars CarRepository
	log  *slog.Logger
}

// NewCarService создает новый экземпляр CarService.
func NewCarService(cars CarRepository, log *slog.Logger) *CarService {
	return &CarService{
		cars: cars,
		log:  log,
	}
}

// Register регистрирует новый автомобиль. Новый автомобиль доступен для аренды.
func (s *CarService) Register(ctx context.Context, brand, model string, year int, plate string, dailyRate float64) (*domain.Car, error) {
	car, err := s.cars.CreateCar(ctx, brand, model, year, plate, dailyRate)
	if err != nil {
		return nil, err
	}
	s.log.Info("registered new car", slog.String("id", car.ID), slog.String("plate", car.Plate))
	return car, nil
}

// ListAvailable возвращает автомобили, доступные для аренды.
func (s *CarService) ListAvailable(ctx context.Context) ([]*domain.Car, error) {
	return s.cars.ListAvailable(ctx)
}

// GetByID возвращает автомобиль по идентификатору.
func (s *CarService) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	return s.cars.FindByID(ctx, id)
}

// SetAvailability меняет флаг доступности автомобиля. Используется
// вызывающей стороной после закрытия договора, чтобы вернуть машину в парк.
func (s *CarService) SetAvailability(ctx context.Context, carID string, available bool) (*domain.Car, error) {
	return s.cars.SetAvailability(ctx, carID, available)
}
