package domain

import "errors"

// Доменные ошибки. Транспортные адаптеры различают их через errors.Is
// и отображают в коды состояния; текст — человекочитаемое сообщение.
var (
	// ErrDuplicateEmail — email уже зарегистрирован.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateNationalID — национальный идентификатор уже зарегистрирован.
	ErrDuplicateNationalID = errors.New("national id already registered")
	// ErrDuplicatePlate — госномер уже зарегистрирован.
	ErrDuplicatePlate = errors.New("plate already registered")

	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrCarNotFound — автомобиль не найден.
	ErrCarNotFound = errors.New("car not found")
	// ErrRentalNotFound — договор аренды не найден.
	ErrRentalNotFound = errors.New("rental not found")

	// ErrInvalidCredentials — неверные учётные данные. Текст одинаков и для
	// несуществующего аккаунта, и для неверного пароля, чтобы нельзя было
	// перечислять аккаунты.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated — отсутствующий, повреждённый или истёкший токен.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrTooManyActiveRentals — у пользователя уже две активные аренды.
	ErrTooManyActiveRentals = errors.New("user already has two active rentals")
	// ErrCarAlreadyRented — автомобиль уже занят другим активным договором.
	ErrCarAlreadyRented = errors.New("car already rented under another active contract")
	// ErrCarNotAvailable — автомобиль недоступен для аренды.
	ErrCarNotAvailable = errors.New("car is not available for rental")
	// ErrInvalidRentalPeriod — ожидаемая дата возврата не позже даты начала.
	ErrInvalidRentalPeriod = errors.New("expected end date must be after start date")
)
