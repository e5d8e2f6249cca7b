package domain

import "time"

// Rental представляет договор аренды автомобиля.
// ActualEndDate == nil означает, что аренда активна (автомобиль на руках).
// Жизненный цикл двухфазный: открыт при создании, закрывается ровно один раз.
type Rental struct {
	ID              string     `json:"id"`                // Уникальный идентификатор договора
	UserID          string     `json:"user_id"`           // Ссылка на пользователя
	CarID           string     `json:"car_id"`            // Ссылка на автомобиль
	StartDate       time.Time  `json:"start_date"`        // Дата начала аренды
	ExpectedEndDate time.Time  `json:"expected_end_date"` // Ожидаемая дата возврата
	ActualEndDate   *time.Time `json:"actual_end_date"`   // Фактическая дата возврата, nil — аренда активна
}

// IsOpen сообщает, активна ли аренда.
func (r *Rental) IsOpen() bool {
	return r.ActualEndDate == nil
}
