package domain

// Car представляет автомобиль в парке проката.
// Поле IsAvailable меняется только через InventoryStore.SetAvailability,
// прямой записи в него из других компонентов нет.
type Car struct {
	ID          string  `json:"id"`           // Уникальный идентификатор автомобиля
	Brand       string  `json:"brand"`        // Марка
	Model       string  `json:"model"`        // Модель
	Year        int     `json:"year"`         // Год выпуска
	Plate       string  `json:"plate"`        // Госномер (уникальный)
	DailyRate   float64 `json:"daily_rate"`   // Стоимость аренды за сутки
	IsAvailable bool    `json:"is_available"` // Доступен ли автомобиль для аренды
}
