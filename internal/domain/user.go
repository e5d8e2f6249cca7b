// Package domain содержит доменные модели системы проката автомобилей:
// пользователей, автомобили и договоры аренды, а также набор доменных ошибок.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package domain

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           string // Уникальный идентификатор пользователя
	Name         string // Имя пользователя
	Email        string // Электронная почта (уникальная)
	NationalID   string // Национальный идентификатор (уникальный)
	PasswordHash string // Хэш пароля пользователя, наружу не отдаётся
}

// PublicUser представляет пользователя без хэша пароля —
// единственная форма, в которой пользователь уходит наружу.
type PublicUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	NationalID string `json:"national_id"`
}

// Public возвращает представление пользователя без хэша пароля.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		NationalID: u.NationalID,
	}
}
