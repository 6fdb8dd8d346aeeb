// Package models содержит доменные модели сервиса бронирования:
// пользователей, объявления (места) и бронирования, а также входные данные запросов.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           string `json:"id"`    // Уникальный идентификатор пользователя
	Name         string `json:"name"`  // Отображаемое имя
	Email        string `json:"email"` // Электронная почта (уникальная)
	PasswordHash string `json:"-"`     // Хэш пароля, клиентам не отдаётся
}

// Profile публичное представление пользователя для /profile.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile возвращает публичное представление пользователя.
func (u *User) Profile() *Profile {
	return &Profile{ID: u.ID, Name: u.Name, Email: u.Email}
}
