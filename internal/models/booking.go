package models

import "time"

// Booking бронирование места пользователем на период дат.
type Booking struct {
	ID        string    `json:"id"`
	PlaceID   string    `json:"place"`
	UserID    string    `json:"user"`
	CheckIn   time.Time `json:"checkIn"`
	CheckOut  time.Time `json:"checkOut"`
	MaxGuests int       `json:"maxGuests"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
}

// BookingWithPlace бронирование с подставленным объявлением.
// Поле Place перекрывает Booking.PlaceID при сериализации в "place".
type BookingWithPlace struct {
	Booking
	Place Place `json:"place"`
}

// BookingInput тело запроса POST /bookings. Даты в формате YYYY-MM-DD
// (допускается и RFC 3339), разбираются в сервисе.
type BookingInput struct {
	PlaceID   string  `json:"place" validate:"required,uuid"`
	CheckIn   string  `json:"checkIn" validate:"required"`
	CheckOut  string  `json:"checkOut" validate:"required"`
	MaxGuests int     `json:"maxGuests" validate:"required,gt=0"`
	Name      string  `json:"name" validate:"required,max=200"`
	Phone     string  `json:"phone" validate:"required,max=50"`
	Price     float64 `json:"price" validate:"required,gt=0"`
}
