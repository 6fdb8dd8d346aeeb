package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/booking-service/internal/models"
)

// CreateBooking сохраняет бронирование и возвращает его с присвоенным ID.
// Несуществующие место или пользователь дают ErrReferenceMissing.
func (s *Storage) CreateBooking(ctx context.Context, booking models.Booking) (*models.Booking, error) {
	const op = "storage.CreateBooking"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `INSERT INTO bookings (place_id, user_id, check_in, check_out, max_guests, phone, name, price)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		booking.PlaceID, booking.UserID, booking.CheckIn, booking.CheckOut,
		booking.MaxGuests, booking.Phone, booking.Name, booking.Price,
	).Scan(&booking.ID); err != nil {
		if pgCode(err) == foreignKeyViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrReferenceMissing)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &booking, nil
}

// ListBookingsByUser возвращает бронирования пользователя вместе с объявлениями.
func (s *Storage) ListBookingsByUser(ctx context.Context, userID string) ([]*models.BookingWithPlace, error) {
	const op = "storage.ListBookingsByUser"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + placeColumns + `,
			      b.id, b.user_id, b.check_in, b.check_out, b.max_guests, b.phone, b.name, b.price
			  FROM bookings b
			  JOIN places p ON p.id = b.place_id
			  WHERE b.user_id = $1
			  ORDER BY b.check_in, b.id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.BookingWithPlace, 0)
	for rows.Next() {
		var b models.BookingWithPlace
		place, err := scanPlace(rows,
			&b.ID, &b.UserID, &b.CheckIn, &b.CheckOut, &b.MaxGuests, &b.Phone, &b.Name, &b.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		b.Place = *place
		b.PlaceID = place.ID
		result = append(result, &b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
