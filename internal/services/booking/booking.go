// Package services содержит бизнес-логику бронирований.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/booking-service/internal/lib/sl"
	"github.com/magabrotheeeer/booking-service/internal/models"
)

// ErrInvalidDates даты бронирования не разбираются или выезд не позже заезда.
var ErrInvalidDates = errors.New("checkOut must be a date after checkIn")

// RoutingKeyCreated ключ события о новом бронировании.
const RoutingKeyCreated = "booking.created"

const dateLayout = "2006-01-02"

// BookingRepository определяет методы для работы с бронированиями в хранилище.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking models.Booking) (*models.Booking, error)
	ListBookingsByUser(ctx context.Context, userID string) ([]*models.BookingWithPlace, error)
}

// EventPublisher публикует доменные события.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// BookingService создаёт бронирования и выдаёт их список пользователю.
type BookingService struct {
	repo      BookingRepository
	publisher EventPublisher
	log       *slog.Logger
}

// NewBookingService создает новый экземпляр BookingService. publisher может быть nil.
func NewBookingService(repo BookingRepository, publisher EventPublisher, log *slog.Logger) *BookingService {
	return &BookingService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Create сохраняет бронирование от имени userID.
func (s *BookingService) Create(ctx context.Context, userID string, in models.BookingInput) (*models.Booking, error) {
	const op = "services.BookingService.Create"

	checkIn, err := parseDate(in.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("%s: checkIn: %w", op, ErrInvalidDates)
	}
	checkOut, err := parseDate(in.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%s: checkOut: %w", op, ErrInvalidDates)
	}
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidDates)
	}

	booking, err := s.repo.CreateBooking(ctx, models.Booking{
		PlaceID:   in.PlaceID,
		UserID:    userID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		MaxGuests: in.MaxGuests,
		Phone:     strings.TrimSpace(in.Phone),
		Name:      strings.TrimSpace(in.Name),
		Price:     in.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new booking", slog.String("id", booking.ID), slog.String("place", booking.PlaceID))

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, RoutingKeyCreated, booking); err != nil {
			s.log.Warn("failed to publish booking event", slog.String("id", booking.ID), sl.Err(err))
		}
	}
	return booking, nil
}

// ListByUser возвращает бронирования пользователя с подставленными объявлениями.
func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]*models.BookingWithPlace, error) {
	const op = "services.BookingService.ListByUser"

	bookings, err := s.repo.ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return bookings, nil
}

// parseDate принимает YYYY-MM-DD или RFC 3339 и отбрасывает время суток.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
