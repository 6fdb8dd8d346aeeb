package bookingservice

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/booking-service/internal/models"
	"github.com/magabrotheeeer/booking-service/internal/storage"
)

// memStore хранилище в памяти с теми же ошибками, что и storage.Storage.
type memStore struct {
	mu       sync.Mutex
	users    map[string]models.User
	places   map[string]models.Place
	order    []string
	bookings []models.Booking
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[string]models.User),
		places: make(map[string]models.Place),
	}
}

func (s *memStore) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, storage.ErrUserExists
		}
	}
	user.ID = uuid.NewString()
	s.users[user.ID] = user
	return &user, nil
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *memStore) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (s *memStore) CreatePlace(_ context.Context, place models.Place) (*models.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	place.ID = uuid.NewString()
	s.places[place.ID] = place
	s.order = append(s.order, place.ID)
	return &place, nil
}

func (s *memStore) GetPlace(_ context.Context, id string) (*models.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.places[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (s *memStore) ListPlacesByOwner(_ context.Context, ownerID string) ([]*models.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]*models.Place, 0)
	for _, id := range s.order {
		if p := s.places[id]; p.Owner == ownerID {
			res = append(res, &p)
		}
	}
	return res, nil
}

func (s *memStore) ListPlaces(_ context.Context) ([]*models.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]*models.Place, 0, len(s.order))
	for _, id := range s.order {
		p := s.places[id]
		res = append(res, &p)
	}
	return res, nil
}

func (s *memStore) UpdatePlace(_ context.Context, place models.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.places[place.ID]
	if !ok || current.Owner != place.Owner {
		return storage.ErrNotFound
	}
	s.places[place.ID] = place
	return nil
}

func (s *memStore) CreateBooking(_ context.Context, booking models.Booking) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.places[booking.PlaceID]; !ok {
		return nil, storage.ErrReferenceMissing
	}
	booking.ID = uuid.NewString()
	s.bookings = append(s.bookings, booking)
	return &booking, nil
}

func (s *memStore) ListBookingsByUser(_ context.Context, userID string) ([]*models.BookingWithPlace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]*models.BookingWithPlace, 0)
	for _, b := range s.bookings {
		if b.UserID != userID {
			continue
		}
		res = append(res, &models.BookingWithPlace{Booking: b, Place: s.places[b.PlaceID]})
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].CheckIn.Before(res[j].CheckIn) })
	return res, nil
}
