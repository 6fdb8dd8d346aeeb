// Package services содержит бизнес-логику работы с объявлениями: создание, чтение,
// обновление владельцем и кеширование в Redis.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/booking-service/internal/lib/sl"
	"github.com/magabrotheeeer/booking-service/internal/models"
	"github.com/magabrotheeeer/booking-service/internal/storage"
)

// Ошибки сервиса объявлений.
var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrForbidden     = errors.New("place belongs to another user")
)

const allPlacesKey = "places:all"

// PlaceRepository определяет методы для работы с объявлениями в хранилище.
type PlaceRepository interface {
	CreatePlace(ctx context.Context, place models.Place) (*models.Place, error)
	GetPlace(ctx context.Context, id string) (*models.Place, error)
	ListPlacesByOwner(ctx context.Context, ownerID string) ([]*models.Place, error)
	ListPlaces(ctx context.Context) ([]*models.Place, error)
	UpdatePlace(ctx context.Context, place models.Place) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значения из кеша по ключам.
	Invalidate(ctx context.Context, keys ...string) error
}

// PlaceService реализует бизнес-логику работы с объявлениями.
// Кеш необязателен: при nil все чтения идут в репозиторий.
type PlaceService struct {
	repo  PlaceRepository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger

	// mu и gens не дают чтению, начатому до инвалидации ключа,
	// положить в кеш устаревшее значение.
	mu   sync.Mutex
	gens map[string]uint64
}

// NewPlaceService создает новый экземпляр PlaceService.
func NewPlaceService(repo PlaceRepository, cache Cache, ttl time.Duration, log *slog.Logger) *PlaceService {
	return &PlaceService{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
		gens:  make(map[string]uint64),
	}
}

// Create сохраняет объявление, владельцем которого становится ownerID.
func (s *PlaceService) Create(ctx context.Context, ownerID string, in models.PlaceInput) (*models.Place, error) {
	const op = "services.PlaceService.Create"

	place := models.Place{Owner: ownerID}
	in.Apply(&place)

	created, err := s.repo.CreatePlace(ctx, place)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new place", slog.String("id", created.ID), slog.String("owner", ownerID))

	s.invalidate(ctx, allPlacesKey)
	return created, nil
}

// ListByOwner возвращает объявления пользователя.
func (s *PlaceService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Place, error) {
	const op = "services.PlaceService.ListByOwner"

	places, err := s.repo.ListPlacesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return places, nil
}

// Read возвращает объявление по ID, используя кеш или репозиторий.
// Для неизвестного или некорректного ID возвращается nil без ошибки.
func (s *PlaceService) Read(ctx context.Context, id string) (*models.Place, error) {
	const op = "services.PlaceService.Read"

	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	key := placeKey(id)
	gen := s.generation(key)
	var cached models.Place
	if s.get(ctx, key, &cached) {
		return &cached, nil
	}

	place, err := s.repo.GetPlace(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.set(ctx, key, place, gen)
	return place, nil
}

// Authorize проверяет, что callerID владеет объявлением id.
// Возвращает ErrPlaceNotFound или ErrForbidden.
func (s *PlaceService) Authorize(ctx context.Context, callerID, id string) error {
	const op = "services.PlaceService.Authorize"

	if _, err := s.owned(ctx, callerID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Update перезаписывает изменяемые поля объявления.
// Менять объявление может только его владелец, иначе ErrForbidden.
func (s *PlaceService) Update(ctx context.Context, callerID string, in models.UpdatePlaceInput) error {
	const op = "services.PlaceService.Update"

	place, err := s.owned(ctx, callerID, in.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	in.Apply(place)
	if err := s.repo.UpdatePlace(ctx, *place); err != nil {
		// запись удалена между чтением и обновлением
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrPlaceNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("updated place", slog.String("id", place.ID))

	s.invalidate(ctx, placeKey(place.ID), allPlacesKey)
	return nil
}

// ListAll возвращает все объявления.
func (s *PlaceService) ListAll(ctx context.Context) ([]*models.Place, error) {
	const op = "services.PlaceService.ListAll"

	gen := s.generation(allPlacesKey)
	var cached []*models.Place
	if s.get(ctx, allPlacesKey, &cached) {
		return cached, nil
	}

	places, err := s.repo.ListPlaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.set(ctx, allPlacesKey, places, gen)
	return places, nil
}

func (s *PlaceService) get(ctx context.Context, key string, result any) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
		return false
	}
	return found
}

func (s *PlaceService) generation(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[key]
}

// set кладёт значение в кеш, только если ключ не инвалидировали после чтения gen.
func (s *PlaceService) set(ctx context.Context, key string, value any, gen uint64) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[key] != gen {
		s.log.Debug("skip caching stale value", slog.String("key", key))
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
	}
}

func (s *PlaceService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		s.gens[key]++
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("failed to remove from cache", slog.Any("keys", keys), sl.Err(err))
	}
}

func (s *PlaceService) owned(ctx context.Context, callerID, id string) (*models.Place, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrPlaceNotFound
	}
	place, err := s.repo.GetPlace(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	if place.Owner != callerID {
		return nil, ErrForbidden
	}
	return place, nil
}

func placeKey(id string) string {
	return "place:" + id
}
