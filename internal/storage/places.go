package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/booking-service/internal/models"
)

const placeColumns = `p.id, p.owner_id, p.title, p.address, p.photos, p.description, p.perks,
			  p.extra_info, p.check_in, p.check_out, p.max_guests, p.price`

// rowScanner общий интерфейс *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// CreatePlace сохраняет объявление и возвращает его с присвоенным ID.
func (s *Storage) CreatePlace(ctx context.Context, place models.Place) (*models.Place, error) {
	const op = "storage.CreatePlace"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	photos, perks, err := encodeLists(place)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO places (owner_id, title, address, photos, description, perks,
			      extra_info, check_in, check_out, max_guests, price)
			  VALUES ($1, $2, $3, $4::jsonb, $5, $6::jsonb, $7, $8, $9, $10, $11)
			  RETURNING id`
	if err = s.DB.QueryRowContext(ctx, query,
		place.Owner, place.Title, place.Address, photos, place.Description, perks,
		place.ExtraInfo, place.CheckIn, place.CheckOut, place.MaxGuests, place.Price,
	).Scan(&place.ID); err != nil {
		if pgCode(err) == foreignKeyViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrReferenceMissing)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &place, nil
}

// GetPlace возвращает объявление по ID или ErrNotFound.
func (s *Storage) GetPlace(ctx context.Context, id string) (*models.Place, error) {
	const op = "storage.GetPlace"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + placeColumns + `
			  FROM places p
			  WHERE p.id = $1`
	p, err := scanPlace(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListPlacesByOwner возвращает объявления владельца в порядке создания.
func (s *Storage) ListPlacesByOwner(ctx context.Context, ownerID string) ([]*models.Place, error) {
	const op = "storage.ListPlacesByOwner"
	query := `SELECT ` + placeColumns + `
			  FROM places p
			  WHERE p.owner_id = $1
			  ORDER BY p.created_at, p.id`
	res, err := s.listPlaces(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// ListPlaces возвращает все объявления в порядке создания.
func (s *Storage) ListPlaces(ctx context.Context) ([]*models.Place, error) {
	const op = "storage.ListPlaces"
	query := `SELECT ` + placeColumns + `
			  FROM places p
			  ORDER BY p.created_at, p.id`
	res, err := s.listPlaces(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// UpdatePlace перезаписывает изменяемые поля объявления. Обновление выполняется
// только если владелец совпадает, иначе возвращается ErrNotFound.
func (s *Storage) UpdatePlace(ctx context.Context, place models.Place) error {
	const op = "storage.UpdatePlace"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	photos, perks, err := encodeLists(place)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE places
			  SET title = $3, address = $4, photos = $5::jsonb, description = $6, perks = $7::jsonb,
			      extra_info = $8, check_in = $9, check_out = $10, max_guests = $11, price = $12,
			      updated_at = now()
			  WHERE id = $1 AND owner_id = $2`
	res, err := s.DB.ExecContext(ctx, query,
		place.ID, place.Owner, place.Title, place.Address, photos, place.Description, perks,
		place.ExtraInfo, place.CheckIn, place.CheckOut, place.MaxGuests, place.Price,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func (s *Storage) listPlaces(ctx context.Context, query string, args ...any) ([]*models.Place, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Place, 0)
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanPlace(row rowScanner, extra ...any) (*models.Place, error) {
	p := &models.Place{}
	var photos, perks []byte
	dest := append([]any{
		&p.ID, &p.Owner, &p.Title, &p.Address, &photos, &p.Description, &perks,
		&p.ExtraInfo, &p.CheckIn, &p.CheckOut, &p.MaxGuests, &p.Price,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := decodeList(photos, &p.Photos); err != nil {
		return nil, fmt.Errorf("decode photos: %w", err)
	}
	if err := decodeList(perks, &p.Perks); err != nil {
		return nil, fmt.Errorf("decode perks: %w", err)
	}
	return p, nil
}

func encodeLists(p models.Place) (photos, perks string, err error) {
	ph, err := json.Marshal(nonNil(p.Photos))
	if err != nil {
		return "", "", err
	}
	pk, err := json.Marshal(nonNil(p.Perks))
	if err != nil {
		return "", "", err
	}
	return string(ph), string(pk), nil
}

func decodeList(raw []byte, dst *[]string) error {
	*dst = []string{}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
