package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkurganov/weather-tracker/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CityRepository struct {
	pool *pgxpool.Pool
}

func NewCityRepository(pool *pgxpool.Pool) *CityRepository {
	return &CityRepository{pool: pool}
}

func (r *CityRepository) Create(ctx context.Context, userID, name string) (*domain.City, error) {
	query := `
		INSERT INTO cities (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name, is_favorite, created_at, updated_at`

	c, err := scanCity(r.pool.QueryRow(ctx, query, userID, name))
	if err != nil {
		// The usecase checks for duplicates before inserting; the unique
		// index on (user_id, name) catches the race between two inserts.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrCityExists
		}
		return nil, err
	}
	return c, nil
}

func (r *CityRepository) FindByName(ctx context.Context, userID, name string) (*domain.City, error) {
	query := `
		SELECT id, user_id, name, is_favorite, created_at, updated_at
		FROM cities
		WHERE user_id = $1 AND name = $2`

	return scanCity(r.pool.QueryRow(ctx, query, userID, name))
}

func (r *CityRepository) ListByUser(ctx context.Context, userID string) ([]*domain.City, error) {
	query := `
		SELECT id, user_id, name, is_favorite, created_at, updated_at
		FROM cities
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	cities := []*domain.City{}
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

func (r *CityRepository) ToggleFavorite(ctx context.Context, cityID, userID string) (*domain.City, error) {
	// Single-statement flip: the (id, user_id) filter is both the
	// ownership check and the atomicity boundary.
	query := `
		UPDATE cities
		SET    is_favorite = NOT is_favorite,
		       updated_at  = NOW()
		WHERE  id = $1 AND user_id = $2
		RETURNING id, user_id, name, is_favorite, created_at, updated_at`

	return scanCity(r.pool.QueryRow(ctx, query, cityID, userID))
}

func (r *CityRepository) Delete(ctx context.Context, cityID, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cities WHERE id = $1 AND user_id = $2`, cityID, userID)
	if err != nil {
		return fmt.Errorf("delete city: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCityNotFound
	}
	return nil
}

func (r *CityRepository) ListFavoriteNames(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT name FROM cities WHERE is_favorite ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list favorite names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan favorite name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func scanCity(row pgx.Row) (*domain.City, error) {
	var c domain.City
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.IsFavorite, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCityNotFound
		}
		return nil, fmt.Errorf("scan city: %w", err)
	}
	return &c, nil
}
