package repository

import (
	"context"

	"github.com/dkurganov/weather-tracker/internal/domain"
)

type CityRepository interface {
	Create(ctx context.Context, userID, name string) (*domain.City, error)
	FindByName(ctx context.Context, userID, name string) (*domain.City, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.City, error)
	// ToggleFavorite flips the flag in a single statement scoped by
	// (id, userID) and returns the updated row.
	ToggleFavorite(ctx context.Context, cityID, userID string) (*domain.City, error)
	Delete(ctx context.Context, cityID, userID string) error
	// ListFavoriteNames returns the distinct normalized names of all
	// favourited cities across users. Used by the cache refresher.
	ListFavoriteNames(ctx context.Context) ([]string, error)
}
