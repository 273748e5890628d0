package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkurganov/weather-tracker/internal/domain"
	"github.com/dkurganov/weather-tracker/internal/repository"
)

type CityUsecase struct {
	repo repository.CityRepository
}

func NewCityUsecase(repo repository.CityRepository) *CityUsecase {
	return &CityUsecase{repo: repo}
}

// AddCity normalizes the raw name and creates the subscription for ownerID.
// The same normalized name can exist once per owner; a second add is
// domain.ErrCityExists.
func (u *CityUsecase) AddCity(ctx context.Context, ownerID, rawName string) (*domain.City, error) {
	name := domain.NormalizeCityName(rawName)
	if name == "" {
		return nil, domain.ErrCityNameEmpty
	}

	_, err := u.repo.FindByName(ctx, ownerID, name)
	switch {
	case err == nil:
		return nil, domain.ErrCityExists
	case !errors.Is(err, domain.ErrCityNotFound):
		return nil, fmt.Errorf("check existing city: %w", err)
	}

	city, err := u.repo.Create(ctx, ownerID, name)
	if err != nil {
		if errors.Is(err, domain.ErrCityExists) {
			return nil, domain.ErrCityExists
		}
		return nil, fmt.Errorf("create city: %w", err)
	}
	return city, nil
}

func (u *CityUsecase) ListCities(ctx context.Context, ownerID string) ([]*domain.City, error) {
	cities, err := u.repo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return cities, nil
}

// ToggleFavorite flips the favorite flag of the city matching both id and
// owner. A city owned by someone else is indistinguishable from a missing one.
func (u *CityUsecase) ToggleFavorite(ctx context.Context, ownerID, cityID string) (*domain.City, error) {
	city, err := u.repo.ToggleFavorite(ctx, cityID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrCityNotFound) {
			return nil, domain.ErrCityNotFound
		}
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}
	return city, nil
}

func (u *CityUsecase) RemoveCity(ctx context.Context, ownerID, cityID string) error {
	err := u.repo.Delete(ctx, cityID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrCityNotFound) {
			return domain.ErrCityNotFound
		}
		return fmt.Errorf("remove city: %w", err)
	}
	return nil
}
