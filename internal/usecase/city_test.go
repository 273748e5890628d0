package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dkurganov/weather-tracker/internal/domain"
	"github.com/dkurganov/weather-tracker/internal/usecase"
)

// fakeCityRepo is an in-memory CityRepository honoring the same contract as
// the postgres implementation: (user_id, name) unique, mutations scoped by
// (id, user_id).
type fakeCityRepo struct {
	cities map[string]*domain.City
	nextID int
}

func newFakeCityRepo() *fakeCityRepo {
	return &fakeCityRepo{cities: make(map[string]*domain.City)}
}

func (r *fakeCityRepo) Create(_ context.Context, userID, name string) (*domain.City, error) {
	for _, c := range r.cities {
		if c.UserID == userID && c.Name == name {
			return nil, domain.ErrCityExists
		}
	}
	r.nextID++
	c := &domain.City{
		ID:        fmt.Sprintf("city-%d", r.nextID),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.cities[c.ID] = c
	return c, nil
}

func (r *fakeCityRepo) FindByName(_ context.Context, userID, name string) (*domain.City, error) {
	for _, c := range r.cities {
		if c.UserID == userID && c.Name == name {
			return c, nil
		}
	}
	return nil, domain.ErrCityNotFound
}

func (r *fakeCityRepo) ListByUser(_ context.Context, userID string) ([]*domain.City, error) {
	var out []*domain.City
	for _, c := range r.cities {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCityRepo) ToggleFavorite(_ context.Context, cityID, userID string) (*domain.City, error) {
	c, ok := r.cities[cityID]
	if !ok || c.UserID != userID {
		return nil, domain.ErrCityNotFound
	}
	c.IsFavorite = !c.IsFavorite
	return c, nil
}

func (r *fakeCityRepo) Delete(_ context.Context, cityID, userID string) error {
	c, ok := r.cities[cityID]
	if !ok || c.UserID != userID {
		return domain.ErrCityNotFound
	}
	delete(r.cities, cityID)
	return nil
}

func (r *fakeCityRepo) ListFavoriteNames(_ context.Context) ([]string, error) {
	var names []string
	for _, c := range r.cities {
		if c.IsFavorite {
			names = append(names, c.Name)
		}
	}
	return names, nil
}

func TestAddCity_NormalizesName(t *testing.T) {
	uc := usecase.NewCityUsecase(newFakeCityRepo())

	city, err := uc.AddCity(context.Background(), "u1", "  Paris ")
	if err != nil {
		t.Fatalf("add city: %v", err)
	}
	if city.Name != "paris" {
		t.Errorf("name = %q, want %q", city.Name, "paris")
	}
}

func TestAddCity_WhitespaceOnlyName_Rejected(t *testing.T) {
	uc := usecase.NewCityUsecase(newFakeCityRepo())

	_, err := uc.AddCity(context.Background(), "u1", "   ")
	if !errors.Is(err, domain.ErrCityNameEmpty) {
		t.Errorf("err = %v, want ErrCityNameEmpty", err)
	}
}

func TestAddCity_DuplicateForSameOwner_Conflicts(t *testing.T) {
	uc := usecase.NewCityUsecase(newFakeCityRepo())

	if _, err := uc.AddCity(context.Background(), "u1", "paris"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	// Visually different input, same normalized name.
	_, err := uc.AddCity(context.Background(), "u1", " PARIS ")
	if !errors.Is(err, domain.ErrCityExists) {
		t.Errorf("err = %v, want ErrCityExists", err)
	}
}

func TestAddCity_SameNameDifferentOwners_BothSucceed(t *testing.T) {
	uc := usecase.NewCityUsecase(newFakeCityRepo())

	if _, err := uc.AddCity(context.Background(), "u1", "paris"); err != nil {
		t.Fatalf("u1 add: %v", err)
	}
	if _, err := uc.AddCity(context.Background(), "u2", "paris"); err != nil {
		t.Fatalf("u2 add: %v", err)
	}
}

func TestListCities_EmptyOwner_ReturnsEmpty(t *testing.T) {
	uc := usecase.NewCityUsecase(newFakeCityRepo())

	cities, err := uc.ListCities(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cities) != 0 {
		t.Errorf("len = %d, want 0", len(cities))
	}
}

func TestToggleFavorite_TwiceRestoresOriginal(t *testing.T) {
	repo := newFakeCityRepo()
	uc := usecase.NewCityUsecase(repo)

	city, err := uc.AddCity(context.Background(), "u1", "paris")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	once, err := uc.ToggleFavorite(context.Background(), "u1", city.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !once.IsFavorite {
		t.Error("expected favorite after first toggle")
	}

	twice, err := uc.ToggleFavorite(context.Background(), "u1", city.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if twice.IsFavorite {
		t.Error("expected original (non-favorite) value after second toggle")
	}
}

func TestToggleFavorite_OtherOwnersCity_NotFound(t *testing.T) {
	uc := usecase.NewCityUsecase(newFakeCityRepo())

	city, err := uc.AddCity(context.Background(), "u1", "paris")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err = uc.ToggleFavorite(context.Background(), "u2", city.ID)
	if !errors.Is(err, domain.ErrCityNotFound) {
		t.Errorf("err = %v, want ErrCityNotFound (ownership must not leak)", err)
	}
}

func TestRemoveCity_OtherOwnersCity_NotFound(t *testing.T) {
	uc := usecase.NewCityUsecase(newFakeCityRepo())

	city, err := uc.AddCity(context.Background(), "u1", "paris")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	err = uc.RemoveCity(context.Background(), "u2", city.ID)
	if !errors.Is(err, domain.ErrCityNotFound) {
		t.Errorf("err = %v, want ErrCityNotFound", err)
	}
}

func TestRemoveCity_AlreadyRemoved_NotFound(t *testing.T) {
	uc := usecase.NewCityUsecase(newFakeCityRepo())

	city, err := uc.AddCity(context.Background(), "u1", "paris")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := uc.RemoveCity(context.Background(), "u1", city.ID); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	err = uc.RemoveCity(context.Background(), "u1", city.ID)
	if !errors.Is(err, domain.ErrCityNotFound) {
		t.Errorf("err = %v, want ErrCityNotFound", err)
	}
}
