// seed inserts a test user and a handful of cities into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dkurganov/weather-tracker/internal/domain"
	"github.com/dkurganov/weather-tracker/internal/infrastructure/postgres"
	"github.com/dkurganov/weather-tracker/internal/usecase"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "password123"
)

var cities = []struct {
	name     string
	favorite bool
}{
	{"paris", true},
	{"london", false},
	{"tokyo", true},
	{"new york", false},
	{"bishkek", false},
}

func main() {
	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user, err := userRepo.Create(ctx, "Seed User", seedEmail, string(hash))
	if errors.Is(err, domain.ErrEmailTaken) {
		user, err = userRepo.FindByEmail(ctx, seedEmail)
	}
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	cityRepo := postgres.NewCityRepository(pool)
	cityUsecase := usecase.NewCityUsecase(cityRepo)

	added := 0
	for _, c := range cities {
		city, err := cityUsecase.AddCity(ctx, user.ID, c.name)
		if errors.Is(err, domain.ErrCityExists) {
			continue
		}
		if err != nil {
			log.Fatalf("seed city %q: %v", c.name, err)
		}
		if c.favorite {
			if _, err := cityRepo.ToggleFavorite(ctx, city.ID, user.ID); err != nil {
				log.Fatalf("favorite city %q: %v", c.name, err)
			}
		}
		added++
	}

	fmt.Printf("seeded user %s with %d cities (login: %s / %s)\n", user.ID, added, seedEmail, seedPassword)
}
