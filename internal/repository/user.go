package repository

import (
	"context"

	"github.com/dkurganov/weather-tracker/internal/domain"
)

// UseCase depends on interface, not concrete implementation, so the DB can
// be swapped and tests can pass a fake.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
