package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrCityNotFound  = errors.New("city not found")
	ErrCityExists    = errors.New("city already exists")
	ErrCityNameEmpty = errors.New("city name is empty")
)

// City is a user's subscription to a named location. The name is stored
// normalized so that " Paris " and "paris" are the same subscription.
type City struct {
	ID         string
	UserID     string
	Name       string
	IsFavorite bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizeCityName trims surrounding whitespace and lower-cases the name.
func NormalizeCityName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
