package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dkurganov/weather-tracker/internal/domain"
	"github.com/dkurganov/weather-tracker/internal/email"
	"github.com/dkurganov/weather-tracker/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultJWTTTL = 24 * time.Hour

type AuthUsecase struct {
	users      repository.UserRepository
	email      email.Sender
	logger     *slog.Logger
	jwtKey     []byte
	jwtTTL     time.Duration
	bcryptCost int
}

func NewAuthUsecase(users repository.UserRepository, emailSender email.Sender, logger *slog.Logger, jwtKey []byte, bcryptCost int) *AuthUsecase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthUsecase{
		users:      users,
		email:      emailSender,
		logger:     logger.With("component", "auth_usecase"),
		jwtKey:     jwtKey,
		jwtTTL:     defaultJWTTTL,
		bcryptCost: bcryptCost,
	}
}

// Register hashes the password and stores the new identity. A duplicate
// email surfaces as domain.ErrEmailTaken. The welcome email is best-effort:
// a send failure is logged but never fails the registration.
func (u *AuthUsecase) Register(ctx context.Context, name, emailAddr, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, name, emailAddr, string(hash))
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	subject := "Welcome to Weather Tracker"
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your account is ready. Add a city and start tracking the weather.</p>", name)
	if err := u.email.Send(ctx, emailAddr, subject, body); err != nil {
		u.logger.ErrorContext(ctx, "send welcome email", "error", err)
	}

	return user, nil
}

// Login verifies the credentials and returns a signed JWT with a 24h expiry.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidPassword
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(u.jwtTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}
