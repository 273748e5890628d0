package handler_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/dkurganov/weather-tracker/internal/domain"
	"github.com/dkurganov/weather-tracker/internal/transport/http/handler"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// fakeAuthUsecase implements the unexported authUsecaser interface via method matching.
type fakeAuthUsecase struct {
	register func(ctx context.Context, name, email, password string) (*domain.User, error)
	login    func(ctx context.Context, email, password string) (string, error)
}

func (f *fakeAuthUsecase) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return f.register(ctx, name, email, password)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	return f.login(ctx, email, password)
}

func newAuthEngine(uc *fakeAuthUsecase) *gin.Engine {
	h := handler.NewAuthHandler(uc, testLogger())

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// ---- Register ----

func TestRegister_MissingFields_Returns400(t *testing.T) {
	w := postJSON(newAuthEngine(&fakeAuthUsecase{}), "/register", `{"name":"Ana"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_Success_Returns200WithoutHash(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, name, email, _ string) (*domain.User, error) {
			return &domain.User{ID: "u1", Name: name, Email: email, PasswordHash: "$2a$10$secret"}, nil
		},
	}
	w := postJSON(newAuthEngine(uc), "/register", `{"name":"Ana","email":"a@x.com","password":"secret"}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if strings.Contains(w.Body.String(), "$2a$") {
		t.Errorf("body %q leaks the password hash", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"a@x.com"`) {
		t.Errorf("body %q missing email", w.Body.String())
	}
}

func TestRegister_DuplicateEmail_Returns409(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	w := postJSON(newAuthEngine(uc), "/register", `{"name":"Ana","email":"a@x.com","password":"secret"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestRegister_StorageError_Returns500(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, errors.New("db down")
		},
	}
	w := postJSON(newAuthEngine(uc), "/register", `{"name":"Ana","email":"a@x.com","password":"secret"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

// ---- Login ----

func TestLogin_UnknownUser_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(context.Context, string, string) (string, error) {
			return "", domain.ErrUserNotFound
		},
	}
	w := postJSON(newAuthEngine(uc), "/login", `{"email":"a@x.com","password":"secret"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "User not found") {
		t.Errorf("body = %q, want user-not-found message", w.Body.String())
	}
}

func TestLogin_WrongPassword_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(context.Context, string, string) (string, error) {
			return "", domain.ErrInvalidPassword
		},
	}
	w := postJSON(newAuthEngine(uc), "/login", `{"email":"a@x.com","password":"wrong"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid password") {
		t.Errorf("body = %q, want invalid-password message", w.Body.String())
	}
}

func TestLogin_Success_ReturnsToken(t *testing.T) {
	const fakeJWT = "header.payload.signature"
	uc := &fakeAuthUsecase{
		login: func(context.Context, string, string) (string, error) {
			return fakeJWT, nil
		},
	}
	w := postJSON(newAuthEngine(uc), "/login", `{"email":"a@x.com","password":"secret"}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), fakeJWT) {
		t.Errorf("body %q does not contain token %q", w.Body.String(), fakeJWT)
	}
}
