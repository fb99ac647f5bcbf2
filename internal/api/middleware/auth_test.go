package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quickblog/blog-api/internal/auth"
	"github.com/quickblog/blog-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[int64]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newGuardFixture(t *testing.T) (*auth.Codec, *stubUserRepo, echo.MiddlewareFunc) {
	t.Helper()
	codec, err := auth.NewCodec("guard-test-secret", "HS256")
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	repo := &stubUserRepo{users: map[int64]*domain.User{
		1: {ID: 1, Email: "alice@example.com"},
	}}
	return codec, repo, Auth(codec, repo)
}

func invokeGuard(guard echo.MiddlewareFunc, header string) (error, *domain.User) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.User
	handler := guard(func(c echo.Context) error {
		seen, _ = c.Get("user").(*domain.User)
		return c.NoContent(http.StatusOK)
	})
	return handler(c), seen
}

func TestAuth_MissingHeader(t *testing.T) {
	_, _, guard := newGuardFixture(t)

	err, _ := invokeGuard(guard, "")
	if !errors.Is(err, domain.ErrMissingAuthHeader) {
		t.Fatalf("expected ErrMissingAuthHeader, got %v", err)
	}
}

func TestAuth_InvalidHeaderFormat(t *testing.T) {
	codec, _, guard := newGuardFixture(t)

	token, err := codec.Issue(auth.TokenUser{ID: 1, Email: "alice@example.com"}, time.Minute, false)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	for _, header := range []string{
		"Token " + token,
		"Bearer " + token + " extra",
		token,
	} {
		err, _ := invokeGuard(guard, header)
		if !errors.Is(err, domain.ErrInvalidAuthHeader) {
			t.Fatalf("header %q: expected ErrInvalidAuthHeader, got %v", header, err)
		}
	}
}

func TestAuth_MalformedToken(t *testing.T) {
	_, _, guard := newGuardFixture(t)

	err, _ := invokeGuard(guard, "Bearer not.a.jwt")
	if !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	codec, _, guard := newGuardFixture(t)

	token, err := codec.Issue(auth.TokenUser{ID: 1, Email: "alice@example.com"}, -time.Minute, false)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	err, _ = invokeGuard(guard, "Bearer "+token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuth_RefreshTokenRejected(t *testing.T) {
	codec, _, guard := newGuardFixture(t)

	token, err := codec.Issue(auth.TokenUser{ID: 1, Email: "alice@example.com"}, time.Minute, true)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	err, _ = invokeGuard(guard, "Bearer "+token)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuth_DeletedUserLockedOut(t *testing.T) {
	codec, repo, guard := newGuardFixture(t)

	token, err := codec.Issue(auth.TokenUser{ID: 1, Email: "alice@example.com"}, time.Minute, false)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	delete(repo.users, 1)

	err, _ = invokeGuard(guard, "Bearer "+token)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuth_ValidTokenSetsUser(t *testing.T) {
	codec, _, guard := newGuardFixture(t)

	for _, scheme := range []string{"Bearer", "bearer", "BEARER"} {
		token, err := codec.Issue(auth.TokenUser{ID: 1, Email: "alice@example.com"}, time.Minute, false)
		if err != nil {
			t.Fatalf("Issue error: %v", err)
		}

		err, user := invokeGuard(guard, scheme+" "+token)
		if err != nil {
			t.Fatalf("scheme %q: unexpected error: %v", scheme, err)
		}
		if user == nil || user.ID != 1 || user.Email != "alice@example.com" {
			t.Fatalf("scheme %q: unexpected user: %+v", scheme, user)
		}
	}
}
