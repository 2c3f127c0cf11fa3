package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
	"github.com/afoninsb/api-yamdb/internal/core/service"
)

func mintToken(t *testing.T, secret string) string {
	t.Helper()
	tokens := service.NewTokenIssuer(secret, time.Hour)
	signed, err := tokens.Mint(&domain.User{ID: "u1", Username: "alice", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return signed
}

func TestAuthenticate_ValidToken(t *testing.T) {
	e := echo.New()
	signed := mintToken(t, "secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Authenticate(service.NewTokenIssuer("secret", time.Hour))
	handler := mw(func(c echo.Context) error {
		called = true
		actor, ok := c.Get("actor").(domain.Actor)
		if !ok || !actor.Authenticated {
			t.Fatalf("actor not set: %+v", c.Get("actor"))
		}
		if actor.Username != "alice" || actor.Role != domain.RoleAdmin {
			t.Fatalf("unexpected actor: %+v", actor)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_MissingHeaderIsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Authenticate(service.NewTokenIssuer("secret", time.Hour))
	handler := mw(func(c echo.Context) error {
		called = true
		actor, _ := c.Get("actor").(domain.Actor)
		if actor.Authenticated {
			t.Fatalf("expected anonymous actor, got %+v", actor)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthenticate_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Authenticate(service.NewTokenIssuer("secret", time.Hour))
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	e := echo.New()
	signed := mintToken(t, "other-secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Authenticate(service.NewTokenIssuer("secret", time.Hour))
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("actor", domain.Actor{})

	mw := RequireAuth()
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_PassesAuthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("actor", domain.Actor{ID: "u1", Username: "alice", Role: domain.RoleUser, Authenticated: true})

	called := false
	mw := RequireAuth()
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}
