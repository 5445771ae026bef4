package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

type mockAuthService struct {
	user  *domain.User
	token string
	err   error
}

func (m *mockAuthService) SignUp(ctx context.Context, name, email, password string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

func TestAuthController_SignUp(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &mockAuthService{user: &domain.User{ID: 1, Name: "Ann", Email: "ann@example.com"}}
		ctrl := NewAuthController(testLogger(), svc)

		body := strings.NewReader(`{"name":"Ann","email":"ann@example.com","password":"longenough"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", body)
		w := httptest.NewRecorder()
		ctrl.SignUp(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}
		var resp struct {
			Data struct {
				ID    int64  `json:"id"`
				Email string `json:"email"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.Data.ID != 1 || resp.Data.Email != "ann@example.com" {
			t.Fatalf("unexpected user payload: %+v", resp.Data)
		}
	})

	t.Run("invalid email is rejected before the service", func(t *testing.T) {
		svc := &mockAuthService{err: fmt.Errorf("should not be called")}
		ctrl := NewAuthController(testLogger(), svc)

		body := strings.NewReader(`{"name":"Ann","email":"not-an-email","password":"longenough"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", body)
		w := httptest.NewRecorder()
		ctrl.SignUp(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("short password is a bad request", func(t *testing.T) {
		ctrl := NewAuthController(testLogger(), &mockAuthService{})

		body := strings.NewReader(`{"name":"Ann","email":"ann@example.com","password":"short"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", body)
		w := httptest.NewRecorder()
		ctrl.SignUp(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("duplicate email maps to 409", func(t *testing.T) {
		svc := &mockAuthService{err: fmt.Errorf("%w: email taken", domain.ErrConflict)}
		ctrl := NewAuthController(testLogger(), svc)

		body := strings.NewReader(`{"name":"Ann","email":"ann@example.com","password":"longenough"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", body)
		w := httptest.NewRecorder()
		ctrl.SignUp(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
		}
	})
}

func TestAuthController_Login(t *testing.T) {
	t.Run("returns the issued token", func(t *testing.T) {
		svc := &mockAuthService{token: "token-1"}
		ctrl := NewAuthController(testLogger(), svc)

		body := strings.NewReader(`{"email":"ann@example.com","password":"longenough"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
		w := httptest.NewRecorder()
		ctrl.Login(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}
		var resp struct {
			Data LoginResponse `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.Data.Token != "token-1" {
			t.Fatalf("expected token-1, got %q", resp.Data.Token)
		}
	})

	t.Run("bad credentials map to 400", func(t *testing.T) {
		svc := &mockAuthService{err: fmt.Errorf("%w: invalid credentials", domain.ErrValidation)}
		ctrl := NewAuthController(testLogger(), svc)

		body := strings.NewReader(`{"email":"ann@example.com","password":"wrongwrong"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
		w := httptest.NewRecorder()
		ctrl.Login(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
		var resp helpers.APIResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.Error == nil || resp.Error.Code != helpers.ErrCodeBadRequest {
			t.Fatalf("expected bad_request error code, got %v", resp.Error)
		}
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		ctrl := NewAuthController(testLogger(), &mockAuthService{})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		ctrl.Login(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})
}
