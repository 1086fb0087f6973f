package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_DecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-1" {
			t.Errorf("unexpected auth header: %q", got)
		}
		_, _ = w.Write([]byte(`{"message":"dishes","data":[{"id":"d1","name":"Pho","price":50000}]}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Get(context.Background(), "/dishes", "token-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.Message != "dishes" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}

	var dishes []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Price int64  `json:"price"`
	}
	if err := resp.Decode(&dishes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(dishes) != 1 || dishes[0].Name != "Pho" || dishes[0].Price != 50000 {
		t.Fatalf("unexpected data: %+v", dishes)
	}
}

func TestClient_EntityError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"validation failed","code":"UNPROCESSABLE_ENTITY","errors":[{"field":"email","message":"email not registered"}]}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Post(context.Background(), "/auth/login", "", map[string]string{})
	var entityErr *EntityError
	if !errors.As(err, &entityErr) {
		t.Fatalf("expected *EntityError, got %T: %v", err, err)
	}
	if len(entityErr.Errors) != 1 || entityErr.Errors[0].Field != "email" {
		t.Fatalf("unexpected field errors: %+v", entityErr.Errors)
	}
}

func TestClient_AuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired","code":"UNAUTHORIZED"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Get(context.Background(), "/orders", "stale")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %T: %v", err, err)
	}
	if authErr.Message != "token expired" {
		t.Fatalf("unexpected message: %q", authErr.Message)
	}
}

func TestClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"dish not found","code":"NOT_FOUND"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Get(context.Background(), "/dishes/missing", "")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if httpErr.Status != http.StatusNotFound || httpErr.Code != "NOT_FOUND" {
		t.Fatalf("unexpected error: %+v", httpErr)
	}
}

func TestClient_HTTPErrorWithEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Get(context.Background(), "/health/ready", "")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if httpErr.Message == "" {
		t.Fatalf("expected fallback message for empty body")
	}
}
