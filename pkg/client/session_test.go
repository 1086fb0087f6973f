package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestSession_LoginStaffStoresPair(t *testing.T) {
	access := mintToken(t, RoleOwner, 1000, 1900)
	refresh := mintToken(t, RoleOwner, 1000, 100000)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "owner@example.com" {
			t.Errorf("unexpected email %q", body["email"])
		}
		_, _ = w.Write([]byte(`{"message":"logged in","data":{"accessToken":"` + access +
			`","refreshToken":"` + refresh +
			`","account":{"id":"a1","name":"Owner","email":"owner@example.com","role":"Owner"}}}`))
	}))
	defer srv.Close()

	store := NewMemoryTokenStore()
	session := NewSession(New(srv.URL), store)

	login, err := session.LoginStaff(context.Background(), "owner@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.Account.Role != RoleOwner {
		t.Fatalf("unexpected role %q", login.Account.Role)
	}
	if store.AccessToken() != access || store.RefreshToken() != refresh {
		t.Fatalf("pair not written to store")
	}
}

func TestSession_DoRetriesOnceAfterUnauthorized(t *testing.T) {
	var refreshCalls, orderCalls int32
	staleAccess := mintToken(t, RoleOwner, 1000, 1900)
	refresh := mintToken(t, RoleOwner, 1000, 100000)
	freshAccess := mintToken(t, RoleOwner, 2000, 2900)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh-token":
			atomic.AddInt32(&refreshCalls, 1)
			_, _ = w.Write([]byte(`{"message":"refreshed","data":{"accessToken":"` + freshAccess +
				`","refreshToken":"` + refresh + `"}}`))
		case "/orders":
			atomic.AddInt32(&orderCalls, 1)
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token != freshAccess {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"token expired","code":"UNAUTHORIZED"}`))
				return
			}
			_, _ = w.Write([]byte(`{"message":"orders","data":[]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	store := NewMemoryTokenStore()
	_ = store.SetTokens(staleAccess, refresh)
	session := NewSession(New(srv.URL), store,
		WithClock(func() time.Time { return time.Unix(1500, 0) }))

	resp, err := session.Get(context.Background(), "/orders")
	if err != nil {
		t.Fatalf("get after retry: %v", err)
	}
	if resp.Message != "orders" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Fatalf("expected one refresh, got %d", got)
	}
	if got := atomic.LoadInt32(&orderCalls); got != 2 {
		t.Fatalf("expected original call plus one retry, got %d", got)
	}
	if store.AccessToken() != freshAccess {
		t.Fatalf("rotated access token not stored")
	}
}

func TestSession_DoWithoutLogin(t *testing.T) {
	session := NewSession(New("http://127.0.0.1:0"), NewMemoryTokenStore())
	_, err := session.Get(context.Background(), "/orders")
	if _, ok := err.(*AuthError); !ok {
		t.Fatalf("expected *AuthError, got %T: %v", err, err)
	}
}

func TestSession_LogoutClearsStoreEvenOnFailure(t *testing.T) {
	refresh := mintToken(t, RoleGuest, 1000, 100000)

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom","code":"INTERNAL"}`))
	}))
	defer srv.Close()

	store := NewMemoryTokenStore()
	_ = store.SetTokens(mintToken(t, RoleGuest, 1000, 1900), refresh)
	session := NewSession(New(srv.URL), store)

	if err := session.Logout(context.Background()); err == nil {
		t.Fatalf("expected revoke failure to surface")
	}
	if gotPath != "/guest/auth/logout" {
		t.Fatalf("guest refresh token must hit the guest logout path, got %q", gotPath)
	}
	if store.AccessToken() != "" || store.RefreshToken() != "" {
		t.Fatalf("store must be cleared regardless of revoke outcome")
	}
}
