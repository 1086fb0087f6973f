package client

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore()
	if store.AccessToken() != "" || store.RefreshToken() != "" {
		t.Fatalf("new store must be empty")
	}

	if err := store.SetTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if store.AccessToken() != "access-1" || store.RefreshToken() != "refresh-1" {
		t.Fatalf("unexpected tokens after set")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if store.AccessToken() != "" || store.RefreshToken() != "" {
		t.Fatalf("store must be empty after clear")
	}
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := NewFileTokenStore(path)

	if store.AccessToken() != "" {
		t.Fatalf("missing file must read as empty")
	}

	if err := store.SetTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A second store over the same path sees the persisted pair.
	reopened := NewFileTokenStore(path)
	if reopened.AccessToken() != "access-1" || reopened.RefreshToken() != "refresh-1" {
		t.Fatalf("persisted tokens not visible to a new store")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("clear must remove the file")
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear must be idempotent: %v", err)
	}
}
