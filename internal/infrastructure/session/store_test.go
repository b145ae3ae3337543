package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
)

func TestMemoryOnlyStore(t *testing.T) {
	store := New("")

	if _, err := store.Current(); !errors.Is(err, entities.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Error("empty store should have no token")
	}

	if err := store.Save(&entities.Session{Email: "u@11job.site", AccessToken: "at", RefreshToken: "rt"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	token, ok := store.Token()
	if !ok || token != "at" {
		t.Errorf("Token() = %q, %v", token, ok)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.Current(); !errors.Is(err, entities.ErrNotAuthenticated) {
		t.Errorf("session survived Clear: %v", err)
	}
}

func TestFileBackedStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	store := New(path)
	sess := &entities.Session{Email: "u@11job.site", AccessToken: "at", RefreshToken: "rt"}
	if err := store.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// A second store on the same path sees the login.
	reloaded := New(path)
	got, err := reloaded.Current()
	if err != nil {
		t.Fatalf("Current failed on reload: %v", err)
	}
	if got.Email != sess.Email || got.AccessToken != sess.AccessToken {
		t.Errorf("reloaded session differs: %+v", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session file survived Clear: %v", err)
	}
}

func TestCorruptSessionFileIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := New(path)
	if _, err := store.Current(); !errors.Is(err, entities.ErrNotAuthenticated) {
		t.Errorf("corrupt file should read as no session, got %v", err)
	}
}

func TestSavedSessionIsCopied(t *testing.T) {
	store := New("")
	sess := &entities.Session{Email: "u@11job.site", AccessToken: "at"}
	if err := store.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	sess.AccessToken = "mutated"
	if token, _ := store.Token(); token != "at" {
		t.Errorf("store shares memory with the caller: %q", token)
	}
}
