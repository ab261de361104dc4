package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
	"github.com/cfo-web/finance-gateway/internal/core/ports"
)

// stubStore is an in-memory CredentialStore with switchable failure modes.
type stubStore struct {
	data      map[string]string
	setErr    error
	getErr    error
	deleteErr error

	deletes []string
}

func newStubStore() *stubStore {
	return &stubStore{data: make(map[string]string)}
}

func (s *stubStore) Set(_ context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	return nil
}

func (s *stubStore) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.data[key], nil
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	s.deletes = append(s.deletes, key)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.data, key)
	return nil
}

func testUser() *domain.UserRecord {
	return &domain.UserRecord{ID: "user-1", Email: "user@cfo.dev", Role: domain.RoleUser}
}

func TestTokenStore_SetWritesBothBackends(t *testing.T) {
	primary, boundary := newStubStore(), newStubStore()
	store := NewTokenStore(primary, boundary, zerolog.Nop())

	if err := store.Set(context.Background(), "acc", "ref", testUser()); err != nil {
		t.Fatalf("set: %v", err)
	}

	for name, backend := range map[string]*stubStore{"primary": primary, "boundary": boundary} {
		if backend.data[ports.KeyAccessToken] != "acc" {
			t.Fatalf("%s: access token not written", name)
		}
		if backend.data[ports.KeyRefreshToken] != "ref" {
			t.Fatalf("%s: refresh token not written", name)
		}
		if !strings.Contains(backend.data[ports.KeyUser], "user@cfo.dev") {
			t.Fatalf("%s: user record not written: %q", name, backend.data[ports.KeyUser])
		}
	}
}

func TestTokenStore_SetFailureMapsToStorageUnavailable(t *testing.T) {
	primary := newStubStore()
	primary.setErr = errors.New("redis down")
	store := NewTokenStore(primary, newStubStore(), zerolog.Nop())

	err := store.Set(context.Background(), "acc", "ref", testUser())
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestTokenStore_ClearRemovesEverything(t *testing.T) {
	primary, boundary := newStubStore(), newStubStore()
	store := NewTokenStore(primary, boundary, zerolog.Nop())

	// Clear must succeed regardless of how much state was there before.
	states := []func(){
		func() {},
		func() { primary.data[ports.KeyAccessToken] = "acc" },
		func() { _ = store.Set(context.Background(), "acc", "ref", testUser()) },
	}

	for i, seed := range states {
		primary.data = make(map[string]string)
		boundary.data = make(map[string]string)
		seed()

		if err := store.Clear(context.Background()); err != nil {
			t.Fatalf("state %d: clear: %v", i, err)
		}
		if len(primary.data) != 0 || len(boundary.data) != 0 {
			t.Fatalf("state %d: data left after clear: %v %v", i, primary.data, boundary.data)
		}
	}
}

func TestTokenStore_ClearAttemptsEveryKeyOnFailure(t *testing.T) {
	primary, boundary := newStubStore(), newStubStore()
	primary.deleteErr = errors.New("redis down")
	store := NewTokenStore(primary, boundary, zerolog.Nop())

	boundary.data[ports.KeyAccessToken] = "acc"

	err := store.Clear(context.Background())
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	// All three primary deletions attempted despite each failing, and the
	// boundary store still cleared.
	if len(primary.deletes) != 3 {
		t.Fatalf("expected 3 delete attempts on primary, got %v", primary.deletes)
	}
	if len(boundary.data) != 0 {
		t.Fatalf("boundary not cleared: %v", boundary.data)
	}
}

func TestTokenStore_UnavailableBackendReadsAsAbsent(t *testing.T) {
	primary := newStubStore()
	primary.getErr = errors.New("redis down")
	store := NewTokenStore(primary, newStubStore(), zerolog.Nop())

	if got := store.AccessToken(context.Background()); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
	if got := store.User(context.Background()); got != nil {
		t.Fatalf("expected nil user, got %+v", got)
	}
	if sess := store.Session(context.Background()); sess.IsAuthenticated() {
		t.Fatalf("expected anonymous session")
	}
}

func TestTokenStore_CorruptUserRecordReadsAsAbsent(t *testing.T) {
	primary := newStubStore()
	primary.data[ports.KeyAccessToken] = "acc"
	primary.data[ports.KeyUser] = "{not json"
	store := NewTokenStore(primary, newStubStore(), zerolog.Nop())

	sess := store.Session(context.Background())
	if !sess.IsAuthenticated() {
		t.Fatalf("token present, expected authenticated")
	}
	if sess.User() != nil {
		t.Fatalf("expected nil user for corrupt record")
	}
}

func TestTokenStore_SessionRoundTrip(t *testing.T) {
	store := NewTokenStore(newStubStore(), newStubStore(), zerolog.Nop())

	if err := store.Set(context.Background(), "acc", "ref", testUser()); err != nil {
		t.Fatalf("set: %v", err)
	}

	sess := store.Session(context.Background())
	if sess.AccessToken != "acc" || sess.RefreshToken != "ref" {
		t.Fatalf("unexpected tokens: %+v", sess)
	}
	user := sess.User()
	if user == nil || user.ID != "user-1" || user.Role != domain.RoleUser {
		t.Fatalf("unexpected user: %+v", user)
	}
}
