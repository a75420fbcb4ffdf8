package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/reedham/waxwing/internal/adapter"
	"github.com/reedham/waxwing/internal/domain"
	"github.com/reedham/waxwing/internal/session"
)

func newTestStore(t *testing.T, sess *domain.Session) *session.Store {
	t.Helper()
	store, err := session.NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if sess != nil {
		if err := store.Set(sess); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	return store
}

func testSession() *domain.Session {
	return &domain.Session{
		Username:     "dana",
		Email:        "dana@example.com",
		AccessToken:  "stale-token",
		RefreshToken: "refresh-token",
	}
}

func TestTransportAttachesBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]domain.Album{})
	}))
	defer srv.Close()

	store := newTestStore(t, testSession())
	client := NewClient(srv.URL, store, adapter.NullLogger())

	if _, err := client.GetRecentAlbums(context.Background()); err != nil {
		t.Fatalf("GetRecentAlbums: %v", err)
	}
	if gotAuth != "Bearer stale-token" {
		t.Errorf("Authorization = %q, want Bearer stale-token", gotAuth)
	}
}

func TestTransportRefreshAndReplay(t *testing.T) {
	var refreshCalls, dataCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		if r.Header.Get("Authorization") != "Bearer refresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"accessToken": "fresh-token"})
	})
	mux.HandleFunc("/albums/recent", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&dataCalls, 1)
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]domain.Album{{Title: "Lateralus"}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := newTestStore(t, testSession())
	client := NewClient(srv.URL, store, adapter.NullLogger())

	albums, err := client.GetRecentAlbums(context.Background())
	if err != nil {
		t.Fatalf("GetRecentAlbums: %v", err)
	}
	if len(albums) != 1 || albums[0].Title != "Lateralus" {
		t.Errorf("albums = %v", albums)
	}
	if refreshCalls != 1 {
		t.Errorf("refresh called %d times, want 1", refreshCalls)
	}
	if dataCalls != 2 {
		t.Errorf("data endpoint hit %d times, want 2", dataCalls)
	}

	sess, ok := store.Get()
	if !ok || sess.AccessToken != "fresh-token" {
		t.Errorf("stored access token = %q, want fresh-token", sess.AccessToken)
	}
	if sess.RefreshToken != "refresh-token" {
		t.Errorf("refresh token changed to %q", sess.RefreshToken)
	}
}

func TestTransportRefreshRejected(t *testing.T) {
	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/albums/recent", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := newTestStore(t, testSession())
	client := NewClient(srv.URL, store, adapter.NullLogger())

	_, err := client.GetRecentAlbums(context.Background())
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("error = %v, want ErrSessionExpired", err)
	}
	if refreshCalls != 1 {
		t.Errorf("refresh called %d times, want 1", refreshCalls)
	}
}

func TestTransportRefreshThrottled(t *testing.T) {
	var dataCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	mux.HandleFunc("/albums/recent", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&dataCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := newTestStore(t, testSession())
	client := NewClient(srv.URL, store, adapter.NullLogger())

	// The throttled refresh is abandoned; the original 401 surfaces.
	_, err := client.GetRecentAlbums(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
	if dataCalls != 1 {
		t.Errorf("data endpoint hit %d times, want 1 (no replay)", dataCalls)
	}
}

func TestTransportLoginNotRetried(t *testing.T) {
	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := newTestStore(t, testSession())
	client := NewClient(srv.URL, store, adapter.NullLogger())

	_, err := client.Login(context.Background(), Credentials{Email: "dana@example.com", Password: "wrong"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
	if refreshCalls != 0 {
		t.Errorf("refresh called %d times for login, want 0", refreshCalls)
	}
}

func TestTransportLoginNotRetriedBehindPathPrefix(t *testing.T) {
	var refreshCalls, loginCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
	})
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&loginCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	// A stale session exists while the user signs in again with bad
	// credentials; the login 401 must surface without a refresh.
	store := newTestStore(t, testSession())
	client := NewClient(srv.URL+"/api/v1", store, adapter.NullLogger())

	_, err := client.Login(context.Background(), Credentials{Email: "dana@example.com", Password: "wrong"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
	if refreshCalls != 0 {
		t.Errorf("refresh called %d times for a login 401, want 0", refreshCalls)
	}
	if loginCalls != 1 {
		t.Errorf("login hit %d times, want 1 (no replay)", loginCalls)
	}
}

func TestTransportNoSessionNoRefresh(t *testing.T) {
	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
	})
	mux.HandleFunc("/albums/recent", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := newTestStore(t, nil)
	client := NewClient(srv.URL, store, adapter.NullLogger())

	_, err := client.GetRecentAlbums(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
	if refreshCalls != 0 {
		t.Errorf("refresh called %d times without a session, want 0", refreshCalls)
	}
}
