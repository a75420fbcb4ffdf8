package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/reedham/waxwing/internal/adapter"
	"github.com/reedham/waxwing/internal/domain"
)

func TestClientErrorMapping(t *testing.T) {
	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, newTestStore(t, testSession()), adapter.NullLogger())
		_, err := client.GetArtist(context.Background(), "no-such-artist")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("403 maps to ErrForbidden", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, newTestStore(t, testSession()), adapter.NullLogger())
		err := client.DeleteUser(context.Background(), uuid.New())
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("error = %v, want ErrForbidden", err)
		}
	})

	t.Run("409 surfaces the server message verbatim", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"message": "Username already exists."})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, newTestStore(t, nil), adapter.NullLogger())
		_, err := client.Register(context.Background(), RegisterRequest{Username: "dana"})
		if !domain.IsConflict(err) {
			t.Fatalf("error = %v, want conflict", err)
		}
		if err.Error() != "Username already exists." {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("unreachable server maps to ErrServerOffline", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", newTestStore(t, nil), adapter.NullLogger())
		_, err := client.GetRecentAlbums(context.Background())
		if !errors.Is(err, domain.ErrServerOffline) {
			t.Errorf("error = %v, want ErrServerOffline", err)
		}
	})
}

func TestMultipartEncoding(t *testing.T) {
	var (
		gotMeta    []byte
		gotMetaCT  string
		gotImage   []byte
		gotImageFn string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			t.Errorf("Content-Type = %q (%v)", r.Header.Get("Content-Type"), err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		mr := multipart.NewReader(r.Body, params["boundary"])
		for {
			part, err := mr.NextPart()
			if err != nil {
				break
			}
			data, _ := io.ReadAll(part)
			switch part.FormName() {
			case "artist":
				gotMeta = data
				gotMetaCT = part.Header.Get("Content-Type")
			case "image":
				gotImage = data
				gotImageFn = part.FileName()
			}
		}
		json.NewEncoder(w).Encode(domain.Artist{Name: "Tool"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, newTestStore(t, testSession()), adapter.NullLogger())
	_, err := client.CreateArtist(context.Background(), ArtistRequest{
		Name:          "Tool",
		OriginCountry: "United States",
		FormedYear:    1990,
		Image:         &Upload{Filename: "tool.jpg", Content: []byte("jpeg-bytes")},
	})
	if err != nil {
		t.Fatalf("CreateArtist: %v", err)
	}

	if gotMetaCT != "application/json" {
		t.Errorf("metadata part Content-Type = %q, want application/json", gotMetaCT)
	}
	var meta ArtistRequest
	if err := json.Unmarshal(gotMeta, &meta); err != nil {
		t.Fatalf("metadata part is not JSON: %v", err)
	}
	if meta.Name != "Tool" || meta.FormedYear != 1990 {
		t.Errorf("metadata = %+v", meta)
	}
	if string(gotImage) != "jpeg-bytes" {
		t.Errorf("image part = %q", gotImage)
	}
	if gotImageFn != "tool.jpg" {
		t.Errorf("image filename = %q", gotImageFn)
	}
}

func TestUpdateUserMirrorsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.User{Username: "dana2", ImageURL: "http://img/2"})
	}))
	defer srv.Close()

	store := newTestStore(t, testSession())
	client := NewClient(srv.URL, store, adapter.NullLogger())

	if _, err := client.UpdateUser(context.Background(), UpdateUserRequest{Username: "dana2"}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	sess, _ := store.Get()
	if sess.Username != "dana2" {
		t.Errorf("session username = %q, want dana2", sess.Username)
	}
	if sess.ImageURL != "http://img/2" {
		t.Errorf("session image = %q", sess.ImageURL)
	}
	if sess.AccessToken != "stale-token" {
		t.Errorf("access token changed to %q", sess.AccessToken)
	}
}

func TestLoginPersistsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.Session{
			Username:     "dana",
			AccessToken:  "access",
			RefreshToken: "refresh",
		})
	}))
	defer srv.Close()

	store := newTestStore(t, nil)
	client := NewClient(srv.URL, store, adapter.NullLogger())

	sess, err := client.Login(context.Background(), Credentials{Email: "dana@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Username != "dana" {
		t.Errorf("username = %q", sess.Username)
	}

	stored, ok := store.Get()
	if !ok || stored.AccessToken != "access" {
		t.Errorf("stored session = %+v, ok = %v", stored, ok)
	}

	if err := client.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Error("session survived logout")
	}
}
