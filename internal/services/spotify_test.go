package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tunetype/tunetype/internal/shared"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func staticResponse(status int) *http.Client {
	return &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader(nil))}, nil
	})}
}

func testCredentials() map[string]string {
	return map[string]string{
		"client_id":     "test-client",
		"client_secret": "test-secret",
		"redirect_uri":  "http://localhost:3000/callback",
	}
}

func TestNewSpotifyService(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		service, err := NewSpotifyService(testCredentials())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if service.Name() != "Spotify" {
			t.Errorf("unexpected name %q", service.Name())
		}
	})

	t.Run("missing client id", func(t *testing.T) {
		creds := testCredentials()
		delete(creds, "client_id")
		if _, err := NewSpotifyService(creds); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("missing client secret", func(t *testing.T) {
		creds := testCredentials()
		creds["client_secret"] = ""
		if _, err := NewSpotifyService(creds); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("redirect uri defaults", func(t *testing.T) {
		creds := testCredentials()
		delete(creds, "redirect_uri")
		service, err := NewSpotifyService(creds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := service.OAuthConfig().RedirectURL; got != "http://localhost:3000/callback" {
			t.Errorf("unexpected redirect %q", got)
		}
	})
}

func TestGetAuthURL(t *testing.T) {
	service, err := NewSpotifyService(testCredentials())
	if err != nil {
		t.Fatal(err)
	}

	url := service.GetAuthURL("state-123")
	for _, want := range []string{
		"accounts.spotify.com/authorize",
		"client_id=test-client",
		"state=state-123",
		"user-top-read",
	} {
		if !strings.Contains(url, want) {
			t.Errorf("auth URL missing %q: %s", want, url)
		}
	}
}

func TestProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes the profile", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/me" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer token-1" {
				t.Errorf("unexpected auth header %q", got)
			}
			w.Write([]byte(`{"id": "u1", "display_name": "Ana", "product": "premium"}`))
		}))
		defer server.Close()

		service, err := NewSpotifyService(testCredentials())
		if err != nil {
			t.Fatal(err)
		}
		service.baseURL = server.URL
		service.httpClient = server.Client()

		user, err := service.Profile(ctx, "token-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != "u1" || user.DisplayName != "Ana" {
			t.Errorf("unexpected profile: %+v", user)
		}
	})

	t.Run("401 maps to token expired", func(t *testing.T) {
		service, err := NewSpotifyService(testCredentials())
		if err != nil {
			t.Fatal(err)
		}
		service.httpClient = staticResponse(http.StatusUnauthorized)

		if _, err := service.Profile(ctx, "expired"); !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("empty credential rejected locally", func(t *testing.T) {
		service, err := NewSpotifyService(testCredentials())
		if err != nil {
			t.Fatal(err)
		}
		if _, err := service.Profile(ctx, ""); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})
}

func TestIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("maps profile to identity", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id": "u1", "display_name": "Ana"}`))
		}))
		defer server.Close()

		service, err := NewSpotifyService(testCredentials())
		if err != nil {
			t.Fatal(err)
		}
		service.baseURL = server.URL
		service.httpClient = server.Client()

		identity, err := service.Identity(ctx, "token-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if identity.ID != "u1" || identity.DisplayName != "Ana" {
			t.Errorf("unexpected identity: %+v", identity)
		}
	})

	t.Run("wraps failures as identity unavailable", func(t *testing.T) {
		service, err := NewSpotifyService(testCredentials())
		if err != nil {
			t.Fatal(err)
		}
		service.httpClient = staticResponse(http.StatusInternalServerError)

		if _, err := service.Identity(ctx, "token-1"); !errors.Is(err, shared.ErrIdentityUnavailable) {
			t.Errorf("expected ErrIdentityUnavailable, got %v", err)
		}
	})
}
