package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tunetype/tunetype/internal/models"
	"github.com/tunetype/tunetype/internal/shared"
)

func TestTopTracks(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes the track list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/top-tracks" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer token-1" {
				t.Errorf("unexpected auth header %q", got)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"tracks": []map[string]any{
					{
						"track_name":    "Test Song",
						"track_id":      "t1",
						"duration_ms":   187000,
						"popularity":    71,
						"artist_names":  []string{"Test Artist"},
						"artist_genres": []string{"indie pop"},
					},
				},
			})
		}))
		defer server.Close()

		backend := NewBackendService(server.URL, server.Client(), 100)
		tracks, err := backend.TopTracks(ctx, "token-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tracks) != 1 || tracks[0].TrackID != "t1" {
			t.Errorf("unexpected tracks: %+v", tracks)
		}
		if tracks[0].DurationMS != 187000 {
			t.Errorf("duration decoded wrong: %d", tracks[0].DurationMS)
		}
	})

	t.Run("requires a credential", func(t *testing.T) {
		backend := NewBackendService("http://unused", nil, 100)
		if _, err := backend.TopTracks(ctx, ""); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("maps server errors to service unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		backend := NewBackendService(server.URL, server.Client(), 100)
		if _, err := backend.TopTracks(ctx, "token-1"); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestScore(t *testing.T) {
	ctx := context.Background()

	t.Run("posts features and decodes the result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/mbti" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			var payload struct {
				AudioFeatures []models.TrackFeature `json:"audio_features"`
			}
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Fatalf("bad request body: %v", err)
			}
			if len(payload.AudioFeatures) != 1 {
				t.Errorf("expected 1 feature, got %d", len(payload.AudioFeatures))
			}
			json.NewEncoder(w).Encode(map[string]any{
				"mbti":    "INFP",
				"summary": "you're INFP",
				"breakdown": map[string]any{
					"avg_track_popularity": 71.0,
					"top_genres":           []string{"indie pop"},
					"mbti_logic": map[string]any{
						"E vs I": map[string]any{"direction": "I", "value": 42.5},
					},
				},
			})
		}))
		defer server.Close()

		backend := NewBackendService(server.URL, server.Client(), 100)
		result, err := backend.Score(ctx, []models.TrackFeature{{Popularity: 71, DurationMS: 187000}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.MBTI != "INFP" {
			t.Errorf("unexpected type %q", result.MBTI)
		}
		if result.Breakdown.Logic["E vs I"].Value != 42.5 {
			t.Errorf("breakdown logic decoded wrong: %+v", result.Breakdown.Logic)
		}
	})

	t.Run("rejects an empty feature set", func(t *testing.T) {
		backend := NewBackendService("http://unused", nil, 100)
		if _, err := backend.Score(ctx, nil); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestSaveResult(t *testing.T) {
	ctx := context.Background()

	t.Run("strips the result id from the payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var payload map[string]any
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Fatalf("bad request body: %v", err)
			}
			if id, ok := payload["result_id"]; ok && id != "" {
				t.Errorf("payload carried a result id: %v", id)
			}
			json.NewEncoder(w).Encode(map[string]string{"result_id": "issued-1"})
		}))
		defer server.Close()

		backend := NewBackendService(server.URL, server.Client(), 100)
		report := &models.Report{MBTI: "INFP", Summary: "x", SpotifyID: "u1", ResultID: "stale"}

		id, err := backend.SaveResult(ctx, report)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "issued-1" {
			t.Errorf("expected issued-1, got %q", id)
		}
		if report.ResultID != "stale" {
			t.Error("caller's report must not be mutated")
		}
	})

	t.Run("missing result id in response is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer server.Close()

		backend := NewBackendService(server.URL, server.Client(), 100)
		if _, err := backend.SaveResult(ctx, &models.Report{MBTI: "INFP", Summary: "x"}); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestResult(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches by id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/result/abc123" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(models.Report{MBTI: "ESFJ", Summary: "theirs", ResultID: "abc123"})
		}))
		defer server.Close()

		backend := NewBackendService(server.URL, server.Client(), 100)
		report, err := backend.Result(ctx, "abc123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.MBTI != "ESFJ" {
			t.Errorf("unexpected report: %+v", report)
		}
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		backend := NewBackendService(server.URL, server.Client(), 100)
		if _, err := backend.Result(ctx, "missing"); !errors.Is(err, shared.ErrResultNotFound) {
			t.Errorf("expected ErrResultNotFound, got %v", err)
		}
	})

	t.Run("other failures stay service unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		backend := NewBackendService(server.URL, server.Client(), 100)
		if _, err := backend.Result(ctx, "abc123"); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("empty id rejected locally", func(t *testing.T) {
		backend := NewBackendService("http://unused", nil, 100)
		if _, err := backend.Result(ctx, ""); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestLyricsEndpoint(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes the lyrics payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/lyrics/t1" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(models.Lyrics{
				Summary: "a love song",
				Lyrics:  "la la la",
				Track:   models.TrackLabel{Title: "Test Song", Artist: "Test Artist"},
			})
		}))
		defer server.Close()

		backend := NewBackendService(server.URL, server.Client(), 100)
		lyrics, err := backend.Lyrics(ctx, "token-1", "t1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lyrics.Track.Title != "Test Song" || lyrics.Lyrics != "la la la" {
			t.Errorf("unexpected lyrics: %+v", lyrics)
		}
	})

	t.Run("404 maps to lyrics not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		backend := NewBackendService(server.URL, server.Client(), 100)
		if _, err := backend.Lyrics(ctx, "token-1", "t9"); !errors.Is(err, shared.ErrLyricsNotFound) {
			t.Errorf("expected ErrLyricsNotFound, got %v", err)
		}
	})
}

func TestArtistInsightEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/artist-insight/t1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.ArtistInsight{
			ArtistName: "Test Artist",
			Genres:     []string{"indie pop"},
			Popularity: 64,
			Summary:    "formed in 2009",
		})
	}))
	defer server.Close()

	backend := NewBackendService(server.URL, server.Client(), 100)
	insight, err := backend.ArtistInsight(context.Background(), "token-1", "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if insight.ArtistName != "Test Artist" || insight.Popularity != 64 {
		t.Errorf("unexpected insight: %+v", insight)
	}
}

func TestPing(t *testing.T) {
	t.Run("healthy backend", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		}))
		defer server.Close()

		backend := NewBackendService(server.URL, server.Client(), 100)
		if err := backend.Ping(context.Background()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unreachable backend", func(t *testing.T) {
		backend := NewBackendService("http://127.0.0.1:1", nil, 100)
		if err := backend.Ping(context.Background()); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}
