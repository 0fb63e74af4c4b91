// TypeTune backend adapter: top tracks, scoring, report store, lyrics, insight.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tunetype/tunetype/internal/models"
	"github.com/tunetype/tunetype/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBackendURL = "https://typetune-backend.onrender.com"

// BackendService is an HTTP client for the TypeTune backend.
//
// All requests pass through a shared rate limiter so burst resolution runs
// (top tracks, scoring, persist back to back) stay within the backend's
// comfort zone.
type BackendService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewBackendService creates a backend client. A zero rateLimit falls back to
// 5 requests per second.
func NewBackendService(baseURL string, client *http.Client, rateLimit float64) *BackendService {
	if baseURL == "" {
		baseURL = defaultBackendURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if rateLimit <= 0 {
		rateLimit = 5.0
	}

	return &BackendService{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(rateLimit), 1),
	}
}

// doRequest performs a request against the backend and decodes a JSON response.
//
// credential may be empty for endpoints that do not require a bearer token.
func (b *BackendService) doRequest(ctx context.Context, method, path, credential string, body, result any) (int, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reqBody)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("%w: backend status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

// TopTracks retrieves the user's top tracks with artist metadata attached.
func (b *BackendService) TopTracks(ctx context.Context, credential string) ([]models.RawTrack, error) {
	if credential == "" {
		return nil, shared.ErrNotAuthenticated
	}

	var response struct {
		Tracks []models.RawTrack `json:"tracks"`
	}
	if _, err := b.doRequest(ctx, http.MethodGet, "/top-tracks", credential, nil, &response); err != nil {
		return nil, err
	}
	return response.Tracks, nil
}

// Score submits per-track features and returns the computed audio type.
func (b *BackendService) Score(ctx context.Context, features []models.TrackFeature) (*ScoreResult, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("%w: no features to score", shared.ErrInvalidInput)
	}

	payload := struct {
		AudioFeatures []models.TrackFeature `json:"audio_features"`
	}{AudioFeatures: features}

	var result ScoreResult
	if _, err := b.doRequest(ctx, http.MethodPost, "/mbti", "", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SaveResult persists a report and returns the server-issued result id.
func (b *BackendService) SaveResult(ctx context.Context, report *models.Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("%w: nil report", shared.ErrInvalidInput)
	}

	// The store issues its own id; never send a stale one.
	record := *report
	record.ResultID = ""

	var response struct {
		ResultID string `json:"result_id"`
	}
	if _, err := b.doRequest(ctx, http.MethodPost, "/save-result", "", record, &response); err != nil {
		return "", err
	}
	if response.ResultID == "" {
		return "", fmt.Errorf("%w: save accepted but no result id issued", shared.ErrServiceUnavailable)
	}
	return response.ResultID, nil
}

// Result fetches a shared report by its server-issued id.
func (b *BackendService) Result(ctx context.Context, resultID string) (*models.Report, error) {
	if resultID == "" {
		return nil, fmt.Errorf("%w: empty result id", shared.ErrInvalidArgument)
	}

	var report models.Report
	status, err := b.doRequest(ctx, http.MethodGet, "/result/"+resultID, "", nil, &report)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", shared.ErrResultNotFound, resultID)
		}
		return nil, err
	}
	return &report, nil
}

// Lyrics fetches the lyrics payload for a track.
func (b *BackendService) Lyrics(ctx context.Context, credential, trackID string) (*models.Lyrics, error) {
	if credential == "" {
		return nil, shared.ErrNotAuthenticated
	}

	var lyrics models.Lyrics
	status, err := b.doRequest(ctx, http.MethodGet, "/lyrics/"+trackID, credential, nil, &lyrics)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: track %s", shared.ErrLyricsNotFound, trackID)
		}
		return nil, err
	}
	return &lyrics, nil
}

// ArtistInsight fetches the artist-insight payload for a track's primary artist.
func (b *BackendService) ArtistInsight(ctx context.Context, credential, trackID string) (*models.ArtistInsight, error) {
	if credential == "" {
		return nil, shared.ErrNotAuthenticated
	}

	var insight models.ArtistInsight
	if _, err := b.doRequest(ctx, http.MethodGet, "/artist-insight/"+trackID, credential, nil, &insight); err != nil {
		return nil, err
	}
	return &insight, nil
}

// Ping checks backend health.
func (b *BackendService) Ping(ctx context.Context) error {
	_, err := b.doRequest(ctx, http.MethodGet, "/ping", "", nil, nil)
	return err
}
