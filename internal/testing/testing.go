// package testing contains shared testing utilities
package testing

import (
	"context"
	"net/http"
	"sync"

	"github.com/tunetype/tunetype/internal/models"
	"github.com/tunetype/tunetype/internal/services"
)

// StubIdentity is a configurable test double for [services.IdentityResolver].
type StubIdentity struct {
	IdentityFn func(ctx context.Context, credential string) (*models.UserIdentity, error)

	mu    sync.Mutex
	calls int
}

func (s *StubIdentity) Identity(ctx context.Context, credential string) (*models.UserIdentity, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.IdentityFn == nil {
		return &models.UserIdentity{ID: "user-1", DisplayName: "Test User"}, nil
	}
	return s.IdentityFn(ctx, credential)
}

func (s *StubIdentity) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// StubTracks is a configurable test double for [services.TopTracksProvider].
type StubTracks struct {
	TopTracksFn func(ctx context.Context, credential string) ([]models.RawTrack, error)

	mu    sync.Mutex
	calls int
}

func (s *StubTracks) TopTracks(ctx context.Context, credential string) ([]models.RawTrack, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.TopTracksFn == nil {
		return []models.RawTrack{}, nil
	}
	return s.TopTracksFn(ctx, credential)
}

func (s *StubTracks) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// StubScoring is a configurable test double for [services.ScoringService].
type StubScoring struct {
	ScoreFn func(ctx context.Context, features []models.TrackFeature) (*services.ScoreResult, error)

	mu    sync.Mutex
	calls int
}

func (s *StubScoring) Score(ctx context.Context, features []models.TrackFeature) (*services.ScoreResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.ScoreFn == nil {
		return &services.ScoreResult{MBTI: "INFP", Summary: "you're a test"}, nil
	}
	return s.ScoreFn(ctx, features)
}

func (s *StubScoring) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// StubStore is a configurable test double for [services.ReportStore].
type StubStore struct {
	ResultFn     func(ctx context.Context, resultID string) (*models.Report, error)
	SaveResultFn func(ctx context.Context, report *models.Report) (string, error)

	mu          sync.Mutex
	resultCalls int
	saveCalls   int
}

func (s *StubStore) Result(ctx context.Context, resultID string) (*models.Report, error) {
	s.mu.Lock()
	s.resultCalls++
	s.mu.Unlock()
	if s.ResultFn == nil {
		return &models.Report{MBTI: "INFP", Summary: "shared test", ResultID: resultID}, nil
	}
	return s.ResultFn(ctx, resultID)
}

func (s *StubStore) SaveResult(ctx context.Context, report *models.Report) (string, error) {
	s.mu.Lock()
	s.saveCalls++
	s.mu.Unlock()
	if s.SaveResultFn == nil {
		return "result-1", nil
	}
	return s.SaveResultFn(ctx, report)
}

func (s *StubStore) ResultCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultCalls
}

func (s *StubStore) SaveCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCalls
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
