// package services contains interfaces for the external collaborators of the resolution flow
package services

import (
	"context"

	"github.com/tunetype/tunetype/internal/models"
)

// IdentityResolver resolves the authenticated user's stable identifier and
// display name from a bearer credential.
type IdentityResolver interface {
	// Identity fetches the current user's profile. The credential is passed
	// per call; it is never stored by the implementation.
	Identity(ctx context.Context, credential string) (*models.UserIdentity, error)
}

// TopTracksProvider fetches raw top-track data for the credential's user.
type TopTracksProvider interface {
	TopTracks(ctx context.Context, credential string) ([]models.RawTrack, error)
}

// ScoreResult is the scoring service's response: a report without track,
// user, or sharing fields.
type ScoreResult struct {
	MBTI      string           `json:"mbti"`
	Summary   string           `json:"summary"`
	Breakdown models.Breakdown `json:"breakdown"`
}

// ScoringService computes an audio-type result from per-track features.
type ScoringService interface {
	Score(ctx context.Context, features []models.TrackFeature) (*ScoreResult, error)
}

// ReportStore persists computed reports under server-issued identifiers and
// returns them on lookup. This is the mechanism behind shareable links.
type ReportStore interface {
	// Result fetches a shared report by id. Returns
	// [shared.ErrResultNotFound] when the id is unknown.
	Result(ctx context.Context, resultID string) (*models.Report, error)

	// SaveResult persists the report and returns the server-issued result id.
	// The report's ResultID field is ignored on save.
	SaveResult(ctx context.Context, report *models.Report) (string, error)
}
