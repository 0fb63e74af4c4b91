// package cache implements the local report cache: durable, process-local
// storage for the personal report, per-track lyrics/insight entries, the
// stored credential, and the current result location.
package cache

import (
	"github.com/tunetype/tunetype/internal/models"
)

// Store is the cache capability injected into the resolver.
//
// There is exactly one personal-report slot. Per-track slots are independent
// entries keyed by track id and are never cross-invalidated against the
// report slot. Entries have no TTL; staleness is only ever detected through
// identity mismatch or an explicit refresh.
//
// Absent entries read as (nil, nil) / ("", nil), not as errors. Corrupt
// stored payloads also read as absent; the cache never crashes a resolution
// run.
type Store interface {
	// Report reads the personal-report slot.
	Report() (*models.Report, error)
	// SetReport overwrites the personal-report slot wholesale.
	SetReport(report *models.Report) error
	// ClearReport empties the personal-report slot.
	ClearReport() error

	// Lyrics reads the lyrics slot for a track.
	Lyrics(trackID string) (*models.Lyrics, error)
	SetLyrics(trackID string, lyrics *models.Lyrics) error
	ClearLyrics(trackID string) error

	// Insight reads the artist-insight slot for a track.
	Insight(trackID string) (*models.ArtistInsight, error)
	SetInsight(trackID string, insight *models.ArtistInsight) error
	ClearInsight(trackID string) error

	// Credential reads the stored bearer credential ("" when absent).
	Credential() (string, error)
	SetCredential(credential string) error
	ClearCredential() error

	// Location reads the recorded result path (e.g. "/result/abc123").
	Location() (string, error)
	// ReplaceLocation overwrites the recorded result path. Replace, not
	// push: there is no location history.
	ReplaceLocation(path string) error
	ClearLocation() error

	// Clear removes everything: report, track entries, credential, location.
	Clear() error
}
