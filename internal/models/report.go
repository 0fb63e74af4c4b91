package models

import (
	"fmt"
	"strings"
)

// UserIdentity represents the currently authenticated Spotify user.
//
// Fetched fresh on every resolution run; never cached on its own. It is only
// compared against the identity stamped on a cached [Report].
type UserIdentity struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// RawTrack represents one top-track entry as returned by the backend.
type RawTrack struct {
	TrackName        string   `json:"track_name"`
	TrackID          string   `json:"track_id"`
	Album            string   `json:"album"`
	AlbumImage       string   `json:"album_image"`
	ReleaseDate      string   `json:"release_date"`
	DurationMS       int      `json:"duration_ms"`
	Popularity       int      `json:"popularity"`
	Explicit         bool     `json:"explicit"`
	ArtistNames      []string `json:"artist_names"`
	ArtistIDs        []string `json:"artist_ids"`
	ArtistGenres     []string `json:"artist_genres"`
	ArtistPopularity int      `json:"artist_popularity"`
}

// TrackView is a [RawTrack] with its duration formatted for display.
type TrackView struct {
	RawTrack
	DurationFormatted string `json:"duration_formatted"`
}

// TrackFeature is the per-track feature vector submitted to the scoring service.
type TrackFeature struct {
	Popularity        int      `json:"popularity"`
	DurationMS        int      `json:"duration_ms"`
	DurationFormatted string   `json:"duration_formatted"`
	ArtistPopularity  int      `json:"artist_popularity"`
	ArtistGenres      []string `json:"artist_genres"`
}

// TraitScore holds one dimension of the audio-type logic (e.g. "E vs I").
type TraitScore struct {
	Direction string  `json:"direction"`
	Value     float64 `json:"value"`
	Reason    string  `json:"reason,omitempty"`
}

// Breakdown contains the scalar metrics and per-dimension logic behind a report.
type Breakdown struct {
	AvgTrackPopularity  float64               `json:"avg_track_popularity"`
	AvgDurationMS       float64               `json:"avg_duration_ms"`
	AvgArtistPopularity float64               `json:"avg_artist_popularity"`
	TopGenres           []string              `json:"top_genres"`
	Logic               map[string]TraitScore `json:"mbti_logic"`
}

// Report is the computed audio-type result plus the track data it was derived from.
//
// SpotifyID is the identity the report was computed for; it must match the
// currently authenticated user for the cached report to be valid for personal
// rendering. ResultID is absent until the remote report store has accepted
// the report.
type Report struct {
	MBTI      string      `json:"mbti"`
	Summary   string      `json:"summary"`
	Breakdown Breakdown   `json:"breakdown"`
	Tracks    []TrackView `json:"tracks_used"`
	User      string      `json:"user"`
	SpotifyID string      `json:"spotify_id,omitempty"`
	ResultID  string      `json:"result_id,omitempty"`
}

// Validate checks structural validity of a report.
func (r *Report) Validate() error {
	if len(r.MBTI) != 4 {
		return fmt.Errorf("invalid audio type label: %q", r.MBTI)
	}
	if strings.TrimSpace(r.Summary) == "" {
		return fmt.Errorf("report summary is empty")
	}
	return nil
}

// OwnedBy reports whether the report was computed for the given identity.
func (r *Report) OwnedBy(identity UserIdentity) bool {
	return r.SpotifyID != "" && r.SpotifyID == identity.ID
}

// Lyrics holds the lyrics sub-view payload for a single track.
type Lyrics struct {
	Summary string     `json:"summary"`
	Lyrics  string     `json:"lyrics"`
	Track   TrackLabel `json:"track"`
}

// TrackLabel identifies a track by title and primary artist.
type TrackLabel struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// ArtistInsight holds the artist-insight sub-view payload for a single track.
type ArtistInsight struct {
	ArtistName  string   `json:"artist_name"`
	Image       string   `json:"image,omitempty"`
	Genres      []string `json:"genres"`
	Popularity  int      `json:"popularity"`
	SpotifyURL  string   `json:"spotify_url,omitempty"`
	Summary     string   `json:"summary"`
	SourcesUsed []string `json:"sources_used,omitempty"`
}
