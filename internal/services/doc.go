// Package services implements HTTP adapters for the external services the
// client depends on.
//
// [SpotifyService] talks to the Spotify Web API: it owns the OAuth2
// authorization-code configuration used by the login flow and implements
// [IdentityResolver] via GET /me.
//
// [BackendService] talks to the TypeTune backend, which owns all scoring and
// sharing logic server-side:
//
//	GET  /top-tracks             top tracks + artist metadata (bearer)
//	POST /mbti                   {audio_features} -> {mbti, summary, breakdown}
//	POST /save-result            report -> {result_id}
//	GET  /result/{result_id}     shared report lookup
//	GET  /lyrics/{track_id}      lyrics sub-view payload (bearer)
//	GET  /artist-insight/{track_id}  artist insight payload (bearer)
//	GET  /ping                   health check
//
// Adapters map transport failures to the sentinel errors in internal/shared;
// callers never see raw *url.Error values.
package services
