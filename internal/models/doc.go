// Package models defines the data model for the tunetype client.
//
// The central entity is [Report]: a computed audio-type result together with
// the track data it was derived from. Reports are immutable once produced; a
// new Report replaces a cached one wholesale, never patches it.
//
// Supporting types:
//   - [UserIdentity] : the authenticated Spotify user a report belongs to
//   - [RawTrack] : a top-track as returned by the backend's /top-tracks
//   - [TrackView] : a RawTrack formatted for display (duration as "m:ss")
//   - [TrackFeature] : the per-track feature vector sent to the scoring service
//   - [TraitScore] : one dimension of the audio-type breakdown
package models
