package resolver

import (
	"github.com/tunetype/tunetype/internal/models"
	"github.com/tunetype/tunetype/internal/shared"
)

// Features maps raw tracks to the feature vectors submitted to the scoring
// service. Pure transform: missing or zero values pass through untouched and
// an absent genre list becomes an empty sequence, never an error.
func Features(tracks []models.RawTrack) []models.TrackFeature {
	features := make([]models.TrackFeature, 0, len(tracks))
	for _, track := range tracks {
		genres := track.ArtistGenres
		if genres == nil {
			genres = []string{}
		}
		features = append(features, models.TrackFeature{
			Popularity:        track.Popularity,
			DurationMS:        track.DurationMS,
			DurationFormatted: shared.FormatDuration(track.DurationMS),
			ArtistPopularity:  track.ArtistPopularity,
			ArtistGenres:      genres,
		})
	}
	return features
}

// Views formats raw tracks for display in the order received.
func Views(tracks []models.RawTrack) []models.TrackView {
	views := make([]models.TrackView, 0, len(tracks))
	for _, track := range tracks {
		if track.ArtistGenres == nil {
			track.ArtistGenres = []string{}
		}
		views = append(views, models.TrackView{
			RawTrack:          track,
			DurationFormatted: shared.FormatDuration(track.DurationMS),
		})
	}
	return views
}
