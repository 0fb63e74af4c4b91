package resolver

import (
	"testing"

	"github.com/tunetype/tunetype/internal/models"
)

func TestFeatures(t *testing.T) {
	t.Run("maps metadata fields", func(t *testing.T) {
		features := Features([]models.RawTrack{
			{
				TrackName:        "Song",
				DurationMS:       187000,
				Popularity:       71,
				ArtistPopularity: 64,
				ArtistGenres:     []string{"indie pop", "bedroom pop"},
			},
		})

		if len(features) != 1 {
			t.Fatalf("expected 1 feature, got %d", len(features))
		}
		f := features[0]
		if f.Popularity != 71 || f.ArtistPopularity != 64 {
			t.Errorf("popularity mapped wrong: %d/%d", f.Popularity, f.ArtistPopularity)
		}
		if f.DurationMS != 187000 || f.DurationFormatted != "3:07" {
			t.Errorf("duration mapped wrong: %d / %q", f.DurationMS, f.DurationFormatted)
		}
		if len(f.ArtistGenres) != 2 {
			t.Errorf("expected 2 genres, got %v", f.ArtistGenres)
		}
	})

	t.Run("nil genres become an empty list", func(t *testing.T) {
		features := Features([]models.RawTrack{{TrackName: "Sparse"}})
		if features[0].ArtistGenres == nil {
			t.Error("genres should be an empty slice, not nil")
		}
		if len(features[0].ArtistGenres) != 0 {
			t.Errorf("expected no genres, got %v", features[0].ArtistGenres)
		}
	})

	t.Run("zero values pass through", func(t *testing.T) {
		features := Features([]models.RawTrack{{TrackName: "Sparse"}})
		f := features[0]
		if f.Popularity != 0 || f.DurationMS != 0 || f.ArtistPopularity != 0 {
			t.Errorf("zero values altered: %+v", f)
		}
		if f.DurationFormatted != "0:00" {
			t.Errorf("expected 0:00, got %q", f.DurationFormatted)
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		if got := Features(nil); len(got) != 0 {
			t.Errorf("expected empty features, got %v", got)
		}
	})
}

func TestViews(t *testing.T) {
	t.Run("preserves order and formats duration", func(t *testing.T) {
		views := Views([]models.RawTrack{
			{TrackName: "First", DurationMS: 61000},
			{TrackName: "Second", DurationMS: 187500},
		})

		if len(views) != 2 {
			t.Fatalf("expected 2 views, got %d", len(views))
		}
		if views[0].TrackName != "First" || views[1].TrackName != "Second" {
			t.Error("track order changed")
		}
		if views[0].DurationFormatted != "1:01" {
			t.Errorf("expected 1:01, got %q", views[0].DurationFormatted)
		}
		if views[1].DurationFormatted != "3:07" {
			t.Errorf("expected 3:07, got %q", views[1].DurationFormatted)
		}
	})

	t.Run("nil genres become an empty list", func(t *testing.T) {
		views := Views([]models.RawTrack{{TrackName: "Sparse"}})
		if views[0].ArtistGenres == nil {
			t.Error("genres should be an empty slice, not nil")
		}
	})
}
