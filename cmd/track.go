package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/tunetype/tunetype/internal/formatter"
	"github.com/tunetype/tunetype/internal/models"
	"github.com/tunetype/tunetype/internal/shared"
	"github.com/urfave/cli/v3"
)

// TrackLyrics shows the summarized lyrics for a track, serving from the
// per-track cache unless --refresh is set.
func (r *Runner) TrackLyrics(ctx context.Context, cmd *cli.Command) error {
	trackID := cmd.StringArg("id")
	if trackID == "" {
		return fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}
	if r.store == nil {
		return fmt.Errorf("%w: cache database unavailable", shared.ErrServiceUnavailable)
	}

	var lyrics *models.Lyrics
	if !cmd.Bool("refresh") {
		cached, err := r.store.Lyrics(trackID)
		if err != nil {
			r.logger.Warn("lyrics cache read failed, treating as absent", "error", err)
		} else if cached != nil {
			r.logger.Debug("lyrics served from cache", "track_id", trackID)
			lyrics = cached
		}
	}

	if lyrics == nil {
		credential := r.credential()
		if credential == "" {
			return fmt.Errorf("%w: run 'tunetype auth login' first", shared.ErrNotAuthenticated)
		}

		fetched, err := r.backend.Lyrics(ctx, credential, trackID)
		if err != nil {
			return err
		}
		lyrics = fetched

		if err := r.store.SetLyrics(trackID, lyrics); err != nil {
			r.logger.Warn("failed to cache lyrics", "track_id", trackID, "error", err)
		}
	}

	if lyrics.Track.Title != "" {
		r.writePlain("%s — %s\n", lyrics.Track.Title, lyrics.Track.Artist)
	}
	if lyrics.Summary != "" {
		r.writePlain("\n%s\n", lyrics.Summary)
	}
	if lyrics.Lyrics != "" {
		r.writePlain("\n%s\n", strings.Join(formatter.CleanLyrics(lyrics.Lyrics), "\n"))
	}
	return nil
}

// TrackInsight shows the artist profile for a track's primary artist,
// serving from the per-track cache unless --refresh is set.
func (r *Runner) TrackInsight(ctx context.Context, cmd *cli.Command) error {
	trackID := cmd.StringArg("id")
	if trackID == "" {
		return fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}
	if r.store == nil {
		return fmt.Errorf("%w: cache database unavailable", shared.ErrServiceUnavailable)
	}

	var insight *models.ArtistInsight
	if !cmd.Bool("refresh") {
		cached, err := r.store.Insight(trackID)
		if err != nil {
			r.logger.Warn("insight cache read failed, treating as absent", "error", err)
		} else if cached != nil {
			r.logger.Debug("insight served from cache", "track_id", trackID)
			insight = cached
		}
	}

	if insight == nil {
		credential := r.credential()
		if credential == "" {
			return fmt.Errorf("%w: run 'tunetype auth login' first", shared.ErrNotAuthenticated)
		}

		fetched, err := r.backend.ArtistInsight(ctx, credential, trackID)
		if err != nil {
			return err
		}
		insight = fetched

		if err := r.store.SetInsight(trackID, insight); err != nil {
			r.logger.Warn("failed to cache insight", "track_id", trackID, "error", err)
		}
	}

	r.writePlain("%s\n", insight.ArtistName)
	if len(insight.Genres) > 0 {
		r.writePlain("Genres: %s\n", strings.Join(insight.Genres, ", "))
	}
	r.writePlain("Popularity: %d\n", insight.Popularity)
	if insight.Summary != "" {
		r.writePlain("\n%s\n", insight.Summary)
	}
	if insight.SpotifyURL != "" {
		r.writePlain("\n%s\n", insight.SpotifyURL)
	}
	return nil
}
