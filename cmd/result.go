package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tunetype/tunetype/internal/formatter"
	"github.com/tunetype/tunetype/internal/resolver"
	"github.com/tunetype/tunetype/internal/shared"
	"github.com/urfave/cli/v3"
)

// ResultShow resolves and prints a report.
//
// With no argument it resolves the personal report (cache hit or full
// recompute). With a result id it fetches that shared report read-only.
func (r *Runner) ResultShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireResolver(); err != nil {
		return err
	}

	resultID := cmd.StringArg("id")
	sharedRoute := resultID != ""

	outcome := r.resolver.Resolve(ctx, resultID, sharedRoute, r.credential())
	return r.renderOutcome(outcome, cmd.Bool("json"), cmd.Bool("tracks"))
}

// ResultRefresh discards the cached report and recomputes.
func (r *Runner) ResultRefresh(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireResolver(); err != nil {
		return err
	}

	r.logger.Info("refreshing report")
	outcome := r.resolver.Refresh(ctx, r.credential())
	return r.renderOutcome(outcome, false, false)
}

// ResultShare prints the shareable link for the saved personal report.
func (r *Runner) ResultShare(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: cache database unavailable", shared.ErrServiceUnavailable)
	}

	report, err := r.store.Report()
	if err != nil {
		return fmt.Errorf("failed to read cached report: %w", err)
	}
	if report == nil || report.ResultID == "" {
		return fmt.Errorf("%w: no saved report, run 'tunetype result show' first", shared.ErrResultNotFound)
	}

	return r.writePlain("%s\n", formatter.ShareLink(r.config.Share.BaseURL, report.ResultID))
}

// ResultExport writes the cached personal report to a file.
func (r *Runner) ResultExport(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: cache database unavailable", shared.ErrServiceUnavailable)
	}

	report, err := r.store.Report()
	if err != nil {
		return fmt.Errorf("failed to read cached report: %w", err)
	}
	if report == nil {
		return fmt.Errorf("%w: no cached report, run 'tunetype result show' first", shared.ErrResultNotFound)
	}

	path, err := formatter.WriteExport(report, cmd.String("format"), cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("report exported", "path", path)
	return r.writePlain("✓ Report exported to %s\n", path)
}

// renderOutcome prints a terminal outcome of the resolution state machine.
func (r *Runner) renderOutcome(outcome resolver.Outcome, asJSON, withTracks bool) error {
	switch outcome.State {
	case resolver.StateAuthMissing:
		r.writePlain("Not logged in. Run 'tunetype auth login' to connect your Spotify account.\n")
		return nil

	case resolver.StateUnavailable:
		switch outcome.Reason {
		case resolver.ReasonSharedNotFound:
			return fmt.Errorf("%w: this shared result does not exist or has expired", shared.ErrResultNotFound)
		case resolver.ReasonIdentityUnresolvable:
			return fmt.Errorf("%w: could not verify who is logged in, try 'tunetype auth login'", shared.ErrIdentityUnavailable)
		case resolver.ReasonSuperseded:
			return fmt.Errorf("%w: superseded by a newer run", shared.ErrServiceUnavailable)
		default:
			return fmt.Errorf("%w: try again later", shared.ErrServiceUnavailable)
		}
	}

	report := outcome.Report

	if asJSON {
		return r.writeJSON(report, true)
	}

	title := report.MBTI
	if report.User != "" {
		title = fmt.Sprintf("%s · %s", report.User, report.MBTI)
	}
	r.writePlain("%s\n", title)
	if outcome.Shared && outcome.Owned {
		r.writePlain("(this is your result)\n")
	}

	summary := report.Summary
	if outcome.Shared && !outcome.Owned {
		summary = formatter.SharedVoice(summary)
	}
	r.writePlain("\n%s\n", summary)

	if len(report.Breakdown.Logic) > 0 {
		r.writePlain("\n")
		traits := make([]string, 0, len(report.Breakdown.Logic))
		for trait := range report.Breakdown.Logic {
			traits = append(traits, trait)
		}
		sort.Strings(traits)
		for _, trait := range traits {
			score := report.Breakdown.Logic[trait]
			r.writePlain("  %-8s %s (%.1f)", trait, score.Direction, score.Value)
			if score.Reason != "" {
				r.writePlain("  %s", score.Reason)
			}
			r.writePlain("\n")
		}
	}

	if len(report.Breakdown.TopGenres) > 0 {
		r.writePlain("\nTop genres: %s\n", strings.Join(report.Breakdown.TopGenres, ", "))
	}

	if withTracks && len(report.Tracks) > 0 {
		r.writePlain("\nTracks:\n")
		for i, track := range report.Tracks {
			r.writePlain("  %2d. %s - %s [%s]  (%s)\n",
				i+1, strings.Join(track.ArtistNames, ", "), track.TrackName, track.DurationFormatted, track.TrackID)
		}
	}

	if !outcome.Shared && report.ResultID != "" {
		r.writePlain("\nShare: %s\n", formatter.ShareLink(r.config.Share.BaseURL, report.ResultID))
	}

	return nil
}
