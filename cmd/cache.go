package main

import (
	"context"
	"fmt"

	"github.com/tunetype/tunetype/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheStatus shows what is currently cached locally.
func (r *Runner) CacheStatus(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: cache database unavailable", shared.ErrServiceUnavailable)
	}

	report, err := r.store.Report()
	if err != nil {
		return fmt.Errorf("failed to read report cache: %w", err)
	}
	if report == nil {
		r.writePlain("Report: none\n")
	} else {
		r.writePlain("Report: %s for %s (result id %s)\n", report.MBTI, report.User, report.ResultID)
	}

	if credential := r.credential(); credential == "" {
		r.writePlain("Credential: none\n")
	} else {
		r.writePlain("Credential: stored\n")
	}

	location, err := r.store.Location()
	if err != nil {
		return fmt.Errorf("failed to read location: %w", err)
	}
	if location == "" {
		r.writePlain("Location: none\n")
	} else {
		r.writePlain("Location: %s\n", location)
	}

	return nil
}

// CacheClear removes the cached report and location but keeps the credential,
// so the next resolution recomputes without forcing a new login.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: cache database unavailable", shared.ErrServiceUnavailable)
	}

	if err := r.store.ClearReport(); err != nil {
		return fmt.Errorf("failed to clear report: %w", err)
	}
	if err := r.store.ClearLocation(); err != nil {
		return fmt.Errorf("failed to clear location: %w", err)
	}

	r.logger.Info("cache cleared")
	return r.writePlain("✓ Cache cleared\n")
}
