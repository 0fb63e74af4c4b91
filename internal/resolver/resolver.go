package resolver

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/tunetype/tunetype/internal/cache"
	"github.com/tunetype/tunetype/internal/models"
	"github.com/tunetype/tunetype/internal/services"
	"github.com/tunetype/tunetype/internal/shared"
)

// Resolver coordinates the identity resolver, the local cache, the report
// store, and the scoring pipeline into one terminal outcome per run.
type Resolver struct {
	identity services.IdentityResolver
	tracks   services.TopTracksProvider
	scoring  services.ScoringService
	store    services.ReportStore
	cache    cache.Store
	logger   *log.Logger

	gen atomic.Uint64
}

// Opts contains the collaborators for a Resolver.
type Opts struct {
	Identity services.IdentityResolver
	Tracks   services.TopTracksProvider
	Scoring  services.ScoringService
	Store    services.ReportStore
	Cache    cache.Store
	Logger   *log.Logger
}

// New creates a Resolver with the provided collaborators.
func New(opts Opts) *Resolver {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Resolver{
		identity: opts.Identity,
		tracks:   opts.Tracks,
		scoring:  opts.Scoring,
		store:    opts.Store,
		cache:    opts.Cache,
		logger:   opts.Logger,
	}
}

// current reports whether run is still the newest run.
func (r *Resolver) current(run uint64) bool {
	return r.gen.Load() == run
}

// Resolve runs the state machine once.
//
// routeResultID selects the shared path when present. sharedRoute controls
// presentation only. credential may be empty; the shared path works without
// one.
func (r *Resolver) Resolve(ctx context.Context, routeResultID string, sharedRoute bool, credential string) Outcome {
	run := r.gen.Add(1)

	if routeResultID != "" {
		return r.resolveShared(ctx, run, routeResultID, sharedRoute, credential)
	}
	return r.resolvePersonal(ctx, run, credential)
}

// resolveShared fetches a report by id from the remote store. The personal
// cache slot is never read or written on this path.
func (r *Resolver) resolveShared(ctx context.Context, run uint64, resultID string, sharedRoute bool, credential string) Outcome {
	// The identity check is independent of the lookup; run it concurrently.
	// It only determines ownership of the shared report, so its failure is
	// non-fatal and a missing credential skips it entirely.
	idCh := make(chan *models.UserIdentity, 1)
	go func() {
		if credential == "" {
			idCh <- nil
			return
		}
		identity, err := r.identity.Identity(ctx, credential)
		if err != nil {
			r.logger.Debug("identity check failed on shared path", "error", err)
			idCh <- nil
			return
		}
		idCh <- identity
	}()

	report, err := r.store.Result(ctx, resultID)
	identity := <-idCh

	if err != nil {
		// No retry, no fallback to cache.
		if errors.Is(err, shared.ErrResultNotFound) {
			r.logger.Warn("shared result not found", "result_id", resultID)
			return unavailable(ReasonSharedNotFound)
		}
		r.logger.Error("shared result lookup failed", "result_id", resultID, "error", err)
		return unavailable(ReasonServiceUnavailable)
	}

	if !r.current(run) {
		return unavailable(ReasonSuperseded)
	}

	owned := identity != nil && report.OwnedBy(*identity)
	return rendered(report, sharedRoute, owned)
}

// resolvePersonal reads the cache, validates ownership against the freshly
// resolved identity, and recomputes when needed.
func (r *Resolver) resolvePersonal(ctx context.Context, run uint64, credential string) Outcome {
	if credential == "" {
		// An unauthenticated state must never keep a stale personal report
		// around.
		if cached, _ := r.cache.Report(); cached != nil {
			if r.current(run) {
				if err := r.cache.ClearReport(); err != nil {
					r.logger.Warn("failed to clear stale report", "error", err)
				}
			}
		}
		return authMissing()
	}

	identity, err := r.identity.Identity(ctx, credential)
	if err != nil {
		r.logger.Error("identity unresolvable on personal path", "error", err)
		if cached, _ := r.cache.Report(); cached != nil {
			if r.current(run) {
				if err := r.cache.ClearReport(); err != nil {
					r.logger.Warn("failed to clear stale report", "error", err)
				}
			}
		}
		return unavailable(ReasonIdentityUnresolvable)
	}

	cached, err := r.cache.Report()
	if err != nil {
		r.logger.Warn("report cache read failed, treating as absent", "error", err)
		cached = nil
	}

	if cached != nil {
		if cached.OwnedBy(*identity) {
			// Cache-hit fast path: no further network calls.
			if !r.current(run) {
				return unavailable(ReasonSuperseded)
			}
			if cached.ResultID != "" {
				if err := r.cache.ReplaceLocation("/result/" + cached.ResultID); err != nil {
					r.logger.Warn("failed to record result location", "error", err)
				}
			}
			return rendered(cached, false, true)
		}

		// Identity mismatch invalidates the whole entry, not just a field.
		r.logger.Info("cached report belongs to another identity, discarding",
			"cached", cached.SpotifyID, "current", identity.ID)
		if !r.current(run) {
			return unavailable(ReasonSuperseded)
		}
		if err := r.cache.ClearReport(); err != nil {
			r.logger.Warn("failed to discard mismatched report", "error", err)
		}
	}

	return r.recompute(ctx, run, credential, *identity)
}

// recompute runs the sequential pipeline: top tracks -> features -> score ->
// persist -> location -> cache. Any failure short-circuits; nothing partial
// is ever rendered or cached.
func (r *Resolver) recompute(ctx context.Context, run uint64, credential string, identity models.UserIdentity) Outcome {
	raw, err := r.tracks.TopTracks(ctx, credential)
	if err != nil {
		r.logger.Error("top tracks fetch failed", "error", err)
		return unavailable(ReasonServiceUnavailable)
	}

	features := Features(raw)
	if len(features) == 0 {
		r.logger.Error("no usable tracks to score", "user", identity.ID)
		return unavailable(ReasonServiceUnavailable)
	}

	score, err := r.scoring.Score(ctx, features)
	if err != nil {
		r.logger.Error("scoring failed", "error", err)
		return unavailable(ReasonServiceUnavailable)
	}

	report := &models.Report{
		MBTI:      score.MBTI,
		Summary:   score.Summary,
		Breakdown: score.Breakdown,
		Tracks:    Views(raw),
		User:      identity.DisplayName,
		SpotifyID: identity.ID,
	}

	resultID, err := r.store.SaveResult(ctx, report)
	if err != nil {
		// The cache stays untouched and no location rewrite happens.
		r.logger.Error("report persist failed", "error", err)
		return unavailable(ReasonServiceUnavailable)
	}

	if !r.current(run) {
		r.logger.Debug("discarding superseded recompute", "run", run)
		return unavailable(ReasonSuperseded)
	}

	if err := r.cache.ReplaceLocation("/result/" + resultID); err != nil {
		r.logger.Warn("failed to record result location", "error", err)
	}

	report.ResultID = resultID
	if err := r.cache.SetReport(report); err != nil {
		r.logger.Warn("failed to cache report", "error", err)
	}

	r.logger.Info("report computed", "user", identity.ID, "type", report.MBTI, "result_id", resultID)
	return rendered(report, false, true)
}

// Refresh is the user-triggered cache bust: it clears the personal slot and
// the recorded location, then re-enters the state machine with no route id.
func (r *Resolver) Refresh(ctx context.Context, credential string) Outcome {
	if err := r.cache.ClearReport(); err != nil {
		r.logger.Warn("failed to clear report on refresh", "error", err)
	}
	if err := r.cache.ClearLocation(); err != nil {
		r.logger.Warn("failed to clear location on refresh", "error", err)
	}
	return r.Resolve(ctx, "", false, credential)
}

// Logout clears the credential and the whole local cache. Callable from any
// state; it also supersedes any in-flight run so a late completion cannot
// repopulate the cache.
func (r *Resolver) Logout() error {
	r.gen.Add(1)
	if err := r.cache.Clear(); err != nil {
		return err
	}
	return nil
}
