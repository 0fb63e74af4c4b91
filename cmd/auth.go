package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tunetype/tunetype/internal/server"
	"github.com/tunetype/tunetype/internal/shared"
	"github.com/urfave/cli/v3"
)

const loginTimeout = 5 * time.Minute

// AuthLogin runs the OAuth2 authorization-code flow against Spotify.
//
// A temporary localhost server receives the callback; the resulting bearer
// token is stored in the local cache for subsequent commands.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify credentials not configured in config.toml", shared.ErrMissingCredentials)
	}
	if r.store == nil {
		return fmt.Errorf("%w: cache database unavailable", shared.ErrServiceUnavailable)
	}

	state := shared.GenerateID()
	authURL := r.spotify.GetAuthURL(state)

	if cmd.Bool("no-browser") {
		r.writePlain("Open this URL to authorize:\n%s\n", authURL)
	} else {
		r.logger.Info("opening browser for authorization")
		if err := shared.OpenBrowser(authURL); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
			r.writePlain("Open this URL to authorize:\n%s\n", authURL)
		}
	}

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	r.logger.Info("waiting for callback", "addr", addr)

	flowCtx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	router := server.NewRouter()
	router.Use(server.RequestLogger(r.logger))
	handler := server.NewCallbackHandler(r.spotify.OAuthConfig(), state)

	token, err := server.Flow(flowCtx, addr, router, handler)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := r.store.SetCredential(token.AccessToken); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	r.logger.Info("authentication successful")
	return r.writePlain("✓ Logged in to Spotify\n")
}

// AuthLogout clears the credential and every cached entry.
//
// In-flight resolution runs are superseded so a late completion cannot
// repopulate the cache after logout.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: cache database unavailable", shared.ErrServiceUnavailable)
	}

	if r.resolver != nil {
		if err := r.resolver.Logout(); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}
	} else if err := r.store.Clear(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	r.logger.Info("logged out, cache cleared")
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus reports who is logged in and whether the backend is reachable.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	credential := r.credential()
	if credential == "" {
		r.writePlain("Authentication: ✗ Not logged in\n")
	} else if r.spotify != nil {
		if user, err := r.spotify.Profile(ctx, credential); err != nil {
			r.writePlain("Authentication: ✗ Stored credential is no longer valid\n")
		} else {
			r.writePlain("Authentication: ✓ Logged in as %s (%s)\n", user.DisplayName, user.ID)
		}
	} else {
		r.writePlain("Authentication: credential stored, Spotify service not configured\n")
	}

	if err := r.backend.Ping(ctx); err != nil {
		r.writePlain("Backend: ✗ unreachable (%v)\n", err)
		return nil
	}
	r.writePlain("Backend: ✓ healthy\n")
	return nil
}
