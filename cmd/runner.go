package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tunetype/tunetype/internal/cache"
	"github.com/tunetype/tunetype/internal/resolver"
	"github.com/tunetype/tunetype/internal/services"
	"github.com/tunetype/tunetype/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	spotify    *services.SpotifyService
	backend    *services.BackendService
	store      cache.Store
	resolver   *resolver.Resolver
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Spotify    *services.SpotifyService
	Backend    *services.BackendService
	Store      cache.Store
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	r := &Runner{
		config:     opts.Config,
		spotify:    opts.Spotify,
		backend:    opts.Backend,
		store:      opts.Store,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}

	if opts.Spotify != nil && opts.Backend != nil && opts.Store != nil {
		r.resolver = resolver.New(resolver.Opts{
			Identity: opts.Spotify,
			Tracks:   opts.Backend,
			Scoring:  opts.Backend,
			Store:    opts.Backend,
			Cache:    opts.Store,
			Logger:   opts.Logger,
		})
	}

	return r
}

// SetLogger swaps the runner's logger, including the resolver's.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	if r.spotify != nil && r.backend != nil && r.store != nil {
		r.resolver = resolver.New(resolver.Opts{
			Identity: r.spotify,
			Tracks:   r.backend,
			Scoring:  r.backend,
			Store:    r.backend,
			Cache:    r.store,
			Logger:   logger,
		})
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, resultCommand, trackCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireResolver guards actions that need the full pipeline wired.
func (r *Runner) requireResolver() error {
	if r.resolver == nil {
		return fmt.Errorf("%w: Spotify credentials not configured, run 'tunetype setup database' and edit config.toml",
			shared.ErrMissingCredentials)
	}
	return nil
}

// credential reads the stored bearer token; absent reads as empty.
func (r *Runner) credential() string {
	if r.store == nil {
		return ""
	}
	token, err := r.store.Credential()
	if err != nil {
		r.logger.Warn("failed to read stored credential", "error", err)
		return ""
	}
	return token
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
