package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/mdeloughry/portify/internal/importer"
	"github.com/mdeloughry/portify/internal/reconcile"
	"github.com/mdeloughry/portify/internal/scrape"
	"github.com/mdeloughry/portify/internal/services"
	"github.com/mdeloughry/portify/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	catalog services.Catalog
	engine  *importer.Engine
	logger  *log.Logger
	output  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Catalog services.Catalog
	Engine  *importer.Engine
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
//
// When no engine is given and a catalog is available, one is assembled from
// the config's import tunables.
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

	if opts.Engine == nil && opts.Catalog != nil {
		opts.Engine = buildEngine(opts.Config, opts.Catalog, opts.Logger, nil)
	}

	return &Runner{
		config:  opts.Config,
		catalog: opts.Catalog,
		engine:  opts.Engine,
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

// buildEngine assembles the import pipeline from config.
func buildEngine(config *shared.Config, catalog services.Catalog, logger *log.Logger, cache importer.MatchCache) *importer.Engine {
	fetcher := scrape.NewFetcher(logger,
		scrape.WithTimeout(time.Duration(config.Import.FetchTimeoutMS)*time.Millisecond),
		scrape.WithUserAgent(config.Import.UserAgent),
		scrape.WithMaxTracks(config.Import.MaxTracks),
	)

	recon := reconcile.New(logger, reconcile.WithConcurrency(config.Import.Concurrency))

	engineOpts := []importer.Option{importer.WithMaxTracks(config.Import.MaxTracks)}
	if cache != nil {
		engineOpts = append(engineOpts, importer.WithMatchCache(cache))
	}

	return importer.New(catalog, fetcher, recon, logger, engineOpts...)
}

// requireEngine guards commands that need a configured catalog.
func (r *Runner) requireEngine() error {
	if r.engine == nil {
		return shared.ErrMissingCredentials
	}
	return nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, importCommand, searchCommand, cacheCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

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
