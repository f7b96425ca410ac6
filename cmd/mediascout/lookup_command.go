package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"mediascout/internal/config"
	"mediascout/internal/export"
	"mediascout/internal/logging"
	"mediascout/internal/lookup"
	"mediascout/internal/report"
	"mediascout/internal/scan"
	"mediascout/internal/services"
	"mediascout/internal/tmdb"
	"mediascout/internal/tracker"
)

const exportLockTimeout = 2 * time.Second

type lookupOptions struct {
	movies        bool
	series        bool
	id            string
	search        string
	json          bool
	debug         bool
	transliterate bool
	concurrency   int
}

func (o lookupOptions) kind() (tmdb.Kind, error) {
	switch {
	case o.movies && o.series:
		return "", services.Input(services.ErrValidation, "Please specify only one of --movies or --series.")
	case o.movies:
		return tmdb.KindMovie, nil
	case o.series:
		return tmdb.KindTV, nil
	default:
		return "", nil
	}
}

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var opts lookupOptions

	cmd := &cobra.Command{
		Use:   "lookup [name...]",
		Short: "Resolve a title on TMDb and query every configured tracker",
		Example: `  mediascout lookup --movies The Matrix
  mediascout lookup --series --id 1399 --search "2160p^remux"
  mediascout lookup -m Amelie --transliterate --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("concurrency") && opts.concurrency < 1 {
				return services.Input(services.ErrValidation, "--concurrency must be at least 1")
			}
			return runLookup(cmd, ctx, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.movies, "movies", "m", false, "Search for movies")
	flags.BoolVarP(&opts.series, "series", "s", false, "Search for TV series")
	flags.StringVar(&opts.id, "id", "", "TMDb ID to look up directly")
	flags.StringVar(&opts.search, "search", "", "Narrow tracker results; separate terms with ^")
	flags.BoolVar(&opts.json, "json", false, "Export raw tracker responses as JSON")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&opts.transliterate, "transliterate", false, "Fold accented search terms to ASCII")
	flags.IntVar(&opts.concurrency, "concurrency", 0, "Query up to N trackers at once (overrides search.concurrency)")
	return cmd
}

func runLookup(cmd *cobra.Command, ctx *commandContext, opts lookupOptions, args []string) error {
	kind, err := opts.kind()
	if err != nil {
		return err
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if opts.transliterate {
		cfg.Search.Transliterate = true
	}
	if opts.concurrency > 0 {
		cfg.Search.Concurrency = opts.concurrency
	}

	var console io.Writer
	if ctx.verbose() {
		console = cmd.ErrOrStderr()
	}
	logger, closer, err := logging.NewFromConfig(cfg, opts.debug, console)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closer.Close()

	runCtx := services.WithRunID(cmd.Context(), uuid.NewString())
	logging.WithContext(runCtx, logger).Info("lookup started",
		logging.String(logging.FieldEventType, "lookup_started"),
		logging.String("version", version),
		logging.String("config_path", ctx.configPath),
		logging.Int("trackers", len(cfg.Trackers)),
	)
	for _, t := range cfg.Disabled {
		logging.WarnWithContext(logging.WithContext(runCtx, logger), "tracker disabled", "tracker_disabled",
			logging.String(logging.FieldTracker, t.Name),
			logging.String(logging.FieldErrorHint, "set "+config.APIKeyEnv(t.Code)+" to enable it"),
			logging.String(logging.FieldImpact, "tracker skipped for this run"),
		)
	}

	printer := report.New(cmd.OutOrStdout())

	tmdbClient, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		return fmt.Errorf("init tmdb client: %w", err)
	}
	chooser := newPromptChooser(cmd.InOrStdin(), cmd.OutOrStdout(), printer, logger)
	resolution, err := lookup.NewResolver(tmdbClient, chooser, logger).Resolve(runCtx, lookup.Request{
		Kind: kind,
		ID:   opts.id,
		Name: args,
	})
	if err != nil {
		if errors.Is(err, lookup.ErrNoSelection) {
			printer.Notice(lookup.SpellingHints...)
		}
		return err
	}
	details := resolution.Details
	if resolution.AutoSelected {
		printer.AutoSelected(details.DisplayTitle())
	}
	printer.Details(details)

	media := tracker.Media{TMDbID: details.ID, Title: details.DisplayTitle(), Kind: string(kind)}
	trackerClient := tracker.New(
		tracker.WithTimeout(cfg.RequestTimeout()),
		tracker.WithLogger(logger),
		tracker.WithFilterOptions(tracker.FilterOptions{Transliterate: cfg.Search.Transliterate}),
		tracker.WithUserAgent("mediascout/"+version),
	)
	runnerOpts := []scan.Option{
		scan.WithLogger(logger),
		scan.WithDelay(cfg.Delay()),
		scan.WithConcurrency(cfg.Search.Concurrency),
	}
	if opts.json {
		unlock, err := lockExportDir(runCtx, cfg.Paths.ExportDir)
		if err != nil {
			return err
		}
		defer func() { _ = unlock() }()
		runnerOpts = append(runnerOpts, scan.WithExporter(export.NewWriter(afero.NewOsFs(), cfg.Paths.ExportDir)))
	}

	printer.Banner(media.Title, opts.search)
	agg, err := scan.NewRunner(trackerClient, runnerOpts...).Run(runCtx, cfg.Trackers, media, scan.Options{
		Query:  opts.search,
		Export: opts.json,
	})
	printer.Summary(agg)
	return err
}

func lockExportDir(ctx context.Context, dir string) (func() error, error) {
	lockCtx, cancel := context.WithTimeout(ctx, exportLockTimeout)
	defer cancel()
	unlock, err := export.LockDir(lockCtx, dir)
	if errors.Is(err, export.ErrLocked) {
		return nil, fmt.Errorf("export directory %s is in use by another mediascout run", dir)
	}
	return unlock, err
}
