package scan

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"mediascout/internal/config"
	"mediascout/internal/logging"
	"mediascout/internal/tracker"
)

// Executor queries a single tracker.
type Executor interface {
	Execute(ctx context.Context, site config.Tracker, media tracker.Media, query string) tracker.Outcome
}

// Exporter persists a raw tracker response.
type Exporter interface {
	Export(code string, tmdbID int64, raw []byte) (string, error)
}

// Options control a single Run.
type Options struct {
	// Query narrows listings with ^-separated terms and disables category checks.
	Query string
	// Export writes every successful raw response once the scan completes.
	Export bool
}

// Runner executes tracker scans.
type Runner struct {
	executor    Executor
	exporter    Exporter
	logger      *slog.Logger
	delay       time.Duration
	concurrency int
	sleep       SleepFunc
	pacer       *Pacer
}

// Option configures a Runner.
type Option func(*Runner)

// WithExporter sets the exporter used when Options.Export is set.
func WithExporter(exporter Exporter) Option {
	return func(r *Runner) { r.exporter = exporter }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDelay sets the pause between consecutive tracker queries.
func WithDelay(delay time.Duration) Option {
	return func(r *Runner) {
		if delay >= 0 {
			r.delay = delay
		}
	}
}

// WithConcurrency sets how many trackers may be queried at once.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n >= 1 {
			r.concurrency = n
		}
	}
}

// WithSleep replaces the pacing sleep, mainly for tests.
func WithSleep(sleep SleepFunc) Option {
	return func(r *Runner) {
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

// NewRunner builds a Runner around executor.
func NewRunner(executor Executor, opts ...Option) *Runner {
	r := &Runner{
		executor:    executor,
		logger:      logging.NewNop(),
		delay:       time.Second,
		concurrency: 1,
		sleep:       SleepWithContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "scan")
	r.pacer = NewPacer(r.delay, r.sleep)
	return r
}

// Run queries every tracker for media and aggregates the outcomes. Every
// tracker yields exactly one outcome. The only error is context cancellation,
// in which case the partial aggregate is returned alongside it.
func (r *Runner) Run(ctx context.Context, trackers []config.Tracker, media tracker.Media, opts Options) (*Aggregate, error) {
	logger := logging.WithContext(ctx, r.logger)
	logger.Info("searching trackers",
		logging.String(logging.FieldEventType, "scan_started"),
		logging.Int64(logging.FieldTMDbID, media.TMDbID),
		logging.String("title", media.Title),
		logging.Int("trackers", len(trackers)),
		logging.String("query", opts.Query),
		logging.Int("concurrency", r.concurrency),
	)
	start := time.Now()

	var (
		agg *Aggregate
		err error
	)
	if r.concurrency > 1 && len(trackers) > 1 {
		agg, err = r.runConcurrent(ctx, trackers, media, opts.Query)
	} else {
		agg, err = r.runSequential(ctx, trackers, media, opts.Query)
	}
	if err != nil {
		logging.WarnWithContext(logger, "tracker scan interrupted", "scan_cancelled",
			logging.Error(err),
			logging.Int("completed", len(agg.Outcomes)),
			logging.String(logging.FieldImpact, "remaining trackers were not queried"),
		)
		return agg, err
	}

	if opts.Export {
		r.export(logger, agg)
	}

	logger.Info("tracker scan finished",
		logging.String(logging.FieldEventType, "scan_finished"),
		logging.Int("successful", len(agg.Successful)),
		logging.Int("failed", len(agg.Failed)),
		logging.Int("exported", len(agg.Exported)),
		logging.Duration("elapsed", time.Since(start)),
	)
	if agg.NoSuccess() {
		logging.WarnWithContext(logger, "no tracker returned results", "scan_no_success",
			logging.String(logging.FieldErrorHint, "check tracker credentials or broaden the search"),
			logging.String(logging.FieldImpact, "nothing to display or export"),
		)
	}
	return agg, nil
}

func (r *Runner) runSequential(ctx context.Context, trackers []config.Tracker, media tracker.Media, query string) (*Aggregate, error) {
	agg := newAggregate(media, query, len(trackers))
	for idx, site := range trackers {
		if idx > 0 && r.delay > 0 {
			r.logger.Debug("pacing before next tracker",
				logging.String("next", site.Name),
				logging.Duration("delay", r.delay),
			)
			if err := r.sleep(ctx, r.delay); err != nil {
				return agg, err
			}
		}
		if err := ctx.Err(); err != nil {
			return agg, err
		}
		agg.add(r.execute(ctx, site, media, query))
	}
	return agg, nil
}

func (r *Runner) runConcurrent(ctx context.Context, trackers []config.Tracker, media tracker.Media, query string) (*Aggregate, error) {
	slots := make([]tracker.Outcome, len(trackers))
	done := make([]bool, len(trackers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for idx, site := range trackers {
		g.Go(func() error {
			if err := r.pacer.Wait(gctx, site.Code); err != nil {
				return err
			}
			slots[idx] = r.execute(gctx, site, media, query)
			done[idx] = true
			return nil
		})
	}
	err := g.Wait()

	agg := newAggregate(media, query, len(trackers))
	for idx := range slots {
		if done[idx] {
			agg.add(slots[idx])
		}
	}
	if err == nil {
		err = ctx.Err()
	}
	return agg, err
}

// execute isolates one tracker so a panic in its processing becomes a
// failed outcome instead of ending the scan.
func (r *Runner) execute(ctx context.Context, site config.Tracker, media tracker.Media, query string) (outcome tracker.Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.ErrorWithContext(logging.WithContext(ctx, r.logger), "tracker processing panicked", "tracker_panic",
				logging.String(logging.FieldTracker, site.Name),
				logging.String("panic", fmt.Sprint(rec)),
				logging.String("stack", string(debug.Stack())),
			)
			outcome = tracker.Outcome{
				TrackerName: site.Name,
				TrackerCode: site.Code,
				Status:      tracker.StatusRequestFailed,
				Reason:      fmt.Sprintf("internal error: %v", rec),
			}
		}
	}()
	outcome = r.executor.Execute(ctx, site, media, query)
	if outcome.TrackerName == "" {
		outcome.TrackerName = site.Name
	}
	if outcome.TrackerCode == "" {
		outcome.TrackerCode = site.Code
	}
	return outcome
}

func (r *Runner) export(logger *slog.Logger, agg *Aggregate) {
	if r.exporter == nil {
		logging.WarnWithContext(logger, "export requested without an exporter", "export_unavailable",
			logging.String(logging.FieldImpact, "no JSON files written"),
		)
		return
	}
	for _, outcome := range agg.Outcomes {
		if !outcome.Succeeded() || len(outcome.Raw) == 0 {
			continue
		}
		path, err := r.exporter.Export(outcome.TrackerCode, agg.Media.TMDbID, outcome.Raw)
		if err != nil {
			logging.WarnWithContext(logger, "failed to export tracker response", "export_failed",
				logging.String(logging.FieldTracker, outcome.TrackerName),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check that the export directory is writable"),
				logging.String(logging.FieldImpact, "response not saved; scan results unaffected"),
			)
			continue
		}
		logger.Info("exported tracker response",
			logging.String(logging.FieldTracker, outcome.TrackerName),
			logging.String("path", path),
		)
		agg.Exported = append(agg.Exported, path)
	}
}
