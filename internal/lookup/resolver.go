package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"mediascout/internal/logging"
	"mediascout/internal/services"
	"mediascout/internal/tmdb"
)

// ErrNoSelection marks a lookup the operator abandoned at disambiguation.
var ErrNoSelection = fmt.Errorf("%w: no suitable result selected", services.ErrValidation)

// SpellingHints are shown after the operator rejects every candidate.
var SpellingHints = []string{
	"If you're confident the media exists on TMDb, please double-check the title's spelling for accuracy.",
	"TMDb searches across original, translated, and alternative titles, but precise spelling helps achieve the best results.",
	"Alternatively, you can use the --id option if you know the entry exists on TMDb.",
}

// Request describes what the operator asked for.
type Request struct {
	Kind tmdb.Kind
	// ID is the raw --id value; it takes precedence over Name.
	ID   string
	Name []string
}

// Query joins the name words into the TMDb search string.
func (r Request) Query() string {
	return strings.Join(strings.Fields(strings.Join(r.Name, " ")), " ")
}

// Resolution is the resolved TMDb record.
type Resolution struct {
	Details *tmdb.Details
	// Candidates counts search results considered; zero for id lookups.
	Candidates int
	// AutoSelected is set when the search returned exactly one result.
	AutoSelected bool
}

// Resolver resolves lookup requests against TMDb.
type Resolver struct {
	searcher tmdb.Searcher
	chooser  Chooser
	logger   *slog.Logger
}

// NewResolver builds a Resolver. chooser may be nil when only id lookups or
// single-result searches are expected; ambiguous searches then abort.
func NewResolver(searcher tmdb.Searcher, chooser Chooser, logger *slog.Logger) *Resolver {
	return &Resolver{
		searcher: searcher,
		chooser:  chooser,
		logger:   logging.NewComponentLogger(logger, "lookup"),
	}
}

// ParseID validates a TMDb id supplied on the command line. Only a positive
// decimal integer is accepted.
func ParseID(raw string) (int64, error) {
	value := strings.TrimSpace(raw)
	if value == "" || strings.TrimLeft(value, "0123456789") != "" {
		return 0, services.Input(services.ErrValidation, "TMDb ID must be a positive integer.")
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, services.Input(services.ErrValidation, "TMDb ID must be a positive integer.")
	}
	return id, nil
}

// Resolve validates req and returns the TMDb details it identifies.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Resolution, error) {
	if !req.Kind.Valid() {
		return nil, services.Input(services.ErrValidation, "Please specify either --movies or --series to search.")
	}
	logger := logging.WithContext(ctx, r.logger)

	if strings.TrimSpace(req.ID) != "" {
		id, err := ParseID(req.ID)
		if err != nil {
			return nil, err
		}
		logger.Info("fetching tmdb details",
			logging.String("kind", string(req.Kind)),
			logging.Int64(logging.FieldTMDbID, id),
		)
		details, err := r.details(ctx, req.Kind, id)
		if err != nil {
			return nil, err
		}
		return &Resolution{Details: details}, nil
	}

	query := req.Query()
	if query == "" {
		return nil, services.Input(services.ErrValidation, "Please specify either --id or a name to search.")
	}

	logger.Info("searching tmdb",
		logging.String("kind", string(req.Kind)),
		logging.String("query", query),
	)
	resp, err := r.searcher.Search(ctx, req.Kind, query)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Results) == 0 {
		logging.WarnWithContext(logger, "tmdb search returned no results", "tmdb_no_results",
			logging.String("query", query),
			logging.String(logging.FieldImpact, "lookup aborted before querying trackers"),
		)
		return nil, services.Input(services.ErrNotFound, "No results found for '%s'", query)
	}

	results := resp.Results
	resolution := &Resolution{Candidates: len(results)}
	var chosen tmdb.Result
	if len(results) == 1 {
		chosen = results[0]
		resolution.AutoSelected = true
		logger.Info("automatically selected single tmdb result",
			logging.Int64(logging.FieldTMDbID, chosen.ID),
			logging.String("title", chosen.DisplayTitle()),
		)
	} else {
		selection := Aborted()
		if r.chooser != nil {
			selection, err = r.chooser.Choose(ctx, results)
			if err != nil {
				return nil, fmt.Errorf("choose tmdb result: %w", err)
			}
		}
		var ok bool
		chosen, ok = selection.Result()
		if !ok {
			logger.Info("operator rejected every tmdb result",
				logging.String(logging.FieldEventType, "selection_aborted"),
				logging.Int("candidates", len(results)),
			)
			return nil, services.Input(ErrNoSelection, "No suitable result selected.")
		}
		logger.Info("operator selected tmdb result",
			logging.Int64(logging.FieldTMDbID, chosen.ID),
			logging.String("title", chosen.DisplayTitle()),
		)
	}

	details, err := r.details(ctx, req.Kind, chosen.ID)
	if err != nil {
		return nil, err
	}
	resolution.Details = details
	return resolution, nil
}

func (r *Resolver) details(ctx context.Context, kind tmdb.Kind, id int64) (*tmdb.Details, error) {
	details, err := r.searcher.Details(ctx, kind, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return nil, services.Input(services.ErrNotFound, "No %s found on TMDb with ID %d", strings.ToLower(kind.Label()), id)
		}
		return nil, err
	}
	return details, nil
}
