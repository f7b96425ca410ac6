package tracker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mediascout/internal/config"
	"mediascout/internal/logging"
	"mediascout/internal/services"
	"mediascout/internal/taxonomy"
	"mediascout/internal/textutil"
)

const (
	// QueryParam is the query-string key every tracker expects for the TMDb id.
	QueryParam = "tmdbId"

	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "mediascout/dev"
	maxBodyBytes     = 32 << 20
	excerptBytes     = 100

	reasonMissingCredentials = "Missing API key or URL"
	reasonInvalidResponse    = "Invalid JSON response"
	reasonNoData             = "No matching results"
)

// Client executes tracker queries.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	taxonomy   *taxonomy.Taxonomy
	filter     FilterOptions
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTaxonomy overrides the category table used by Check.
func WithTaxonomy(tax *taxonomy.Taxonomy) Option {
	return func(c *Client) {
		if tax != nil {
			c.taxonomy = tax
		}
	}
}

// WithFilterOptions sets the free-text matching options.
func WithFilterOptions(opts FilterOptions) Option {
	return func(c *Client) {
		c.filter = opts
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if agent = strings.TrimSpace(agent); agent != "" {
			c.userAgent = agent
		}
	}
}

// New creates a tracker client.
func New(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.NewNop(),
		taxonomy:   taxonomy.Default(),
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "tracker")
	return client
}

// Taxonomy returns the category table the client classifies against.
func (c *Client) Taxonomy() *taxonomy.Taxonomy {
	return c.taxonomy
}

// Execute queries one tracker for media. It never returns an error: every
// failure is reported through the outcome status. A non-empty query narrows
// the listings and disables category checking.
func (c *Client) Execute(ctx context.Context, site config.Tracker, media Media, query string) Outcome {
	ctx = services.WithTracker(ctx, site.Code)
	logger := logging.WithContext(ctx, c.logger).With(
		logging.String(logging.FieldTracker, site.Name),
		logging.Int64(logging.FieldTMDbID, media.TMDbID),
	)
	outcome := Outcome{TrackerName: site.Name, TrackerCode: site.Code}

	if strings.TrimSpace(site.APIKey) == "" || strings.TrimSpace(site.URL) == "" {
		logging.WarnWithContext(logger, "skipping tracker; credentials missing", "tracker_missing_credentials",
			logging.String(logging.FieldErrorHint, fmt.Sprintf("set %s_API_KEY and %s_URL or edit the trackers section", site.Code, site.Code)),
			logging.String(logging.FieldImpact, "tracker reported as failed"),
		)
		outcome.Status = StatusMissingCredentials
		outcome.Reason = reasonMissingCredentials
		return outcome
	}

	logger.Info("querying tracker", logging.String(logging.FieldEventType, "tracker_query"))

	start := time.Now()
	body, err := c.fetch(ctx, site, media)
	outcome.Latency = time.Since(start)
	if err != nil {
		logging.ErrorWithContext(logger, "tracker request failed", "tracker_request_failed",
			logging.Error(err),
			logging.Duration("latency", outcome.Latency),
			logging.String(logging.FieldErrorHint, "check the tracker URL, API key, and network reachability"),
		)
		outcome.Status = StatusRequestFailed
		outcome.Reason = err.Error()
		return outcome
	}
	logger.Debug("tracker response received",
		logging.Int("bytes", len(body)),
		logging.Duration("latency", outcome.Latency),
	)

	listings, skipped, err := decodeListings(body)
	if err != nil {
		logging.ErrorWithContext(logger, "tracker returned invalid JSON", "tracker_invalid_response",
			logging.Error(err),
			logging.String("body_excerpt", excerpt(body)),
			logging.String(logging.FieldErrorHint, "confirm the URL points at the torrents filter API"),
		)
		outcome.Status = StatusInvalidResponse
		outcome.Reason = reasonInvalidResponse
		return outcome
	}
	for _, skip := range skipped {
		logging.WarnWithContext(logger, "skipping malformed listing", "tracker_listing_malformed",
			logging.Int("index", skip.Index),
			logging.String("reason", skip.Reason),
			logging.String(logging.FieldImpact, "listing excluded from results"),
		)
	}
	outcome.Skipped = skipped
	outcome.Total = len(listings)

	if len(listings) == 0 {
		logger.Info("tracker returned no listings", logging.String(logging.FieldEventType, "tracker_no_data"))
		outcome.Status = StatusNoData
		outcome.Reason = reasonNoData
		return outcome
	}

	if strings.TrimSpace(query) != "" {
		filtered := FilterWith(listings, query, c.filter)
		logger.Info("filtered tracker listings",
			logging.String("query", query),
			logging.Int("matched", len(filtered)),
			logging.Int("total", len(listings)),
		)
		if len(filtered) == 0 {
			outcome.Status = StatusFilteredEmpty
			outcome.Reason = fmt.Sprintf("No results matching '%s'", query)
			return outcome
		}
		outcome.Status = StatusSuccess
		outcome.Listings = filtered
		outcome.Raw = body
		return outcome
	}

	missing, unknown := Check(listings, c.taxonomy)
	if len(unknown) > 0 {
		logging.WarnWithContext(logger, "unknown media types on tracker", "tracker_unknown_types",
			logging.String("types", strings.Join(unknown, ", ")),
			logging.String(logging.FieldImpact, "types ignored for missing-category report"),
		)
	}
	for _, category := range missing {
		logger.Info("media type not found on tracker", logging.String("category", string(category)))
	}
	outcome.Status = StatusSuccess
	outcome.Listings = listings
	outcome.Missing = missing
	outcome.Unknown = unknown
	outcome.Raw = body
	return outcome
}

func (c *Client) fetch(ctx context.Context, site config.Tracker, media Media) ([]byte, error) {
	endpoint, err := url.Parse(strings.TrimSpace(site.URL))
	if err != nil {
		return nil, fmt.Errorf("parse tracker url: %w", err)
	}
	params := endpoint.Query()
	params.Set(QueryParam, strconv.FormatInt(media.TMDbID, 10))
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(site.APIKey))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("tracker returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func excerpt(body []byte) string {
	return textutil.Truncate(string(body), excerptBytes)
}
