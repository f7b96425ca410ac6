package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mediascout/internal/services"
)

// Kind selects the TMDb collection to query.
type Kind string

const (
	KindMovie Kind = "movie"
	KindTV    Kind = "tv"
)

// Label is the human name of the collection.
func (k Kind) Label() string {
	if k == KindTV {
		return "Series"
	}
	return "Movie"
}

// Valid reports whether k names a supported collection.
func (k Kind) Valid() bool {
	return k == KindMovie || k == KindTV
}

// Result represents a single TMDb search match.
type Result struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
}

// DisplayTitle returns the movie title or series name.
func (r Result) DisplayTitle() string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	return strings.TrimSpace(r.Name)
}

// Date returns the release or first air date.
func (r Result) Date() string {
	if r.ReleaseDate != "" {
		return r.ReleaseDate
	}
	return r.FirstAirDate
}

// Year returns the first four characters of Date, or "" when too short.
func (r Result) Year() string {
	date := strings.TrimSpace(r.Date())
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// Response models the TMDb paginated search response.
type Response struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Genre is a TMDb genre tag.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Details is the movie or series record fetched by id.
type Details struct {
	Result
	Kind           Kind    `json:"-"`
	Genres         []Genre `json:"genres"`
	Runtime        int     `json:"runtime"`
	EpisodeRunTime []int   `json:"episode_run_time"`
	Status         string  `json:"status"`
}

// RuntimeMinutes returns the movie runtime, or the first episode runtime for
// series.
func (d Details) RuntimeMinutes() int {
	if d.Runtime > 0 {
		return d.Runtime
	}
	for _, minutes := range d.EpisodeRunTime {
		if minutes > 0 {
			return minutes
		}
	}
	return 0
}

// GenreNames lists genre names in TMDb order.
func (d Details) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		if name := strings.TrimSpace(g.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Searcher defines the TMDb operations used by lookup.
type Searcher interface {
	Search(ctx context.Context, kind Kind, query string) (*Response, error)
	Details(ctx context.Context, kind Kind, id int64) (*Details, error)
}

// Client provides access to the TMDb API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

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

// New creates a TMDb client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search runs a title search against the movie or TV collection.
func (c *Client) Search(ctx context.Context, kind Kind, query string) (*Response, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unsupported tmdb kind %q", kind)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)

	var payload Response
	if err := c.get(ctx, "search/"+string(kind), params, &payload); err != nil {
		return nil, fmt.Errorf("tmdb %s search: %w", kind, err)
	}
	return &payload, nil
}

// Details fetches one movie or series by TMDb id.
func (c *Client) Details(ctx context.Context, kind Kind, id int64) (*Details, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unsupported tmdb kind %q", kind)
	}
	if id <= 0 {
		return nil, errors.New("tmdb id must be positive")
	}
	var payload Details
	if err := c.get(ctx, string(kind)+"/"+strconv.FormatInt(id, 10), url.Values{}, &payload); err != nil {
		return nil, fmt.Errorf("tmdb %s details: %w", kind, err)
	}
	payload.Kind = kind
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	endpoint, err := url.Parse(c.baseURL + "/" + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return services.Wrap(services.ErrTimeout, "tmdb", path, fmt.Sprintf("request timed out after %v", latency.Round(time.Millisecond)), nil)
		}
		// url.Error text embeds the request URL, api_key included.
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("execute request (latency=%v): %w", latency.Round(time.Millisecond), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return services.Wrap(services.ErrNotFound, "tmdb", path, "no such title", nil)
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("tmdb returned %d (latency=%v)", resp.StatusCode, latency.Round(time.Millisecond))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}
