package tmdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mediascout/internal/services"
	"mediascout/internal/tmdb"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := tmdb.New("", "https://example.com", "en-US"); err == nil {
		t.Fatal("expected error when api key missing")
	}
	if _, err := tmdb.New("key", " ", "en-US"); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestSearchMovieSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/3/search/movie" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api_key") != "key" || q.Get("query") != "The Matrix" || q.Get("language") != "en-US" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":603,"title":"The Matrix","release_date":"1999-03-30"}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL+"/3/", "en-US")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	resp, err := client.Search(context.Background(), tmdb.KindMovie, "  The Matrix ")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].DisplayTitle() != "The Matrix" || resp.Results[0].Year() != "1999" {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

func TestSearchTVUsesName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/tv" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"results":[{"id":1396,"name":"Breaking Bad","first_air_date":"2008-01-20"}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	resp, err := client.Search(context.Background(), tmdb.KindTV, "breaking bad")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if got := resp.Results[0]; got.DisplayTitle() != "Breaking Bad" || got.Year() != "2008" {
		t.Fatalf("unexpected result %#v", got)
	}
}

func TestSearchHTTPErrorHidesKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status_code":500}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("secret-key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = client.Search(context.Background(), tmdb.KindMovie, "fail")
	if err == nil {
		t.Fatal("expected error when TMDb returns non-200")
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Fatalf("error leaks api key: %v", err)
	}
}

func TestSearchRejectsBadInput(t *testing.T) {
	client, err := tmdb.New("key", "https://example.com", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Search(context.Background(), tmdb.KindMovie, "  "); err == nil {
		t.Fatal("expected error for empty query")
	}
	if _, err := client.Search(context.Background(), tmdb.Kind("person"), "x"); err == nil {
		t.Fatal("expected error for unsupported kind")
	}
	if _, err := client.Details(context.Background(), tmdb.KindMovie, 0); err == nil {
		t.Fatal("expected error for non-positive id")
	}
}

func TestDetailsMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":603,"title":"The Matrix","release_date":"1999-03-30","runtime":136,
			"overview":"A hacker learns the truth.","genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	details, err := client.Details(context.Background(), tmdb.KindMovie, 603)
	if err != nil {
		t.Fatalf("Details returned error: %v", err)
	}
	if details.Kind != tmdb.KindMovie || details.ID != 603 || details.RuntimeMinutes() != 136 {
		t.Fatalf("unexpected details %#v", details)
	}
	if got := strings.Join(details.GenreNames(), ", "); got != "Action, Science Fiction" {
		t.Fatalf("unexpected genres %q", got)
	}
}

func TestDetailsSeriesRuntimeFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1396,"name":"Breaking Bad","episode_run_time":[0,47]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	details, err := client.Details(context.Background(), tmdb.KindTV, 1396)
	if err != nil {
		t.Fatalf("Details returned error: %v", err)
	}
	if details.RuntimeMinutes() != 47 || details.Kind != tmdb.KindTV {
		t.Fatalf("unexpected details %#v", details)
	}
}

func TestDetailsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = client.Details(context.Background(), tmdb.KindMovie, 99999999)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found marker, got %v", err)
	}
}
