package lookup_test

import (
	"context"
	"errors"
	"testing"

	"mediascout/internal/lookup"
	"mediascout/internal/services"
	"mediascout/internal/tmdb"
)

type fakeSearcher struct {
	results     []tmdb.Result
	searchErr   error
	detailsErr  error
	searches    []string
	detailCalls []int64
}

func (f *fakeSearcher) Search(_ context.Context, _ tmdb.Kind, query string) (*tmdb.Response, error) {
	f.searches = append(f.searches, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &tmdb.Response{Results: f.results}, nil
}

func (f *fakeSearcher) Details(_ context.Context, kind tmdb.Kind, id int64) (*tmdb.Details, error) {
	f.detailCalls = append(f.detailCalls, id)
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	return &tmdb.Details{Result: tmdb.Result{ID: id, Title: "Resolved"}, Kind: kind}, nil
}

func TestParseID(t *testing.T) {
	valid := map[string]int64{"603": 603, " 42 ": 42, "007": 7}
	for raw, want := range valid {
		got, err := lookup.ParseID(raw)
		if err != nil || got != want {
			t.Fatalf("ParseID(%q) = %d, %v; want %d", raw, got, err, want)
		}
	}
	for _, raw := range []string{"", "abc", "-5", "0", "12a", "1.5", "99999999999999999999"} {
		_, err := lookup.ParseID(raw)
		if err == nil {
			t.Fatalf("ParseID(%q) should fail", raw)
		}
		if !services.IsInputError(err) || !errors.Is(err, services.ErrValidation) {
			t.Fatalf("ParseID(%q) returned non-input error %v", raw, err)
		}
		if err.Error() != "TMDb ID must be a positive integer." {
			t.Fatalf("unexpected message %q", err.Error())
		}
	}
}

func TestResolveRequiresKind(t *testing.T) {
	searcher := &fakeSearcher{}
	_, err := lookup.NewResolver(searcher, nil, nil).Resolve(context.Background(), lookup.Request{ID: "603"})
	if !services.IsInputError(err) || err.Error() != "Please specify either --movies or --series to search." {
		t.Fatalf("unexpected error %v", err)
	}
	if len(searcher.detailCalls) != 0 {
		t.Fatal("no tmdb call expected without a kind")
	}
}

func TestResolveRequiresIDOrName(t *testing.T) {
	_, err := lookup.NewResolver(&fakeSearcher{}, nil, nil).Resolve(context.Background(), lookup.Request{Kind: tmdb.KindMovie, Name: []string{" ", ""}})
	if !services.IsInputError(err) || err.Error() != "Please specify either --id or a name to search." {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestResolveByIDSkipsSearch(t *testing.T) {
	searcher := &fakeSearcher{}
	res, err := lookup.NewResolver(searcher, nil, nil).Resolve(context.Background(), lookup.Request{
		Kind: tmdb.KindMovie,
		ID:   "603",
		Name: []string{"ignored"},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Details.ID != 603 || res.Candidates != 0 || len(searcher.searches) != 0 {
		t.Fatalf("unexpected resolution %#v searches=%v", res, searcher.searches)
	}
}

func TestResolveByIDNotFound(t *testing.T) {
	searcher := &fakeSearcher{detailsErr: services.Wrap(services.ErrNotFound, "tmdb", "movie/9", "no such title", nil)}
	_, err := lookup.NewResolver(searcher, nil, nil).Resolve(context.Background(), lookup.Request{Kind: tmdb.KindMovie, ID: "9"})
	if !services.IsInputError(err) || !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found input error, got %v", err)
	}
}

func TestResolveAutoSelectsSingleResult(t *testing.T) {
	searcher := &fakeSearcher{results: []tmdb.Result{{ID: 603, Title: "The Matrix"}}}
	chooser := lookup.ChooserFunc(func(context.Context, []tmdb.Result) (lookup.Selection, error) {
		t.Fatal("chooser must not run for a single result")
		return lookup.Aborted(), nil
	})
	res, err := lookup.NewResolver(searcher, chooser, nil).Resolve(context.Background(), lookup.Request{
		Kind: tmdb.KindMovie,
		Name: []string{"the", " matrix"},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.AutoSelected || res.Details.ID != 603 {
		t.Fatalf("unexpected resolution %#v", res)
	}
	if searcher.searches[0] != "the matrix" {
		t.Fatalf("unexpected query %q", searcher.searches[0])
	}
}

func TestResolveNoResults(t *testing.T) {
	_, err := lookup.NewResolver(&fakeSearcher{}, nil, nil).Resolve(context.Background(), lookup.Request{
		Kind: tmdb.KindTV,
		Name: []string{"zzzz"},
	})
	if !errors.Is(err, services.ErrNotFound) || err.Error() != "No results found for 'zzzz'" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestResolveUsesChooser(t *testing.T) {
	searcher := &fakeSearcher{results: []tmdb.Result{{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}}}
	var offered int
	chooser := lookup.ChooserFunc(func(_ context.Context, results []tmdb.Result) (lookup.Selection, error) {
		offered = len(results)
		return lookup.Selected(results[1]), nil
	})
	res, err := lookup.NewResolver(searcher, chooser, nil).Resolve(context.Background(), lookup.Request{
		Kind: tmdb.KindMovie,
		Name: []string{"title"},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if offered != 2 || res.AutoSelected || res.Candidates != 2 || res.Details.ID != 2 {
		t.Fatalf("unexpected resolution %#v", res)
	}
}

func TestResolveAborted(t *testing.T) {
	searcher := &fakeSearcher{results: []tmdb.Result{{ID: 1}, {ID: 2}}}
	chooser := lookup.ChooserFunc(func(context.Context, []tmdb.Result) (lookup.Selection, error) {
		return lookup.Aborted(), nil
	})
	_, err := lookup.NewResolver(searcher, chooser, nil).Resolve(context.Background(), lookup.Request{
		Kind: tmdb.KindMovie,
		Name: []string{"title"},
	})
	if !errors.Is(err, lookup.ErrNoSelection) || !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected aborted selection, got %v", err)
	}
	if len(searcher.detailCalls) != 0 {
		t.Fatal("details must not be fetched after an abort")
	}
}

func TestResolveChooserError(t *testing.T) {
	searcher := &fakeSearcher{results: []tmdb.Result{{ID: 1}, {ID: 2}}}
	boom := errors.New("stdin closed")
	chooser := lookup.ChooserFunc(func(context.Context, []tmdb.Result) (lookup.Selection, error) {
		return lookup.Selection{}, boom
	})
	_, err := lookup.NewResolver(searcher, chooser, nil).Resolve(context.Background(), lookup.Request{
		Kind: tmdb.KindMovie,
		Name: []string{"title"},
	})
	if !errors.Is(err, boom) || services.IsInputError(err) {
		t.Fatalf("expected chooser error to propagate, got %v", err)
	}
}

func TestSelection(t *testing.T) {
	if !lookup.Aborted().IsAborted() {
		t.Fatal("Aborted should report aborted")
	}
	sel := lookup.Selected(tmdb.Result{ID: 5})
	got, ok := sel.Result()
	if !ok || got.ID != 5 || sel.IsAborted() {
		t.Fatalf("unexpected selection %#v", sel)
	}
}
