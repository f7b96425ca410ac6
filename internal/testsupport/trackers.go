package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Release is one listing served by a fake tracker.
type Release struct {
	Name      string
	Type      string
	Size      int64
	Seeders   int64
	Leechers  int64
	Freeleech any
}

// Envelope renders releases in the tracker filter response shape.
func Envelope(t testing.TB, releases ...Release) []byte {
	t.Helper()

	data := make([]map[string]any, 0, len(releases))
	for _, r := range releases {
		attrs := map[string]any{
			"name":     r.Name,
			"size":     r.Size,
			"seeders":  r.Seeders,
			"leechers": r.Leechers,
		}
		if r.Type != "" {
			attrs["type"] = r.Type
		}
		if r.Freeleech != nil {
			attrs["freeleech"] = r.Freeleech
		}
		data = append(data, map[string]any{"type": "torrent", "attributes": attrs})
	}
	body, err := json.Marshal(map[string]any{"data": data})
	if err != nil {
		t.Fatalf("encode envelope: %v", err)
	}
	return body
}

// BearerJSON serves body to requests carrying the expected bearer token and
// a tmdbId parameter, and 401 to everything else.
func BearerJSON(apiKey string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+apiKey || r.URL.Query().Get("tmdbId") == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

// NewServer starts an httptest server routing each path to its handler and
// closes it when the test ends.
func NewServer(t testing.TB, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	for path, handler := range routes {
		mux.HandleFunc(path, handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}
