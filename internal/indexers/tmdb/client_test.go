package tmdb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"showlink/internal/indexers/tmdb"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := tmdb.New("", "https://example.com", "en-US"); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestFindByExternalID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/find/tt0944947" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("api_key") != "key" {
			t.Fatalf("expected api_key parameter, got %q", r.URL.RawQuery)
		}
		if query.Get("external_source") != tmdb.SourceIMDB {
			t.Fatalf("unexpected external_source %q", query.Get("external_source"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tv_results":[{"id":1399,"name":"Game of Thrones"}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "en-US")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	resp, err := client.FindByExternalID(context.Background(), "tt0944947", tmdb.SourceIMDB)
	if err != nil {
		t.Fatalf("FindByExternalID returned error: %v", err)
	}
	if len(resp.TVResults) != 1 || resp.TVResults[0].ID != 1399 {
		t.Fatalf("unexpected find response: %+v", resp)
	}
}

func TestFindRejectsUnknownSource(t *testing.T) {
	client, err := tmdb.New("key", "https://example.com", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.FindByExternalID(context.Background(), "123", "facebook_id"); err == nil {
		t.Fatal("expected error for unsupported source")
	}
}

func TestFindPropagatesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.FindByExternalID(context.Background(), "123", tmdb.SourceTVDB); err == nil {
		t.Fatal("expected error for 503 response")
	}
}
