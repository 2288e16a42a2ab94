package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coverfinder/internal/catalogcache"
	"coverfinder/internal/metrics"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestObserveRequest(t *testing.T) {
	m := metrics.New()
	m.ObserveRequest("/api/covers/best", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest("/api/covers/best", http.StatusOK, 30*time.Millisecond)
	m.ObserveRequest("", http.StatusNotFound, time.Millisecond)

	body := scrape(t, m)
	for _, want := range []string{
		`coverfinder_http_requests_total{route="/api/covers/best",status="200"} 2`,
		`coverfinder_http_requests_total{route="unmatched",status="404"} 1`,
		`coverfinder_http_request_duration_seconds_count{route="/api/covers/best"} 2`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in scrape", want)
		}
	}
}

func TestCacheStatsAreReadOnScrape(t *testing.T) {
	m := metrics.New()
	stats := catalogcache.CacheStats{
		Manifests: catalogcache.Stats{Hits: 4, Misses: 1, Size: 1},
		Games:     catalogcache.Stats{Shared: 2, Evicted: 3, Size: 7},
	}
	m.RegisterCacheStats(func() catalogcache.CacheStats { return stats })

	body := scrape(t, m)
	for _, want := range []string{
		`coverfinder_cache_hits_total{map="manifests"} 4`,
		`coverfinder_cache_misses_total{map="manifests"} 1`,
		`coverfinder_cache_shared_total{map="games"} 2`,
		`coverfinder_cache_evicted_total{map="games"} 3`,
		`coverfinder_cache_entries{map="games"} 7`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in scrape", want)
		}
	}

	stats.Manifests.Hits = 9
	if body := scrape(t, m); !strings.Contains(body, `coverfinder_cache_hits_total{map="manifests"} 9`) {
		t.Fatal("expected scrape to reflect updated stats")
	}
}

func TestNilMetricsIgnoresObservations(t *testing.T) {
	var m *metrics.Metrics
	m.ObserveRequest("/health", http.StatusOK, time.Millisecond)
}
