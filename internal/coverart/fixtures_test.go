package coverart_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"coverfinder/internal/catalogcache"
	"coverfinder/internal/coverart"
	"coverfinder/internal/gamedb"
	"coverfinder/internal/steamstore"
)

// hitCounter records requests per path.
type hitCounter struct {
	mu   sync.Mutex
	hits map[string]int
}

func (c *hitCounter) add(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hits == nil {
		c.hits = make(map[string]int)
	}
	c.hits[path]++
}

func (c *hitCounter) get(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits[path]
}

const imageBase = "https://images.test/igdb/image/upload"

func newCatalogServer(t *testing.T) (*httptest.Server, *hitCounter) {
	t.Helper()
	counter := &hitCounter{}
	mux := http.NewServeMux()
	mux.HandleFunc("/buckets/po.json", func(w http.ResponseWriter, r *http.Request) {
		counter.add(r.URL.Path)
		_, _ = w.Write([]byte(`{"p001":{"name":"Portal 2"},"p002":{"name":"Portal"},"p003":{"name":"Portal 2: Lab"}}`))
	})
	mux.HandleFunc("/buckets/sl.json", func(w http.ResponseWriter, r *http.Request) {
		counter.add(r.URL.Path)
		<-r.Context().Done()
	})
	mux.HandleFunc("/games/p001.json", func(w http.ResponseWriter, r *http.Request) {
		counter.add(r.URL.Path)
		_, _ = w.Write([]byte(`{"name":"Portal 2","cover":{"url":"//images.igdb.com/igdb/image/upload/t_thumb/abcd1234.jpg"}}`))
	})
	mux.HandleFunc("/games/p002.json", func(w http.ResponseWriter, r *http.Request) {
		counter.add(r.URL.Path)
		_, _ = w.Write([]byte(`{"id":71,"name":"Portal","cover":{"url":"//images.igdb.com/igdb/image/upload/t_thumb/efgh5678.jpg"}}`))
	})
	mux.HandleFunc("/games/p003.json", func(w http.ResponseWriter, r *http.Request) {
		counter.add(r.URL.Path)
		_, _ = w.Write([]byte(`{"name":`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		counter.add(r.URL.Path)
		http.NotFound(w, r)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, counter
}

func newStorefrontServer(t *testing.T) (*httptest.Server, *hitCounter) {
	t.Helper()
	counter := &hitCounter{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/storesearch/", func(w http.ResponseWriter, r *http.Request) {
		counter.add(r.URL.Path)
		switch r.URL.Query().Get("term") {
		case "Hades":
			_, _ = w.Write([]byte(`{"total":2,"items":[
				{"type":"app","name":"Hades","id":1145360},
				{"type":"app","name":"Hades II","id":1145350}
			]}`))
		case "Portal 2":
			_, _ = w.Write([]byte(`{"total":1,"items":[{"type":"app","name":"Portal 2","id":620}]}`))
		default:
			_, _ = w.Write([]byte(`{"total":0,"items":[]}`))
		}
	})
	mux.HandleFunc("/api/appdetails", func(w http.ResponseWriter, r *http.Request) {
		counter.add(r.URL.Path)
		switch r.URL.Query().Get("appids") {
		case "1145360":
			_, _ = w.Write([]byte(`{"1145360":{"success":true,"data":{"type":"game","name":"Hades","steam_appid":1145360,
				"header_image":"https://shared.test/1145360/header.jpg","developers":["Supergiant Games"],
				"release_date":{"date":"17 Sep, 2020"}}}}`))
		case "1145350":
			_, _ = w.Write([]byte(`{"1145350":{"success":true,"data":{"type":"game","name":"Hades II","steam_appid":1145350,
				"capsule_image":"https://shared.test/1145350/capsule.jpg"}}}`))
		case "620":
			_, _ = w.Write([]byte(`{"620":{"success":true,"data":{"type":"game","name":"Portal 2","steam_appid":620,
				"header_image":"https://shared.test/620/header.jpg"}}}`))
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	})
	mux.HandleFunc("/cdn/", func(w http.ResponseWriter, r *http.Request) {
		counter.add(r.URL.Path)
		if r.URL.Path == "/cdn/1145360/library_600x900.jpg" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, counter
}

func newCatalogResolver(server *httptest.Server, cache *catalogcache.Cache) *coverart.CatalogResolver {
	client := gamedb.New(server.URL,
		gamedb.WithHTTPClient(server.Client()),
		gamedb.WithImageBaseURL(imageBase))
	return coverart.NewCatalogResolver(client, cache, nil)
}

func newStorefrontResolver(server *httptest.Server, opts coverart.StorefrontOptions) *coverart.StorefrontResolver {
	client := steamstore.New(server.URL,
		steamstore.WithHTTPClient(server.Client()),
		steamstore.WithCDNBaseURL(server.URL+"/cdn"))
	return coverart.NewStorefrontResolver(client, opts)
}

// fakeResolver lets engine tests script provider behaviour.
type fakeResolver struct {
	one  func(ctx context.Context, title string) (string, error)
	many func(ctx context.Context, title string, maxResults int) ([]coverart.CoverResult, error)
}

func (f fakeResolver) ResolveOne(ctx context.Context, title string) (string, error) {
	if f.one == nil {
		return "", nil
	}
	return f.one(ctx, title)
}

func (f fakeResolver) ResolveMany(ctx context.Context, title string, maxResults int) ([]coverart.CoverResult, error) {
	if f.many == nil {
		return nil, nil
	}
	return f.many(ctx, title, maxResults)
}
