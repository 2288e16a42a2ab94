package steamstore_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"coverfinder/internal/services"
	"coverfinder/internal/steamstore"
)

func newStoreServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/storesearch/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("l") != "english" || q.Get("cc") != "US" {
			t.Errorf("unexpected locale params: %v", q)
		}
		if q.Get("term") == "outage" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"total":4,"items":[
			{"type":"app","name":"Portal 2","id":620,"metascore":"95"},
			{"type":"sub","name":"Portal Bundle","id":7932},
			{"type":"app","name":"Portal","id":400},
			{"type":"app","name":"Portal Reloaded","id":1255980}
		]}`))
	})
	mux.HandleFunc("/api/appdetails", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("appids") {
		case "620":
			_, _ = w.Write([]byte(`{"620":{"success":true,"data":{
				"type":"game","name":"Portal 2","steam_appid":620,
				"short_description":"Sequel","header_image":"https://cdn.test/620/header.jpg",
				"developers":["Valve"],"publishers":["Valve"],
				"release_date":{"coming_soon":false,"date":"18 Apr, 2011"},
				"platforms":{"windows":true,"mac":true,"linux":true},
				"metacritic":{"score":95,"url":"https://mc"},
				"genres":[{"id":"1","description":"Action"}],
				"categories":[{"id":2,"description":"Single-player"}],
				"recommendations":{"total":300000}
			}}}`))
		case "400":
			_, _ = w.Write([]byte(`{"400":{"success":false}}`))
		default:
			_, _ = w.Write([]byte(`not json`))
		}
	})
	mux.HandleFunc("/cdn/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		if r.URL.Path == "/cdn/620/library_600x900.jpg" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newClient(server *httptest.Server) *steamstore.Client {
	return steamstore.New(server.URL,
		steamstore.WithHTTPClient(server.Client()),
		steamstore.WithCDNBaseURL(server.URL+"/cdn"),
		steamstore.WithLocale("english", "US"))
}

func TestSearchKeepsAppsInOrderAndHonoursLimit(t *testing.T) {
	server := newStoreServer(t)
	client := newClient(server)

	items, err := client.Search(context.Background(), "portal", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 2 || items[0].ID != 620 || items[1].ID != 400 {
		t.Fatalf("unexpected items: %+v", items)
	}

	all, err := client.Search(context.Background(), "portal", 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 app hits with default limit, got %d (%v)", len(all), err)
	}
}

func TestSearchOutageYieldsNoHits(t *testing.T) {
	client := newClient(newStoreServer(t))
	items, err := client.Search(context.Background(), "outage", 5)
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty result, got %+v, %v", items, err)
	}
	if items, err := client.Search(context.Background(), "   ", 5); err != nil || items != nil {
		t.Fatalf("expected nil result for blank term, got %+v, %v", items, err)
	}
}

func TestAppDetails(t *testing.T) {
	client := newClient(newStoreServer(t))
	ctx := context.Background()

	details, err := client.AppDetails(ctx, 620)
	if err != nil || details == nil {
		t.Fatalf("AppDetails: %+v, %v", details, err)
	}
	if details.PreviewImage() != "https://cdn.test/620/header.jpg" {
		t.Fatalf("unexpected preview %q", details.PreviewImage())
	}

	missing, err := client.AppDetails(ctx, 400)
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil) for unsuccessful envelope, got %+v, %v", missing, err)
	}

	if _, err := client.AppDetails(ctx, 999); !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	if _, err := client.AppDetails(ctx, 0); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestBestCoverURLPrefersLibraryArtwork(t *testing.T) {
	server := newStoreServer(t)
	client := newClient(server)
	ctx := context.Background()

	got, err := client.BestCoverURL(ctx, 620, "https://cdn.test/620/header.jpg")
	if err != nil {
		t.Fatalf("BestCoverURL: %v", err)
	}
	if want := server.URL + "/cdn/620/library_600x900.jpg"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	got, _ = client.BestCoverURL(ctx, 400, "https://cdn.test/400/header.jpg")
	if got != "https://cdn.test/400/header.jpg" {
		t.Fatalf("expected header fallback, got %q", got)
	}

	got, _ = client.BestCoverURL(ctx, 400, "")
	if want := server.URL + "/cdn/400/header.jpg"; got != want {
		t.Fatalf("expected header template, got %q", got)
	}
}

func TestProbeCancellation(t *testing.T) {
	client := newClient(newStoreServer(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.BestCoverURL(ctx, 620, ""); !errors.Is(err, services.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if _, err := client.Search(ctx, "portal", 1); !errors.Is(err, services.ErrCancelled) {
		t.Fatalf("expected ErrCancelled from search, got %v", err)
	}
}

func TestFormatAppInfo(t *testing.T) {
	client := newClient(newStoreServer(t))
	details, err := client.AppDetails(context.Background(), 620)
	if err != nil {
		t.Fatalf("AppDetails: %v", err)
	}
	info := steamstore.FormatAppInfo(details)
	if info.ID != 620 || info.Name != "Portal 2" || info.ReleaseDate != "18 Apr, 2011" {
		t.Fatalf("unexpected info: %+v", info)
	}
	if len(info.Platforms) != 3 || info.Genres[0] != "Action" || info.Categories[0] != "Single-player" {
		t.Fatalf("unexpected lists: %+v", info)
	}
	if info.Metacritic == nil || info.Metacritic.Score != 95 || info.Recommendations != 300000 {
		t.Fatalf("unexpected aggregates: %+v", info)
	}

	empty := steamstore.FormatAppInfo(&steamstore.AppDetails{SteamAppID: 1})
	if empty.Developers == nil || empty.Genres == nil || empty.Platforms == nil {
		t.Fatalf("expected non-nil slices, got %+v", empty)
	}
}
