package testsupport

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// ImageBaseURL is the IGDB image host used by fake catalog covers.
const ImageBaseURL = "https://images.test/igdb/image/upload"

// Fixture values served by the fake upstreams.
const (
	// Portal2SaveURL is the catalog cover for "Portal 2".
	Portal2SaveURL = ImageBaseURL + "/t_cover_big_2x/abcd1234.png"
	// HadesAppID is the storefront-only title whose library art exists.
	HadesAppID = "1145360"
)

// Upstreams are fake GameDB and Steam servers.
//
// Catalog: bucket "po" lists "Portal 2" (id 72) and "Portal" (id 71); every
// other bucket is 404. Storefront: "Hades" is the only search hit; its
// library artwork exists on the CDN and nothing else does.
type Upstreams struct {
	Catalog    *httptest.Server
	Storefront *httptest.Server
}

// CDNBaseURL returns the asset CDN root served by the storefront fake.
func (u *Upstreams) CDNBaseURL() string {
	return u.Storefront.URL + "/cdn"
}

// HadesLibraryURL is the storefront cover the fake CDN answers for Hades.
func (u *Upstreams) HadesLibraryURL() string {
	return u.CDNBaseURL() + "/" + HadesAppID + "/library_600x900.jpg"
}

// NewUpstreams starts both fake servers and registers cleanup.
func NewUpstreams(t testing.TB) *Upstreams {
	t.Helper()

	catalog := http.NewServeMux()
	catalog.HandleFunc("/buckets/po.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"p001":{"name":"Portal 2"},"p002":{"name":"Portal"}}`))
	})
	catalog.HandleFunc("/games/p001.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":72,"name":"Portal 2","cover":{"url":"//images.igdb.com/igdb/image/upload/t_thumb/abcd1234.jpg"}}`))
	})
	catalog.HandleFunc("/games/p002.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":71,"name":"Portal","cover":{"url":"//images.igdb.com/igdb/image/upload/t_thumb/efgh5678.jpg"}}`))
	})
	catalog.HandleFunc("/", http.NotFound)

	store := http.NewServeMux()
	store.HandleFunc("/api/storesearch/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("term") == "Hades" {
			_, _ = w.Write([]byte(`{"total":1,"items":[{"type":"app","name":"Hades","id":1145360}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"total":0,"items":[]}`))
	})
	store.HandleFunc("/api/appdetails", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appids") == HadesAppID {
			_, _ = w.Write([]byte(`{"1145360":{"success":true,"data":{"type":"game","name":"Hades","steam_appid":1145360,
				"header_image":"https://shared.test/1145360/header.jpg","developers":["Supergiant Games"],
				"genres":[{"id":"1","description":"Action"}],"release_date":{"date":"17 Sep, 2020"}}}}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	})
	store.HandleFunc("/cdn/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/cdn/"+HadesAppID+"/library_600x900.jpg" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	upstreams := &Upstreams{
		Catalog:    httptest.NewServer(catalog),
		Storefront: httptest.NewServer(store),
	}
	t.Cleanup(func() {
		upstreams.Catalog.Close()
		upstreams.Storefront.Close()
	})
	return upstreams
}
