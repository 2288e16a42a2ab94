package coverart

// Source identifies which provider produced a cover.
type Source string

const (
	SourceCatalog    Source = "catalog"
	SourceStorefront Source = "storefront"
)

// StoreMetadata carries storefront-only details about a result.
type StoreMetadata struct {
	AppID       int64    `json:"app_id"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Developers  []string `json:"developers"`
	Publishers  []string `json:"publishers"`
	ReleaseDate string   `json:"release_date,omitempty"`
}

// CoverResult is one candidate cover. PreviewURL is a small image suitable for
// listing; SaveURL is the best available image for persisting.
type CoverResult struct {
	Name       string         `json:"name"`
	Key        string         `json:"key"`
	Source     Source         `json:"source"`
	PreviewURL string         `json:"preview_url"`
	SaveURL    string         `json:"save_url"`
	Store      *StoreMetadata `json:"store,omitempty"`
}

// Results groups ranked covers per provider. Both slices are non-nil.
type Results struct {
	Catalog    []CoverResult `json:"catalog"`
	Storefront []CoverResult `json:"storefront"`
}

// Len returns the total number of covers.
func (r Results) Len() int {
	return len(r.Catalog) + len(r.Storefront)
}
