package steamstore

// AppInfo is a flattened, display-ready view of AppDetails.
type AppInfo struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Type            string         `json:"type"`
	Description     string         `json:"description"`
	Developers      []string       `json:"developers"`
	Publishers      []string       `json:"publishers"`
	ReleaseDate     string         `json:"release_date,omitempty"`
	Price           *PriceOverview `json:"price,omitempty"`
	Categories      []string       `json:"categories"`
	Genres          []string       `json:"genres"`
	Platforms       []string       `json:"platforms"`
	Metacritic      *Metacritic    `json:"metacritic,omitempty"`
	Recommendations int64          `json:"recommendations,omitempty"`
}

// FormatAppInfo flattens details. Slices are never nil so JSON output stays stable.
func FormatAppInfo(details *AppDetails) AppInfo {
	if details == nil {
		return AppInfo{}
	}
	info := AppInfo{
		ID:          details.SteamAppID,
		Name:        details.Name,
		Type:        details.Type,
		Description: details.ShortDescription,
		Developers:  nonNil(details.Developers),
		Publishers:  nonNil(details.Publishers),
		Price:       details.PriceOverview,
		Categories:  make([]string, 0, len(details.Categories)),
		Genres:      make([]string, 0, len(details.Genres)),
		Platforms:   details.Platforms.Names(),
		Metacritic:  details.Metacritic,
	}
	if details.ReleaseDate != nil {
		info.ReleaseDate = details.ReleaseDate.Date
	}
	for _, category := range details.Categories {
		info.Categories = append(info.Categories, category.Description)
	}
	for _, genre := range details.Genres {
		info.Genres = append(info.Genres, genre.Description)
	}
	if details.Recommendations != nil {
		info.Recommendations = details.Recommendations.Total
	}
	return info
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
