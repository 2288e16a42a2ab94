package steamstore

// SearchItem is one storesearch hit.
type SearchItem struct {
	ID        int64      `json:"id"`
	Type      string     `json:"type"`
	Name      string     `json:"name"`
	TinyImage string     `json:"tiny_image"`
	Metascore string     `json:"metascore"`
	Platforms *Platforms `json:"platforms,omitempty"`
	Price     *Price     `json:"price,omitempty"`
}

type searchResponse struct {
	Total int          `json:"total"`
	Items []SearchItem `json:"items"`
}

// Platforms lists supported operating systems.
type Platforms struct {
	Windows bool `json:"windows"`
	Mac     bool `json:"mac"`
	Linux   bool `json:"linux"`
}

// Names returns the supported platform names in a fixed order.
func (p *Platforms) Names() []string {
	names := make([]string, 0, 3)
	if p == nil {
		return names
	}
	if p.Windows {
		names = append(names, "windows")
	}
	if p.Mac {
		names = append(names, "mac")
	}
	if p.Linux {
		names = append(names, "linux")
	}
	return names
}

// Price is the compact price block of a search hit.
type Price struct {
	Currency string `json:"currency"`
	Initial  int64  `json:"initial"`
	Final    int64  `json:"final"`
}

// PriceOverview is the price block of app details.
type PriceOverview struct {
	Currency         string `json:"currency"`
	Initial          int64  `json:"initial"`
	Final            int64  `json:"final"`
	DiscountPercent  int    `json:"discount_percent"`
	InitialFormatted string `json:"initial_formatted"`
	FinalFormatted   string `json:"final_formatted"`
}

// ReleaseDate describes when an app ships.
type ReleaseDate struct {
	ComingSoon bool   `json:"coming_soon"`
	Date       string `json:"date"`
}

// Metacritic carries the review aggregate when present.
type Metacritic struct {
	Score int    `json:"score"`
	URL   string `json:"url"`
}

// Genre is a storefront genre tag.
type Genre struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Category is a storefront feature category.
type Category struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Recommendations counts user recommendations.
type Recommendations struct {
	Total int64 `json:"total"`
}

// AppDetails is the data block of an appdetails response.
type AppDetails struct {
	SteamAppID       int64            `json:"steam_appid"`
	Type             string           `json:"type"`
	Name             string           `json:"name"`
	ShortDescription string           `json:"short_description"`
	HeaderImage      string           `json:"header_image"`
	CapsuleImage     string           `json:"capsule_image"`
	CapsuleImageV5   string           `json:"capsule_imagev5"`
	Developers       []string         `json:"developers"`
	Publishers       []string         `json:"publishers"`
	ReleaseDate      *ReleaseDate     `json:"release_date,omitempty"`
	Platforms        *Platforms       `json:"platforms,omitempty"`
	Metacritic       *Metacritic      `json:"metacritic,omitempty"`
	Genres           []Genre          `json:"genres"`
	Categories       []Category       `json:"categories"`
	PriceOverview    *PriceOverview   `json:"price_overview,omitempty"`
	Recommendations  *Recommendations `json:"recommendations,omitempty"`
}

// PreviewImage returns the first non-empty of header, capsule and capsule v5.
func (d *AppDetails) PreviewImage() string {
	if d == nil {
		return ""
	}
	for _, candidate := range []string{d.HeaderImage, d.CapsuleImage, d.CapsuleImageV5} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

type appDetailsEnvelope struct {
	Success bool        `json:"success"`
	Data    *AppDetails `json:"data"`
}
