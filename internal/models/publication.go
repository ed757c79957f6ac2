package models

// Publication categories.
const (
	CategoryPaper            = "paper"
	CategoryRegulatoryFiling = "regulatory-filing"
	CategoryPresentation     = "presentation"
	CategoryDocumentation    = "documentation"
)

// Video platforms recognised in publication links.
const (
	PlatformYouTube    = "youtube"
	PlatformVimeo      = "vimeo"
	PlatformLivestream = "livestream"
)

// Publication is one entry of the publications collection, stored as
// publications/<id>.json where id is "{year}-{slug}".
type Publication struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Authors       string         `json:"authors,omitempty"`
	Year          int            `json:"year"`
	Category      string         `json:"category"`
	InternalLinks []InternalLink `json:"internalLinks,omitempty"`
	ExternalLinks []ExternalLink `json:"externalLinks,omitempty"`
	VideoLinks    []VideoLink    `json:"videoLinks,omitempty"`
	Venue         string         `json:"venue,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	Contributors  []string       `json:"contributors,omitempty"`
}

// InternalLink points at a file hosted by the site itself.
type InternalLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// ExternalLink points at another site.
type ExternalLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// VideoLink points at a recording on a video platform.
type VideoLink struct {
	Label    string `json:"label"`
	URL      string `json:"url"`
	Platform string `json:"platform"`
}
