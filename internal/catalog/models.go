package catalog

// Response types for the catalog's REST API.

type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type Artist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres,omitempty"`
	Images []Image  `json:"images,omitempty"`
}

// ArtistRef is the short artist object embedded in album payloads.
type ArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Album struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	AlbumType   string      `json:"album_type"`
	TotalTracks int         `json:"total_tracks"`
	ReleaseDate string      `json:"release_date"`
	Images      []Image     `json:"images,omitempty"`
	Artists     []ArtistRef `json:"artists,omitempty"`
}

// ImageURL returns the first (largest) artist image, if any.
func (a Artist) ImageURL() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[0].URL
}

// CoverURL returns the first (largest) album cover, if any.
func (a Album) CoverURL() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[0].URL
}

type artistPage struct {
	Items []Artist `json:"items"`
	Total int      `json:"total"`
}

type albumPage struct {
	Items []Album `json:"items"`
	Total int     `json:"total"`
}

type searchResponse struct {
	Artists *artistPage `json:"artists"`
	Albums  *albumPage  `json:"albums"`
}
