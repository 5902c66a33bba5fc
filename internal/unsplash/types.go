// Package unsplash is the client for the external image-search API.
package unsplash

// ImageURLs carries the size variants the application serves to clients.
type ImageURLs struct {
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

// ImageUser is the photo author attribution.
type ImageUser struct {
	Name string `json:"name"`
}

// Image is the projection of one Unsplash photo the API exposes. Fields are
// passed through from the upstream response without reshaping.
type Image struct {
	ID             string    `json:"id"`
	URLs           ImageURLs `json:"urls"`
	AltDescription string    `json:"alt_description"`
	Description    *string   `json:"description"`
	User           ImageUser `json:"user"`
	Likes          int       `json:"likes"`
	Color          string    `json:"color"`
}

// Result is the upstream search response projection.
type Result struct {
	Total   int     `json:"total"`
	Results []Image `json:"results"`
}
