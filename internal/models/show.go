package models

// PlaceholderImageURL is shown for shows that have no medium-resolution image.
const PlaceholderImageURL = "https://store-images.s-microsoft.com/image/apps.65316.13510798887490672.6e1ebb25-96c8-4504-b714-1f7cbca3c5ad.f9514a23-1eb8-4916-a18e-99b1a9817d15?mode=scale&q=90&h=300&w=300"

// ShowSummary is the display model of a TV show returned by a search
type ShowSummary struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Summary string `json:"summary"` // May contain markup
	Image   string `json:"image"`   // Never empty, see PlaceholderImageURL
}
