package widget

// Update operations published to a page session listener.
const (
	OpReplace = "replace"
	OpShow    = "show"
	OpHide    = "hide"
)

// Update describes one mutation of the page, addressed by element id, so that a
// browser can mirror the server-side document.
type Update struct {
	Op     string `json:"op"`
	Target string `json:"target"`
	HTML   string `json:"html,omitempty"`
}

// Listener receives updates in the order the page was mutated. It is called
// while the page is locked and must not call back into the Widget.
type Listener func(Update)
