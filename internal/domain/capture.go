package domain

// NetworkEntry is one captured JSON response body.
type NetworkEntry struct {
	URL  string `json:"url"`
	Data any    `json:"data"`
}

// Anchor is a post link found in the rendered page.
type Anchor struct {
	Link     string `json:"link"`
	ImageURL string `json:"imageUrl"`
	Caption  string `json:"caption"`
}

// Enrichment is what a single post page visit yields.
type Enrichment struct {
	VideoURL  string `json:"videoUrl,omitempty"`
	Image     string `json:"image,omitempty"`
	Type      string `json:"type,omitempty"`
	IsSidecar bool   `json:"isSidecar"`
}

// AnchorMode selects how broad the DOM link query is.
type AnchorMode int

const (
	AnchorModeBasic AnchorMode = iota
	AnchorModeAggressive
)

func (m AnchorMode) String() string {
	if m == AnchorModeAggressive {
		return "aggressive"
	}
	return "basic"
}
