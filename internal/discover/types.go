// Package discover finds candidate job listings across multiple boards,
// merging concurrent per-board results with deduplication and a recency
// cutoff.
package discover

// Source identifies a job board adapter.
type Source string

const (
	SourceZipRecruiter Source = "ziprecruiter"
	SourceLinkedIn     Source = "linkedin"
	SourceIndeed       Source = "indeed"
)

// Listing is a lightweight job record produced by a board adapter.
// Immutable once created. URL is the canonical dedup key.
type Listing struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	URL      string `json:"url"`
	Snippet  string `json:"snippet"`
	Location string `json:"location"`
	Source   Source `json:"source"`
	// PostedDaysAgo is the approximate listing age. Nil means the board did
	// not expose a parseable posted phrase; unknown age is kept, not dropped.
	PostedDaysAgo *int `json:"posted_days_ago,omitempty"`
}

// Result is the aggregate discovery output.
type Result struct {
	Jobs     []Listing `json:"jobs"`
	Query    string    `json:"query"`
	Location string    `json:"location"`
	Sources  []string  `json:"sources"`
}
