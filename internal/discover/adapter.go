package discover

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Boards and rendering proxies reject overlong URLs, so search inputs are
// capped before URL construction.
const (
	maxQueryLength    = 80
	maxLocationLength = 60
	// minTitleLength filters link-text noise ("→", icons) out of listings.
	minTitleLength = 3
	maxTitleLength = 200
)

// Adapter turns a (query, location) pair into listings for one board.
// Implementations must be safe for concurrent use.
type Adapter interface {
	Source() Source
	Discover(ctx context.Context, query, location string, maxResults int) ([]Listing, error)
}

// capBytes bounds s to max bytes, cutting on a rune boundary. Board search
// terms carry accented and CJK characters; a mid-rune cut would put invalid
// UTF-8 into the search URL.
func capBytes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// capQuery bounds and defaults the search query.
func capQuery(query string) string {
	q := strings.TrimSpace(query)
	if q == "" {
		q = "jobs"
	}
	return capBytes(q, maxQueryLength)
}

// capLocation bounds the location string.
func capLocation(location string) string {
	return capBytes(strings.TrimSpace(location), maxLocationLength)
}

// canonicalURL resolves href against the board base and strips the fragment,
// producing the cross-source dedup key.
func canonicalURL(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	abs.Fragment = ""
	return abs.String()
}

// usableTitle trims, bounds and noise-filters a listing title. Empty return
// means discard.
func usableTitle(raw string) string {
	t := strings.TrimSpace(raw)
	if len(t) < minTitleLength {
		return ""
	}
	return capBytes(t, maxTitleLength)
}

// withinCutoff reports whether a parsed age passes the recency cutoff. The
// aggregator passes its cutoff down so adapters can drop stale listings
// early; cutoff <= 0 disables the filter.
func withinCutoff(days int, cutoff int) bool {
	if cutoff <= 0 {
		return true
	}
	return days <= cutoff
}
