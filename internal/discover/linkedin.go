package discover

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/fetch"
)

const linkedInBase = "https://www.linkedin.com"

// LinkedIn discovers listings from the public LinkedIn jobs search page.
type LinkedIn struct {
	fetcher    *fetch.Fetcher
	maxAgeDays int
	log        *zap.Logger
}

// NewLinkedIn creates the adapter.
func NewLinkedIn(fetcher *fetch.Fetcher, maxAgeDays int, log *zap.Logger) *LinkedIn {
	if log == nil {
		log = zap.NewNop()
	}
	return &LinkedIn{fetcher: fetcher, maxAgeDays: maxAgeDays, log: log}
}

func (l *LinkedIn) Source() Source { return SourceLinkedIn }

// Discover fetches the guest search page. Job cards carry a <time> element
// with the posted phrase, and the canonical posting URL under /jobs/view/.
func (l *LinkedIn) Discover(ctx context.Context, query, location string, maxResults int) ([]Listing, error) {
	base, _ := url.Parse(linkedInBase)

	q := url.Values{}
	q.Set("keywords", capQuery(query))
	if loc := capLocation(location); loc != "" {
		q.Set("location", loc)
	}
	searchURL := linkedInBase + "/jobs/search?" + q.Encode()

	markup, _ := l.fetcher.Fetch(ctx, searchURL, true)
	if markup == "" {
		l.log.Warn("linkedin: no markup; set SCRAPER_API_KEY or BROWSERLESS_URL for JS boards")
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	var jobs []Listing
	seen := make(map[string]bool)

	doc.Find(`a.base-card__full-link, a[href*="/jobs/view/"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(jobs) >= maxResults {
			return false
		}
		href, _ := s.Attr("href")
		jobURL := canonicalURL(base, href)
		if jobURL == "" || seen[jobURL] {
			return true
		}

		card := s.Closest("div.base-card, li")
		title := usableTitle(s.Find(".sr-only").First().Text())
		if title == "" {
			title = usableTitle(card.Find("h3.base-search-card__title").First().Text())
		}
		if title == "" {
			title = usableTitle(s.Text())
		}
		if title == "" {
			return true
		}

		listing := Listing{
			Title:  title,
			URL:    jobURL,
			Source: SourceLinkedIn,
		}
		if card.Length() > 0 {
			listing.Company = strings.TrimSpace(card.Find("h4.base-search-card__subtitle, .base-search-card__subtitle").First().Text())
			listing.Location = strings.TrimSpace(card.Find(".job-search-card__location").First().Text())
			posted := strings.TrimSpace(card.Find("time").First().Text())
			if posted == "" {
				posted = card.Text()
			}
			if days, ok := ParsePostedAge(posted); ok {
				if !withinCutoff(days, l.maxAgeDays) {
					return true
				}
				listing.PostedDaysAgo = &days
			}
		}

		seen[jobURL] = true
		jobs = append(jobs, listing)
		return true
	})

	l.log.Debug("linkedin discovery complete", zap.Int("jobs", len(jobs)))
	return jobs, nil
}
