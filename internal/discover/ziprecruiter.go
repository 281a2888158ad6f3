package discover

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/fetch"
)

const zipRecruiterBase = "https://www.ziprecruiter.com"

// ZipRecruiter discovers listings from ZipRecruiter search pages.
type ZipRecruiter struct {
	fetcher    *fetch.Fetcher
	maxAgeDays int
	log        *zap.Logger
}

// NewZipRecruiter creates the adapter. maxAgeDays is the discovery-wide
// recency cutoff; zero disables early dropping.
func NewZipRecruiter(fetcher *fetch.Fetcher, maxAgeDays int, log *zap.Logger) *ZipRecruiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZipRecruiter{fetcher: fetcher, maxAgeDays: maxAgeDays, log: log}
}

func (z *ZipRecruiter) Source() Source { return SourceZipRecruiter }

// Discover fetches the search page with rendering enabled and harvests
// listing links.
func (z *ZipRecruiter) Discover(ctx context.Context, query, location string, maxResults int) ([]Listing, error) {
	base, _ := url.Parse(zipRecruiterBase)

	q := url.Values{}
	q.Set("search", capQuery(query))
	if loc := capLocation(location); loc != "" {
		q.Set("location", loc)
	}
	searchURL := zipRecruiterBase + "/jobs-search?" + q.Encode()

	markup, _ := z.fetcher.Fetch(ctx, searchURL, true)
	if markup == "" {
		z.log.Warn("ziprecruiter: no markup; set SCRAPER_API_KEY or BROWSERLESS_URL for JS boards")
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	var jobs []Listing
	seen := make(map[string]bool)

	doc.Find(`a[href*="/job/"], a[href*="/jobs/"], a[data-job-id]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(jobs) >= maxResults {
			return false
		}
		href, _ := s.Attr("href")
		jobURL := canonicalURL(base, href)
		if jobURL == "" || seen[jobURL] {
			return true
		}
		title := usableTitle(s.Text())
		if title == "" {
			return true
		}

		listing := Listing{
			Title:  title,
			URL:    jobURL,
			Source: SourceZipRecruiter,
		}

		card := s.Closest("article, li")
		if card.Length() > 0 {
			listing.Company = strings.TrimSpace(card.Find("[data-testid='job-card-company'], .company_name").First().Text())
			listing.Location = strings.TrimSpace(card.Find("[data-testid='job-card-location'], .location").First().Text())
			if days, ok := ParsePostedAge(card.Text()); ok {
				if !withinCutoff(days, z.maxAgeDays) {
					return true
				}
				listing.PostedDaysAgo = &days
			}
		}

		seen[jobURL] = true
		jobs = append(jobs, listing)
		return true
	})

	z.log.Debug("ziprecruiter discovery complete", zap.Int("jobs", len(jobs)))
	return jobs, nil
}
