package discover

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/fetch"
)

const indeedBase = "https://www.indeed.com"

// Indeed discovers listings from Indeed search pages.
type Indeed struct {
	fetcher    *fetch.Fetcher
	maxAgeDays int
	log        *zap.Logger
}

// NewIndeed creates the adapter.
func NewIndeed(fetcher *fetch.Fetcher, maxAgeDays int, log *zap.Logger) *Indeed {
	if log == nil {
		log = zap.NewNop()
	}
	return &Indeed{fetcher: fetcher, maxAgeDays: maxAgeDays, log: log}
}

func (i *Indeed) Source() Source { return SourceIndeed }

// Discover fetches the search page with rendering enabled. Indeed serves
// "PostedPosted N days ago" phrases inside .date spans on each result card.
func (i *Indeed) Discover(ctx context.Context, query, location string, maxResults int) ([]Listing, error) {
	base, _ := url.Parse(indeedBase)

	q := url.Values{}
	q.Set("q", capQuery(query))
	if loc := capLocation(location); loc != "" {
		q.Set("l", loc)
	}
	searchURL := indeedBase + "/jobs?" + q.Encode()

	markup, _ := i.fetcher.Fetch(ctx, searchURL, true)
	if markup == "" {
		i.log.Warn("indeed: no markup; set SCRAPER_API_KEY or BROWSERLESS_URL for JS boards")
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	var jobs []Listing
	seen := make(map[string]bool)

	doc.Find(`a.jcs-JobTitle, h2.jobTitle a, a[href*="/viewjob"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
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
			Source: SourceIndeed,
		}

		card := s.Closest("li, td.resultContent, div.job_seen_beacon")
		if card.Length() > 0 {
			listing.Company = strings.TrimSpace(card.Find("[data-testid='company-name'], span.companyName").First().Text())
			listing.Location = strings.TrimSpace(card.Find("[data-testid='text-location'], div.companyLocation").First().Text())
			listing.Snippet = strings.TrimSpace(card.Find("div.job-snippet").First().Text())
			if days, ok := ParsePostedAge(card.Find("span.date, [data-testid='myJobsStateDate']").Text()); ok {
				if !withinCutoff(days, i.maxAgeDays) {
					return true
				}
				listing.PostedDaysAgo = &days
			}
		}

		seen[jobURL] = true
		jobs = append(jobs, listing)
		return true
	})

	i.log.Debug("indeed discovery complete", zap.Int("jobs", len(jobs)))
	return jobs, nil
}
