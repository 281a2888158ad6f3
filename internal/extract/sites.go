package extract

import (
	"net/url"
	"strings"
)

// Site identifies a known job board.
type Site string

const (
	SiteLinkedIn   Site = "linkedin"
	SiteIndeed     Site = "indeed"
	SiteGreenhouse Site = "greenhouse"
	SiteGlassdoor  Site = "glassdoor"
	SiteGeneric    Site = "generic"
)

// Profile holds the extraction rules for a board: content selectors tried in
// order, and exclusion selectors removed from the document first.
type Profile struct {
	ContentSelectors []string
	ExcludeSelectors []string
}

// siteProfiles is the selector registry for known boards. Selector lists are
// ordered most-specific first; the first selector whose matched text clears
// the content threshold wins.
var siteProfiles = map[Site]Profile{
	SiteLinkedIn: {
		ContentSelectors: []string{
			"div.description__text",
			"div.show-more-less-html__markup",
			"section.core-section-container__content",
			"div[data-test-id='job-details']",
			"div.jobs-box__html-content",
			"div.job-view-layout",
			"div.description",
			"article",
		},
		ExcludeSelectors: []string{
			"nav", "header", "footer", ".ad", ".advertisement",
			".social-share", "button", "a[href*='apply']",
		},
	},
	SiteIndeed: {
		ContentSelectors: []string{
			"div#jobDescriptionText",
			"div.jobsearch-jobDescriptionText",
			"div.jobsearch-JobComponent-description",
			"div.jobsearch-job-overview",
		},
		ExcludeSelectors: []string{
			"nav", "header", "footer", ".jobsearch-IndeedApplyButton",
		},
	},
	SiteGreenhouse: {
		ContentSelectors: []string{
			"div#content",
			"div#job_description",
			"div.description",
			"section.content",
		},
		ExcludeSelectors: []string{
			"nav", "header", "footer", ".application-form",
		},
	},
	SiteGlassdoor: {
		ContentSelectors: []string{
			"div.jobDesc",
			"div.jobDescriptionContent",
			"div[data-test='jobDescriptionText']",
			"div.desc",
		},
		ExcludeSelectors: []string{
			"nav", "header", "footer", ".apply-button",
		},
	},
}

// jsSites are boards that serve empty shells without JavaScript execution.
var jsSites = map[Site]bool{
	SiteLinkedIn:  true,
	SiteGlassdoor: true,
}

// DetectSite identifies the board from a URL's domain.
func DetectSite(rawURL string) Site {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return SiteGeneric
	}
	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "linkedin.com"):
		return SiteLinkedIn
	case strings.Contains(host, "indeed.com"):
		return SiteIndeed
	case strings.Contains(host, "greenhouse.io"):
		return SiteGreenhouse
	case strings.Contains(host, "glassdoor.com"):
		return SiteGlassdoor
	default:
		return SiteGeneric
	}
}

// SiteProfile returns the selector rules for a board and whether the board
// is registered.
func SiteProfile(site Site) (Profile, bool) {
	p, ok := siteProfiles[site]
	return p, ok
}

// RequiresJS reports whether the board needs a rendering strategy to serve
// job content.
func RequiresJS(site Site) bool {
	return jsSites[site]
}
