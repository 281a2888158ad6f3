// Package extract turns raw page markup into cleaned job-description text.
// It applies board-specific selector rules with a generic heuristic fallback,
// and treats authentication walls as hard failures rather than returning
// partial walled content.
package extract

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrAuthWall indicates the page requires login and carries no job content.
	ErrAuthWall = errors.New("page requires authentication")
	// ErrNoContent indicates no selector or heuristic yielded usable text.
	ErrNoContent = errors.New("no extractable content")
)

const (
	// authWallScanBytes bounds the wall check to the top of the document,
	// where sign-in prompts live.
	authWallScanBytes = 8192
	// minMarkupBytes below which a page cannot plausibly hold a job posting.
	minMarkupBytes = 500
	// minSelectorText is the threshold for accepting a site selector's match.
	minSelectorText = 80
	// minBlockText is the threshold for paragraph blocks in the generic
	// fallback.
	minBlockText = 50
)

// authWallPatterns match login/signup walls on LinkedIn, Glassdoor and
// similar boards. Checked case-insensitively against the top of the markup.
var authWallPatterns = []string{
	"sign in to linkedin",
	"join linkedin",
	"join now",
	"log in to glassdoor",
	"create an account",
	"your session has expired",
	"please log in",
	"you must be logged in",
	"join to view",
}

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	boilerplateRe = regexp.MustCompile(`(?i)(apply now|save job|share job|see more|see less)`)
	contentDivRe  = regexp.MustCompile(`(?i)content|description|job`)
)

// IsAuthWall detects login/signup walls. Markup under minMarkupBytes is also
// treated as walled: real postings are never that small.
func IsAuthWall(markup string) bool {
	if len(markup) < minMarkupBytes {
		return true
	}
	head := strings.ToLower(markup)
	if len(head) > authWallScanBytes {
		head = head[:authWallScanBytes]
	}
	for _, pat := range authWallPatterns {
		if strings.Contains(head, pat) {
			return true
		}
	}
	return false
}

// Content extracts cleaned job-description text from markup fetched at
// sourceURL. Returns ErrAuthWall for walled pages and ErrNoContent when
// neither site rules nor the generic heuristic find anything.
func Content(markup, sourceURL string) (string, error) {
	if IsAuthWall(markup) {
		return "", ErrAuthWall
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", ErrNoContent
	}

	site := DetectSite(sourceURL)
	if profile, ok := SiteProfile(site); ok {
		if text := withSelectors(doc, profile); text != "" {
			return text, nil
		}
	}

	if text := generic(doc); text != "" {
		return text, nil
	}
	return "", ErrNoContent
}

// withSelectors removes the profile's exclusions and tries its content
// selectors in order, accepting the first whose concatenated element text
// clears the threshold.
func withSelectors(doc *goquery.Document, profile Profile) string {
	for _, sel := range profile.ExcludeSelectors {
		doc.Find(sel).Remove()
	}

	for _, sel := range profile.ContentSelectors {
		var parts []string
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			t := strings.TrimSpace(s.Text())
			if len(t) > minSelectorText {
				parts = append(parts, t)
			}
		})
		if len(parts) > 0 {
			return clean(strings.Join(parts, " "))
		}
	}
	return ""
}

// generic strips structural noise and falls back to content-like containers,
// then paragraph blocks.
func generic(doc *goquery.Document) string {
	doc.Find("nav, header, footer, .ad, script, style").Remove()

	if main := doc.Find("main").First(); main.Length() > 0 {
		if text := clean(main.Text()); text != "" {
			return text
		}
	}
	if article := doc.Find("article").First(); article.Length() > 0 {
		if text := clean(article.Text()); text != "" {
			return text
		}
	}

	var container *goquery.Selection
	doc.Find("div[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		if contentDivRe.MatchString(class) {
			container = s
			return false
		}
		return true
	})
	if container != nil {
		if text := clean(container.Text()); text != "" {
			return text
		}
	}

	var parts []string
	doc.Find("body").Find("p, div, section").Each(func(_ int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		if len(t) > minBlockText {
			parts = append(parts, t)
		}
	})
	if len(parts) > 0 {
		return clean(strings.Join(parts, " "))
	}
	return ""
}

// clean normalizes whitespace and strips apply/save boilerplate phrases.
func clean(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = boilerplateRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
