package discover

import (
	"regexp"
	"strconv"
	"strings"
)

// postedAgoRe matches relative posted phrases like "2 days ago", "1 week
// ago", "30+ days ago".
var postedAgoRe = regexp.MustCompile(`(?i)(\d+)\+?\s*(hour|day|week|month)s?\s*ago`)

// freshRe matches phrases boards use for same-day postings.
var freshRe = regexp.MustCompile(`(?i)\b(just now|just posted|today|an? (hour|minute) ago|\d+\s*minutes?\s*ago)\b`)

// ParsePostedAge converts a "posted N units ago" phrase into an approximate
// day count. Hours and same-day phrases map to 0, weeks to 7N, months to 30N.
// Returns ok=false when no recognizable phrase is present; callers keep such
// listings rather than dropping them.
func ParsePostedAge(text string) (days int, ok bool) {
	if text == "" {
		return 0, false
	}
	if freshRe.MatchString(text) {
		return 0, true
	}

	m := postedAgoRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}

	switch strings.ToLower(m[2]) {
	case "hour":
		return 0, true
	case "day":
		return n, true
	case "week":
		return n * 7, true
	case "month":
		return n * 30, true
	}
	return 0, false
}
