// Package validate normalizes decoded LLM analysis output into a stable
// shape. Models drift: suggestions arrive as bare strings, keyword lists as
// scalars, enum fields in odd casings. Normalization never fails; every
// input produces a usable ResumeScore with defaults filled in.
package validate

import (
	"math"
	"strings"
)

// Suggestion categories and priorities are closed enums; unknown values snap
// to the defaults below.
const (
	CategorySkills     = "skills"
	CategoryExperience = "experience"
	CategoryKeywords   = "keywords"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Suggestion is one actionable resume improvement.
type Suggestion struct {
	Category   string `json:"category"`
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"`
}

// ResumeScore is the normalized resume-vs-job analysis.
type ResumeScore struct {
	Score           int          `json:"score"`
	MatchPercentage float64      `json:"match_percentage"`
	Suggestions     []Suggestion `json:"suggestions"`
	MatchedKeywords []string     `json:"matched_keywords"`
	MissingKeywords []string     `json:"missing_keywords"`
	Strengths       []string     `json:"strengths,omitempty"`
	MissingSkills   []string     `json:"missing_skills,omitempty"`
}

// ResumeScoreFromRaw normalizes a decoded JSON object. It never returns an
// error: absent or malformed fields take defaults, numeric fields clamp to
// their ranges, legacy shapes are coerced.
func ResumeScoreFromRaw(raw map[string]any) ResumeScore {
	score, scoreOK := asNumber(raw["score"])
	pct, pctOK := asNumber(raw["match_percentage"])

	// Score falls back to match_percentage; the two clamp independently so
	// one bad field never corrupts the other.
	if !scoreOK && pctOK {
		score = pct * 100
	}
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	if !pctOK {
		pct = score / 100
	}
	if pct < 0 {
		pct = 0
	} else if pct > 1 {
		pct = 1
	}

	out := ResumeScore{
		Score:           int(math.Round(score)),
		MatchPercentage: pct,
		Suggestions:     normalizeSuggestions(raw["suggestions"]),
		MatchedKeywords: asStringList(raw["matched_keywords"]),
		MissingKeywords: asStringList(raw["missing_keywords"]),
	}

	// Older prompt versions emitted missing_skills instead of
	// missing_keywords.
	if len(out.MissingKeywords) == 0 {
		out.MissingKeywords = asStringList(raw["missing_skills"])
	}
	if list, ok := strictStringList(raw["strengths"]); ok {
		out.Strengths = list
	}
	if list, ok := strictStringList(raw["missing_skills"]); ok {
		out.MissingSkills = list
	}
	return out
}

func normalizeSuggestions(v any) []Suggestion {
	items, ok := v.([]any)
	if !ok {
		// A scalar suggestion coerces to a single-element list, like the
		// keyword fields do.
		s, isString := v.(string)
		if !isString || s == "" {
			return []Suggestion{}
		}
		items = []any{s}
	}
	out := make([]Suggestion, 0, len(items))
	for _, item := range items {
		switch s := item.(type) {
		case string:
			if s == "" {
				continue
			}
			// Legacy shape: bare string suggestion.
			out = append(out, Suggestion{
				Category:   CategoryKeywords,
				Suggestion: s,
				Priority:   PriorityMedium,
			})
		case map[string]any:
			text, _ := s["suggestion"].(string)
			if text == "" {
				continue
			}
			out = append(out, Suggestion{
				Category:   snapCategory(s["category"]),
				Suggestion: text,
				Priority:   snapPriority(s["priority"]),
			})
		}
	}
	return out
}

func snapCategory(v any) string {
	s, _ := v.(string)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case CategorySkills:
		return CategorySkills
	case CategoryExperience:
		return CategoryExperience
	default:
		return CategoryKeywords
	}
}

func snapPriority(v any) string {
	s, _ := v.(string)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// asNumber accepts only genuine JSON numbers. A stringified score counts as
// malformed and takes the default.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// asStringList coerces scalars to single-element lists and drops non-string
// elements from mixed lists.
func asStringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return []string{}
		}
		return []string{t}
	default:
		return []string{}
	}
}

// strictStringList accepts only a genuine list of strings; anything else is
// treated as absent.
func strictStringList(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
