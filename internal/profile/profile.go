// Package profile models the candidate profile consumed by the answer and
// ranking workflows, and the database lookup that produces it.
package profile

import (
	"fmt"
	"strings"
)

// CandidateProfile is the flattened candidate record. String fields hold
// comma- or newline-joined values; loose upstream shapes are coerced in
// FromMap.
type CandidateProfile struct {
	FullName       string   `json:"full_name"`
	Email          string   `json:"email"`
	CurrentTitle   string   `json:"current_title"`
	Skills         string   `json:"skills"`
	Location       string   `json:"location"`
	WorkHistory    string   `json:"work_history"`
	Education      string   `json:"education"`
	AdditionalInfo string   `json:"additional_info"`
	Interests      []string `json:"interests,omitempty"`
}

// FromMap coerces a loose profile map into a CandidateProfile. List values
// join with commas (skills, interests) or newlines (work history,
// education); missing keys stay empty.
func FromMap(raw map[string]any) CandidateProfile {
	return CandidateProfile{
		FullName:       asString(raw["full_name"], ", "),
		Email:          asString(raw["email"], ", "),
		CurrentTitle:   asString(raw["current_title"], ", "),
		Skills:         asString(raw["skills"], ", "),
		Location:       asString(raw["location"], ", "),
		WorkHistory:    asString(raw["work_history"], "\n"),
		Education:      asString(raw["education"], "\n"),
		AdditionalInfo: asString(raw["additional_info"], "\n"),
		Interests:      asList(raw["interests"]),
	}
}

// Summary renders the profile as the short labeled block the ranking prompt
// expects. Empty fields are omitted entirely.
func (p CandidateProfile) Summary() string {
	var parts []string
	if p.CurrentTitle != "" || p.WorkHistory != "" {
		roles := p.CurrentTitle
		if roles == "" {
			roles = p.WorkHistory
		}
		parts = append(parts, fmt.Sprintf("Roles/Experience: %s", roles))
	}
	if p.Skills != "" {
		parts = append(parts, fmt.Sprintf("Skills: %s", p.Skills))
	}
	if p.Location != "" {
		parts = append(parts, fmt.Sprintf("Location: %s", p.Location))
	}
	if p.Education != "" {
		parts = append(parts, fmt.Sprintf("Education: %s", p.Education))
	}
	if len(p.Interests) > 0 {
		parts = append(parts, fmt.Sprintf("Interests/Industries: %s", strings.Join(p.Interests, ", ")))
	}
	if len(parts) == 0 {
		return "No profile details."
	}
	return strings.Join(parts, "\n")
}

// PromptText renders the profile for the tailored-answer prompt. All four
// labels appear even when empty.
func (p CandidateProfile) PromptText() string {
	return fmt.Sprintf("Work History: %s\nSkills: %s\nEducation: %s\nAdditional: %s",
		p.WorkHistory, p.Skills, p.Education, p.AdditionalInfo)
}

// FirstRole returns the first comma-separated role from the current title,
// or "" when none is set.
func (p CandidateProfile) FirstRole() string {
	for _, role := range strings.Split(p.CurrentTitle, ",") {
		if role = strings.TrimSpace(role); role != "" {
			return role
		}
	}
	return ""
}

// TopSkills returns up to n comma-separated skills.
func (p CandidateProfile) TopSkills(n int) []string {
	var out []string
	for _, skill := range strings.Split(p.Skills, ",") {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
			if len(out) == n {
				break
			}
		}
	}
	return out
}

func asString(v any, sep string) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		var parts []string
		for _, item := range t {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return strings.Join(parts, sep)
	case []string:
		return strings.Join(t, sep)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

func asList(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		var out []string
		for _, item := range t {
			if s := strings.TrimSpace(fmt.Sprintf("%v", item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		var out []string
		for _, part := range strings.Split(t, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
