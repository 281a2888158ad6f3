package prompts

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/job-assistant/internal/discover"
)

// Character budgets keep prompts inside model context limits. Oversized
// inputs are truncated, never rejected.
const (
	MaxResumeChars         = 4000
	MaxJobDescriptionChars = 4000
	MaxProfileResumeChars  = 6000
	MaxSnippetChars        = 300
	MaxJobsInPrompt        = 50
)

// Truncate bounds s to max bytes, backing the cut up to a rune boundary so
// multi-byte input never truncates into invalid UTF-8.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// ResumeScore renders the resume-vs-job scoring prompt.
func ResumeScore(resumeText, jobDescription string) string {
	template := MustGet("analysis.json", "resume-score")
	return Format(template, map[string]string{
		"ResumeText":     Truncate(resumeText, MaxResumeChars),
		"JobDescription": Truncate(jobDescription, MaxJobDescriptionChars),
	})
}

// AnswerSystem returns the career-coach system prompt for tailored answers.
func AnswerSystem() string {
	return MustGet("answer.json", "system")
}

// TailoredAnswer renders the tailored-answer prompt. userProfile is the
// flattened profile text.
func TailoredAnswer(userProfile, jobDescription, question string) string {
	template := MustGet("answer.json", "tailored-answer")
	return Format(template, map[string]string{
		"UserProfile":    userProfile,
		"JobDescription": Truncate(jobDescription, MaxJobDescriptionChars),
		"Question":       question,
	})
}

// ExtractProfile renders the resume-to-structured-profile prompt.
func ExtractProfile(resumeText string) string {
	template := MustGet("profile.json", "extract-profile")
	return Format(template, map[string]string{
		"ResumeText": Truncate(resumeText, MaxProfileResumeChars),
	})
}

// RankingSystem returns the job-matching system prompt.
func RankingSystem() string {
	return MustGet("ranking.json", "system")
}

// RankJobs renders the ranking prompt over a numbered candidate list. The
// list is capped at MaxJobsInPrompt entries for prompt-size control.
func RankJobs(profileSummary string, jobs []discover.Listing, maxRanked int) string {
	template := MustGet("ranking.json", "rank-jobs")
	return Format(template, map[string]string{
		"ProfileSummary": profileSummary,
		"JobsText":       JobsText(jobs),
		"MaxResults":     fmt.Sprintf("%d", maxRanked),
	})
}

// JobsText formats listings as a numbered block, 1-based, matching the
// `index` contract in the ranking template.
func JobsText(jobs []discover.Listing) string {
	if len(jobs) > MaxJobsInPrompt {
		jobs = jobs[:MaxJobsInPrompt]
	}
	var lines []string
	for i, job := range jobs {
		title := job.Title
		if title == "" {
			title = "—"
		}
		company := job.Company
		if company == "" {
			company = "—"
		}
		snippet := Truncate(job.Snippet, MaxSnippetChars)
		lines = append(lines, fmt.Sprintf("[%d] %s @ %s %s\n%s\n%s",
			i+1, title, company, job.Location, snippet, job.URL))
	}
	return strings.Join(lines, "\n\n")
}
