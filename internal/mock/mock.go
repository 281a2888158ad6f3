// Package mock provides deterministic fallback results for when the LLM
// provider is unavailable or out of quota. Results are keyword-driven and
// clearly marked as demo output by the caller.
package mock

import (
	"fmt"
	"strings"

	"github.com/jonathan/job-assistant/internal/profile"
	"github.com/jonathan/job-assistant/internal/validate"
)

// commonSkills is the keyword vocabulary for the overlap heuristic.
var commonSkills = []string{
	"python", "javascript", "java", "sql", "aws", "docker",
	"kubernetes", "react", "node", "django", "flask", "postgresql",
	"mongodb", "git", "agile", "scrum", "api", "rest", "microservices",
}

const maxMissingSkills = 5

// ResumeAnalysis produces a keyword-overlap analysis. The score is
// min(85, 60 + 3 per matched skill), so output stays in a believable band.
func ResumeAnalysis(resumeText, jobDescription string) validate.ResumeScore {
	resumeLower := strings.ToLower(resumeText)
	jdLower := strings.ToLower(jobDescription)

	var found, missing []string
	for _, skill := range commonSkills {
		inResume := strings.Contains(resumeLower, skill)
		if inResume {
			found = append(found, skill)
		}
		if strings.Contains(jdLower, skill) && !inResume && len(missing) < maxMissingSkills {
			missing = append(missing, skill)
		}
	}

	score := 60 + 3*len(found)
	if score > 85 {
		score = 85
	}

	var suggestions []validate.Suggestion
	if len(missing) > 0 {
		suggestions = []validate.Suggestion{
			{Category: validate.CategorySkills, Suggestion: fmt.Sprintf("Highlight your experience with %s", missing[0]), Priority: validate.PriorityHigh},
			{Category: validate.CategoryExperience, Suggestion: "Quantify your achievements with specific metrics", Priority: validate.PriorityMedium},
			{Category: validate.CategoryKeywords, Suggestion: "Tailor your resume to match the job description keywords", Priority: validate.PriorityHigh},
			{Category: validate.CategoryExperience, Suggestion: "Include relevant projects that demonstrate required skills", Priority: validate.PriorityMedium},
		}
	} else {
		suggestions = []validate.Suggestion{
			{Category: validate.CategoryKeywords, Suggestion: "Your resume shows good alignment with the job requirements", Priority: validate.PriorityLow},
			{Category: validate.CategoryExperience, Suggestion: "Consider adding more quantifiable achievements", Priority: validate.PriorityMedium},
			{Category: validate.CategoryExperience, Suggestion: "Highlight leadership and collaboration experiences", Priority: validate.PriorityLow},
		}
	}

	strength := "relevant technologies"
	if len(found) > 0 {
		strength = found[0]
	}

	return validate.ResumeScore{
		Score:           score,
		MatchPercentage: float64(score) / 100,
		Suggestions:     suggestions,
		MatchedKeywords: found,
		MissingKeywords: missing,
		Strengths: []string{
			fmt.Sprintf("Strong background in %s", strength),
			"Relevant work experience",
			"Good technical foundation",
		},
		MissingSkills: missing,
	}
}

// TailoredAnswer produces a canned application answer from the profile. It
// reads plausibly but carries bracket placeholders so demo output is never
// mistaken for a real completion.
func TailoredAnswer(question string, p profile.CandidateProfile, jobDescription string) string {
	work := p.WorkHistory
	if work == "" {
		work = "With my professional experience,"
	}
	skills := p.Skills
	if skills == "" {
		skills = "relevant technologies"
	}
	education := p.Education
	if education == "" {
		education = "educational background"
	}

	return fmt.Sprintf(`Based on my background and experience, I believe I am an excellent fit for this position.

%s I have developed strong expertise in %s. My %s has provided me with a solid foundation that aligns well with the requirements of this role.

What particularly excites me about this opportunity is how it combines [relevant aspect from job description]. I am confident that my skills in %s and my passion for [relevant field] make me a strong candidate who can contribute meaningfully to your team.

I am eager to bring my experience and enthusiasm to this role and help drive success for your organization.`,
		work, skills, education, skills)
}
