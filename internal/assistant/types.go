package assistant

import (
	"github.com/jonathan/job-assistant/internal/profile"
	"github.com/jonathan/job-assistant/internal/validate"
)

// AnalyzeRequest asks for a resume-vs-job analysis. JobDescription, when at
// least 80 characters, is used directly and JobURL is never fetched.
type AnalyzeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobURL         string `json:"job_url" validate:"omitempty,url"`
	JobDescription string `json:"job_description"`
}

// AnalysisResult is the analyze workflow envelope.
type AnalysisResult struct {
	Success        bool                  `json:"success"`
	Analysis       *validate.ResumeScore `json:"analysis,omitempty"`
	JobDescription string                `json:"job_description,omitempty"`
	JobURL         string                `json:"job_url,omitempty"`
	Error          string                `json:"error,omitempty"`
	DemoMode       bool                  `json:"demo_mode,omitempty"`
	Note           string                `json:"note,omitempty"`
}

// AnswerRequest asks for a tailored application answer.
type AnswerRequest struct {
	Question       string                   `json:"question" validate:"required"`
	Profile        profile.CandidateProfile `json:"profile"`
	JobURL         string                   `json:"job_url" validate:"omitempty,url"`
	JobDescription string                   `json:"job_description"`
}

// AnswerResult is the answer workflow envelope.
type AnswerResult struct {
	Success  bool   `json:"success"`
	Answer   string `json:"answer,omitempty"`
	Question string `json:"question"`
	JobURL   string `json:"job_url,omitempty"`
	Error    string `json:"error,omitempty"`
	DemoMode bool   `json:"demo_mode,omitempty"`
	Note     string `json:"note,omitempty"`
}

// RankedJob is one entry in a ranking result. Score is nil when the model
// did not provide one (including the candidate pass-through path).
type RankedJob struct {
	Rank        int    `json:"rank"`
	JobIndex    int    `json:"job_index"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	URL         string `json:"url"`
	Snippet     string `json:"snippet"`
	Location    string `json:"location"`
	Explanation string `json:"explanation"`
	Score       *int   `json:"score,omitempty"`
}

// RankingResult is the rank workflow envelope.
type RankingResult struct {
	RankedJobs []RankedJob              `json:"ranked_jobs"`
	Reasoning  string                   `json:"reasoning"`
	Profile    profile.CandidateProfile `json:"profile_summary"`
	Query      string                   `json:"query"`
	Location   string                   `json:"location"`
	Error      string                   `json:"error,omitempty"`
}
