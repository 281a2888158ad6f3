// Package assistant wires the scraping, discovery, LLM and profile
// collaborators into the complete workflows. The composition root owns all
// collaborator lifetimes and injects them here.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/discover"
	"github.com/jonathan/job-assistant/internal/llm"
	"github.com/jonathan/job-assistant/internal/logger"
	"github.com/jonathan/job-assistant/internal/mock"
	"github.com/jonathan/job-assistant/internal/parse"
	"github.com/jonathan/job-assistant/internal/profile"
	"github.com/jonathan/job-assistant/internal/prompts"
	"github.com/jonathan/job-assistant/internal/scrape"
	"github.com/jonathan/job-assistant/internal/validate"
)

// minSuppliedJDChars is the threshold below which a pasted job description
// is treated as absent and the URL is scraped instead.
const minSuppliedJDChars = 80

// Workflow temperatures. Analysis and ranking want determinism; answers
// want variety.
const (
	analysisTemperature float32 = 0.3
	answerTemperature   float32 = 0.7
	rankingTemperature  float32 = 0.3
)

const quotaNote = "Using mock %s due to API quota limits"

// JobScraper fetches and extracts a job description from a URL.
type JobScraper interface {
	Scrape(ctx context.Context, jobURL string) scrape.Result
}

// Discoverer finds candidate job listings across boards.
type Discoverer interface {
	Discover(ctx context.Context, query, location string, maxResults int) discover.Result
}

// Service coordinates the workflows.
type Service struct {
	scraper    JobScraper
	discoverer Discoverer
	llm        llm.Client
	profiles   profile.Lookup
	validator  *validator.Validate
	model      string
	log        *zap.Logger
}

// NewService creates a Service. profiles may be nil when no database is
// configured; RankForUser then reports a configuration error.
func NewService(scraper JobScraper, discoverer Discoverer, client llm.Client, profiles profile.Lookup, model string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		scraper:    scraper,
		discoverer: discoverer,
		llm:        client,
		profiles:   profiles,
		validator:  validator.New(),
		model:      model,
		log:        log,
	}
}

// AnalyzeResume runs the resume-vs-job workflow: obtain the job
// description, prompt the model, parse and normalize. Quota exhaustion
// degrades to the deterministic mock analysis with demo_mode set.
func (s *Service) AnalyzeResume(ctx context.Context, req AnalyzeRequest) AnalysisResult {
	if err := s.validator.Struct(req); err != nil {
		return AnalysisResult{Error: fmt.Sprintf("invalid request: %v", err), JobURL: req.JobURL}
	}

	jd, errResult := s.jobDescription(ctx, req.JobURL, req.JobDescription)
	if errResult != "" {
		return AnalysisResult{Error: errResult, JobURL: req.JobURL}
	}

	s.log.Info("starting resume analysis",
		zap.Int("resume_chars", len(req.ResumeText)),
		zap.Int("jd_chars", len(jd)))

	raw, err := s.llm.Complete(ctx, llm.Request{
		Model:       s.model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompts.ResumeScore(req.ResumeText, jd)}},
		Temperature: analysisTemperature,
	})
	if err != nil {
		if llm.IsQuotaExhausted(err) {
			s.log.Warn("LLM quota exhausted, using mock analysis", zap.Error(err))
			analysis := mock.ResumeAnalysis(req.ResumeText, jd)
			return AnalysisResult{
				Success:        true,
				Analysis:       &analysis,
				JobDescription: jd,
				JobURL:         req.JobURL,
				DemoMode:       true,
				Note:           fmt.Sprintf(quotaNote, "analysis"),
			}
		}
		return AnalysisResult{Error: fmt.Sprintf("resume analysis failed: %v", err), JobURL: req.JobURL}
	}

	obj, err := parse.JSONObject(raw)
	if err != nil {
		return AnalysisResult{Error: fmt.Sprintf("resume analysis failed: %v", err), JobURL: req.JobURL}
	}
	analysis := validate.ResumeScoreFromRaw(obj)

	s.log.Info("resume analysis complete", zap.Int("score", analysis.Score))
	return AnalysisResult{
		Success:        true,
		Analysis:       &analysis,
		JobDescription: jd,
		JobURL:         req.JobURL,
	}
}

// GenerateAnswer runs the tailored-answer workflow. Quota exhaustion
// degrades to the canned answer with demo_mode set.
func (s *Service) GenerateAnswer(ctx context.Context, req AnswerRequest) AnswerResult {
	if err := s.validator.Struct(req); err != nil {
		return AnswerResult{Question: req.Question, Error: fmt.Sprintf("invalid request: %v", err), JobURL: req.JobURL}
	}

	jd, errResult := s.jobDescription(ctx, req.JobURL, req.JobDescription)
	if errResult != "" {
		return AnswerResult{Question: req.Question, Error: errResult, JobURL: req.JobURL}
	}

	s.log.Info("starting tailored answer", zap.String("question", logger.Truncate(req.Question, 120)))

	answer, err := s.llm.Complete(ctx, llm.Request{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.AnswerSystem()},
			{Role: llm.RoleUser, Content: prompts.TailoredAnswer(req.Profile.PromptText(), jd, req.Question)},
		},
		Temperature: answerTemperature,
	})
	if err != nil {
		if llm.IsQuotaExhausted(err) {
			s.log.Warn("LLM quota exhausted, using mock answer", zap.Error(err))
			return AnswerResult{
				Success:  true,
				Answer:   mock.TailoredAnswer(req.Question, req.Profile, jd),
				Question: req.Question,
				JobURL:   req.JobURL,
				DemoMode: true,
				Note:     fmt.Sprintf(quotaNote, "answer"),
			}
		}
		return AnswerResult{Question: req.Question, Error: fmt.Sprintf("answer generation failed: %v", err), JobURL: req.JobURL}
	}

	return AnswerResult{
		Success:  true,
		Answer:   strings.TrimSpace(answer),
		Question: req.Question,
		JobURL:   req.JobURL,
	}
}

// ScrapeJob exposes the scrape step on its own.
func (s *Service) ScrapeJob(ctx context.Context, jobURL string) scrape.Result {
	return s.scraper.Scrape(ctx, jobURL)
}

// ExtractProfile turns raw resume text into a structured candidate profile
// via the model. Unlike analyze/answer there is no mock fallback; the
// caller needs real extraction or nothing.
func (s *Service) ExtractProfile(ctx context.Context, resumeText string) (profile.CandidateProfile, error) {
	if strings.TrimSpace(resumeText) == "" {
		return profile.CandidateProfile{}, fmt.Errorf("resume text is required")
	}

	raw, err := s.llm.Complete(ctx, llm.Request{
		Model:       s.model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompts.ExtractProfile(resumeText)}},
		Temperature: 0.2,
	})
	if err != nil {
		return profile.CandidateProfile{}, fmt.Errorf("profile extraction failed: %w", err)
	}

	obj, err := parse.JSONObject(raw)
	if err != nil {
		return profile.CandidateProfile{}, fmt.Errorf("profile extraction failed: %w", err)
	}
	return profile.FromMap(obj), nil
}

// jobDescription resolves the job description for a workflow: a supplied
// text of at least minSuppliedJDChars wins, otherwise the URL is scraped.
// The second return value is a non-empty error message on failure.
func (s *Service) jobDescription(ctx context.Context, jobURL, supplied string) (string, string) {
	if jd := strings.TrimSpace(supplied); len(jd) >= minSuppliedJDChars {
		s.log.Info("using provided job description", zap.Int("chars", len(jd)))
		return jd, ""
	}
	if jobURL == "" {
		return "", "provide job_url or a job_description of at least 80 characters"
	}

	result := s.scraper.Scrape(ctx, jobURL)
	if !result.Success {
		return "", fmt.Sprintf("failed to scrape job description: %s", result.Error)
	}
	s.log.Info("scraped job description",
		zap.String("url", jobURL),
		zap.Int("chars", len(result.Text)),
		zap.String("method", string(result.Method)))
	return result.Text, ""
}
