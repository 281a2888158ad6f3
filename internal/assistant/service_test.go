package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/discover"
	"github.com/jonathan/job-assistant/internal/llm"
	"github.com/jonathan/job-assistant/internal/profile"
	"github.com/jonathan/job-assistant/internal/scrape"
)

type fakeLLM struct {
	responses []string
	err       error
	requests  []llm.Request
}

func (f *fakeLLM) Complete(_ context.Context, req llm.Request) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("no response configured")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeLLM) Close() error { return nil }

type fakeScraper struct {
	result scrape.Result
	calls  int
}

func (f *fakeScraper) Scrape(_ context.Context, jobURL string) scrape.Result {
	f.calls++
	result := f.result
	result.URL = jobURL
	return result
}

type discoverCall struct {
	query    string
	location string
}

type fakeDiscoverer struct {
	results []discover.Result
	calls   []discoverCall
}

func (f *fakeDiscoverer) Discover(_ context.Context, query, location string, _ int) discover.Result {
	f.calls = append(f.calls, discoverCall{query: query, location: location})
	if len(f.results) == 0 {
		return discover.Result{Query: query, Location: location}
	}
	result := f.results[0]
	f.results = f.results[1:]
	return result
}

type fakeLookup struct {
	prof profile.CandidateProfile
	err  error
}

func (f *fakeLookup) Get(_ context.Context, _ string) (profile.CandidateProfile, error) {
	return f.prof, f.err
}

func newTestService(client llm.Client, scraper JobScraper, discoverer Discoverer, profiles profile.Lookup) *Service {
	return NewService(scraper, discoverer, client, profiles, "test-model", zap.NewNop())
}

var longJD = strings.Repeat("Build Go services, own them in production, work with Postgres and Kafka. ", 3)

func TestAnalyzeResume_SuppliedDescriptionSkipsScrape(t *testing.T) {
	client := &fakeLLM{responses: []string{`{"score": 82, "match_percentage": 0.82, "suggestions": [], "matched_keywords": ["go"], "missing_keywords": []}`}}
	scraper := &fakeScraper{}
	svc := newTestService(client, scraper, &fakeDiscoverer{}, nil)

	result := svc.AnalyzeResume(context.Background(), AnalyzeRequest{
		ResumeText:     "Go engineer with five years of backend experience",
		JobURL:         "https://example.com/job/1",
		JobDescription: longJD,
	})

	require.True(t, result.Success, "unexpected error: %s", result.Error)
	assert.Equal(t, 0, scraper.calls, "scraper must not run when a usable description is supplied")
	require.NotNil(t, result.Analysis)
	assert.Equal(t, 82, result.Analysis.Score)
}

func TestAnalyzeResume_ShortSuppliedDescriptionFallsBackToScrape(t *testing.T) {
	client := &fakeLLM{responses: []string{`{"score": 50}`}}
	scraper := &fakeScraper{result: scrape.Result{Success: true, Text: longJD}}
	svc := newTestService(client, scraper, &fakeDiscoverer{}, nil)

	result := svc.AnalyzeResume(context.Background(), AnalyzeRequest{
		ResumeText:     "resume",
		JobURL:         "https://example.com/job/1",
		JobDescription: "too short",
	})

	require.True(t, result.Success)
	assert.Equal(t, 1, scraper.calls)
}

func TestAnalyzeResume_ScrapeFailureIsTerminal(t *testing.T) {
	client := &fakeLLM{}
	scraper := &fakeScraper{result: scrape.Result{Success: false, Error: "all fetch methods failed"}}
	svc := newTestService(client, scraper, &fakeDiscoverer{}, nil)

	result := svc.AnalyzeResume(context.Background(), AnalyzeRequest{
		ResumeText: "resume",
		JobURL:     "https://example.com/job/1",
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "failed to scrape")
	assert.Empty(t, client.requests, "the model must not be called without a job description")
}

func TestAnalyzeResume_QuotaFallsBackToMock(t *testing.T) {
	client := &fakeLLM{err: errors.New("googleapi: Error 429: quota exceeded")}
	svc := newTestService(client, &fakeScraper{}, &fakeDiscoverer{}, nil)

	result := svc.AnalyzeResume(context.Background(), AnalyzeRequest{
		ResumeText:     "Experienced with python, sql and docker",
		JobDescription: longJD + " Requires python and kubernetes.",
	})

	require.True(t, result.Success)
	assert.True(t, result.DemoMode)
	assert.NotEmpty(t, result.Note)
	require.NotNil(t, result.Analysis)
	// 3 matched skills: 60 + 3*3
	assert.Equal(t, 69, result.Analysis.Score)
}

func TestAnalyzeResume_NonQuotaLLMErrorFails(t *testing.T) {
	client := &fakeLLM{err: errors.New("connection refused")}
	svc := newTestService(client, &fakeScraper{}, &fakeDiscoverer{}, nil)

	result := svc.AnalyzeResume(context.Background(), AnalyzeRequest{
		ResumeText:     "resume",
		JobDescription: longJD,
	})

	assert.False(t, result.Success)
	assert.False(t, result.DemoMode)
	assert.Contains(t, result.Error, "connection refused")
}

func TestAnalyzeResume_UnparseableResponseFails(t *testing.T) {
	client := &fakeLLM{responses: []string{"I cannot help with that."}}
	svc := newTestService(client, &fakeScraper{}, &fakeDiscoverer{}, nil)

	result := svc.AnalyzeResume(context.Background(), AnalyzeRequest{
		ResumeText:     "resume",
		JobDescription: longJD,
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "resume analysis failed")
}

func TestAnalyzeResume_InvalidRequest(t *testing.T) {
	svc := newTestService(&fakeLLM{}, &fakeScraper{}, &fakeDiscoverer{}, nil)

	result := svc.AnalyzeResume(context.Background(), AnalyzeRequest{JobDescription: longJD})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "invalid request")
}

func TestGenerateAnswer_Success(t *testing.T) {
	client := &fakeLLM{responses: []string{"  I am a strong fit because...  "}}
	svc := newTestService(client, &fakeScraper{}, &fakeDiscoverer{}, nil)

	result := svc.GenerateAnswer(context.Background(), AnswerRequest{
		Question:       "Why are you a good fit?",
		Profile:        profile.CandidateProfile{Skills: "Go, SQL"},
		JobDescription: longJD,
	})

	require.True(t, result.Success)
	assert.Equal(t, "I am a strong fit because...", result.Answer)

	require.Len(t, client.requests, 1)
	require.Len(t, client.requests[0].Messages, 2)
	assert.Equal(t, llm.RoleSystem, client.requests[0].Messages[0].Role)
	assert.InDelta(t, 0.7, client.requests[0].Temperature, 0.001)
}

func TestGenerateAnswer_QuotaFallsBackToMock(t *testing.T) {
	client := &fakeLLM{err: errors.New("insufficient_quota")}
	svc := newTestService(client, &fakeScraper{}, &fakeDiscoverer{}, nil)

	result := svc.GenerateAnswer(context.Background(), AnswerRequest{
		Question:       "Why are you a good fit?",
		Profile:        profile.CandidateProfile{Skills: "Go, SQL"},
		JobDescription: longJD,
	})

	require.True(t, result.Success)
	assert.True(t, result.DemoMode)
	assert.Contains(t, result.Answer, "Go, SQL")
}

func TestExtractProfile(t *testing.T) {
	client := &fakeLLM{responses: []string{"```json\n" + `{"work_history": "Engineer at Acme", "skills": "Go, SQL", "education": "BS CS", "additional_info": ""}` + "\n```"}}
	svc := newTestService(client, &fakeScraper{}, &fakeDiscoverer{}, nil)

	prof, err := svc.ExtractProfile(context.Background(), "raw resume text")
	require.NoError(t, err)
	assert.Equal(t, "Engineer at Acme", prof.WorkHistory)
	assert.Equal(t, "Go, SQL", prof.Skills)
}

func TestExtractProfile_EmptyResume(t *testing.T) {
	svc := newTestService(&fakeLLM{}, &fakeScraper{}, &fakeDiscoverer{}, nil)

	_, err := svc.ExtractProfile(context.Background(), "   ")
	assert.Error(t, err)
}
