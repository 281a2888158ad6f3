package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/discover"
	"github.com/jonathan/job-assistant/internal/llm"
	"github.com/jonathan/job-assistant/internal/parse"
	"github.com/jonathan/job-assistant/internal/profile"
	"github.com/jonathan/job-assistant/internal/prompts"
	"github.com/jonathan/job-assistant/internal/schemas"
)

const (
	defaultMaxJobs   = 20
	defaultMaxRanked = 15
)

// RankForUser runs the full matching flow: profile from the database, job
// discovery driven by the profile, then model ranking with explanations.
// Ranking failures never lose the discovered jobs; the raw candidates pass
// through unranked instead.
func (s *Service) RankForUser(ctx context.Context, userID string, maxJobs, maxRanked int) RankingResult {
	if maxJobs <= 0 {
		maxJobs = defaultMaxJobs
	}
	if maxRanked <= 0 {
		maxRanked = defaultMaxRanked
	}

	if s.profiles == nil {
		return RankingResult{Error: "no database configured; set DATABASE_URL for profile lookup"}
	}
	prof, err := s.profiles.Get(ctx, strings.TrimSpace(userID))
	if err != nil {
		return RankingResult{Error: fmt.Sprintf("profile lookup failed: %v", err)}
	}

	query := buildQuery(prof)
	location := normalizeLocation(prof.Location)

	result := s.discoverer.Discover(ctx, query, location, maxJobs)
	jobs := result.Jobs

	// Broader retry when the profile-driven search comes back empty; boards
	// block, locations over-constrain, markup changes.
	if len(jobs) == 0 {
		fallbackQuery := "software engineer"
		if query == fallbackQuery {
			fallbackQuery = "developer"
		}
		s.log.Info("no jobs found, retrying with fallback query",
			zap.String("query", query),
			zap.String("fallback", fallbackQuery))
		fallback := s.discoverer.Discover(ctx, fallbackQuery, "", maxJobs)
		if len(fallback.Jobs) > 0 {
			result = fallback
			jobs = fallback.Jobs
			query = fallbackQuery
			location = ""
		}
	}

	if len(jobs) == 0 {
		loc := location
		if loc == "" {
			loc = "(any)"
		}
		s.log.Warn("no jobs discovered", zap.String("query", query), zap.String("location", loc))
		return RankingResult{
			RankedJobs: []RankedJob{},
			Reasoning: fmt.Sprintf(
				"No jobs found for your profile. Search used: %q in %q. "+
					"Job boards may be blocking automated requests, or the search returned no listings. "+
					"Try updating your preferences (roles/location) or try again later.",
				query, loc),
			Profile:  prof,
			Query:    query,
			Location: loc,
		}
	}

	ranked, reasoning, ok := s.rankWithModel(ctx, prof, jobs, maxRanked)
	if !ok {
		ranked = passThrough(jobs, maxRanked)
	}

	return RankingResult{
		RankedJobs: ranked,
		Reasoning:  reasoning,
		Profile:    prof,
		Query:      result.Query,
		Location:   result.Location,
	}
}

// rankWithModel asks the model to rank jobs. ok is false whenever the
// response cannot be used, from transport failure through schema violation
// to an empty ranked array.
func (s *Service) rankWithModel(ctx context.Context, prof profile.CandidateProfile, jobs []discover.Listing, maxRanked int) ([]RankedJob, string, bool) {
	raw, err := s.llm.Complete(ctx, llm.Request{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.RankingSystem()},
			{Role: llm.RoleUser, Content: prompts.RankJobs(prof.Summary(), jobs, maxRanked)},
		},
		Temperature: rankingTemperature,
	})
	if err != nil {
		s.log.Warn("ranking call failed, passing candidates through", zap.Error(err))
		return nil, "", false
	}

	obj, err := parse.JSONObject(raw)
	if err != nil {
		s.log.Warn("ranking response was not valid JSON", zap.Error(err))
		return nil, "", false
	}
	if err := schemas.ValidateRankingResponse(obj); err != nil {
		s.log.Warn("ranking response failed schema check", zap.Error(err))
		return nil, "", false
	}

	reasoning, _ := obj["reasoning"].(string)
	entries, _ := obj["ranked"].([]any)
	if len(entries) == 0 {
		return nil, reasoning, false
	}
	if len(entries) > maxRanked {
		entries = entries[:maxRanked]
	}

	ranked := make([]RankedJob, 0, len(entries))
	for i, e := range entries {
		entry, _ := e.(map[string]any)
		idx := intField(entry, "index", i+1)

		// Model indices are 1-based; out-of-range entries keep the model's
		// text merged against an empty listing.
		jobIdx := idx - 1
		var orig discover.Listing
		if jobIdx >= 0 && jobIdx < len(jobs) {
			orig = jobs[jobIdx]
		}

		job := RankedJob{
			Rank:        i + 1,
			JobIndex:    jobIdx,
			Title:       firstNonEmpty(stringField(entry, "title"), orig.Title, "—"),
			Company:     firstNonEmpty(stringField(entry, "company"), orig.Company, "—"),
			URL:         orig.URL,
			Snippet:     orig.Snippet,
			Location:    orig.Location,
			Explanation: stringField(entry, "explanation"),
		}
		if score, ok := numberField(entry, "score"); ok {
			v := int(score)
			job.Score = &v
		}
		ranked = append(ranked, job)
	}
	return ranked, reasoning, true
}

// passThrough converts raw candidates into unranked entries.
func passThrough(jobs []discover.Listing, max int) []RankedJob {
	if len(jobs) > max {
		jobs = jobs[:max]
	}
	out := make([]RankedJob, 0, len(jobs))
	for i, job := range jobs {
		out = append(out, RankedJob{
			Rank:     i + 1,
			JobIndex: i,
			Title:    firstNonEmpty(job.Title, "—"),
			Company:  firstNonEmpty(job.Company, "—"),
			URL:      job.URL,
			Snippet:  job.Snippet,
			Location: job.Location,
		})
	}
	return out
}

// buildQuery derives the search query from the profile: first role plus up
// to two preferred skills, defaulting to a broad search.
func buildQuery(p profile.CandidateProfile) string {
	query := p.FirstRole()
	if query == "" {
		query = "software engineer"
	}
	if skills := p.TopSkills(2); len(skills) > 0 {
		query = query + " " + strings.Join(skills, " ")
	}
	return strings.TrimSpace(query)
}

// normalizeLocation reduces a multi-valued location preference to one board
// query: any remote mention collapses to "Remote", otherwise the first
// entry is used.
func normalizeLocation(location string) string {
	parts := strings.Split(location, ",")
	for _, part := range parts {
		if strings.Contains(strings.ToLower(part), "remote") {
			return "Remote"
		}
	}
	if first := strings.TrimSpace(parts[0]); first != "" {
		return first
	}
	return ""
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func intField(m map[string]any, key string, fallback int) int {
	if n, ok := numberField(m, key); ok {
		return int(n)
	}
	return fallback
}

func numberField(m map[string]any, key string) (float64, bool) {
	n, ok := m[key].(float64)
	return n, ok
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
