package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResumeScoreFromRaw_EmptyInput(t *testing.T) {
	result := ResumeScoreFromRaw(map[string]any{})

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0.0, result.MatchPercentage)
	assert.NotNil(t, result.Suggestions)
	assert.Empty(t, result.Suggestions)
	assert.NotNil(t, result.MatchedKeywords)
	assert.NotNil(t, result.MissingKeywords)
}

func TestResumeScoreFromRaw_ScoreClamping(t *testing.T) {
	tests := []struct {
		name      string
		raw       map[string]any
		wantScore int
		wantPct   float64
	}{
		{
			name:      "in range",
			raw:       map[string]any{"score": 85.0, "match_percentage": 0.85},
			wantScore: 85,
			wantPct:   0.85,
		},
		{
			name:      "over 100 clamps",
			raw:       map[string]any{"score": 150.0},
			wantScore: 100,
			wantPct:   1.0,
		},
		{
			name:      "negative clamps to zero",
			raw:       map[string]any{"score": -5.0},
			wantScore: 0,
			wantPct:   0.0,
		},
		{
			name:      "percentage clamps independently",
			raw:       map[string]any{"score": 72.0, "match_percentage": 7.2},
			wantScore: 72,
			wantPct:   1.0,
		},
		{
			name:      "score falls back to percentage",
			raw:       map[string]any{"match_percentage": 0.64},
			wantScore: 64,
			wantPct:   0.64,
		},
		{
			name:      "percentage falls back to score",
			raw:       map[string]any{"score": 40.0},
			wantScore: 40,
			wantPct:   0.4,
		},
		{
			name:      "numeric string takes default",
			raw:       map[string]any{"score": "150"},
			wantScore: 0,
			wantPct:   0.0,
		},
		{
			name:      "non-numeric string takes default",
			raw:       map[string]any{"score": "high"},
			wantScore: 0,
			wantPct:   0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResumeScoreFromRaw(tt.raw)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.InDelta(t, tt.wantPct, result.MatchPercentage, 0.001)
		})
	}
}

func TestResumeScoreFromRaw_LegacyStringSuggestions(t *testing.T) {
	result := ResumeScoreFromRaw(map[string]any{
		"suggestions": []any{"Add more keywords", "", 42},
	})

	assert.Len(t, result.Suggestions, 1)
	assert.Equal(t, CategoryKeywords, result.Suggestions[0].Category)
	assert.Equal(t, "Add more keywords", result.Suggestions[0].Suggestion)
	assert.Equal(t, PriorityMedium, result.Suggestions[0].Priority)
}

func TestResumeScoreFromRaw_ScalarSuggestion(t *testing.T) {
	result := ResumeScoreFromRaw(map[string]any{"suggestions": "Add Python"})

	assert.Len(t, result.Suggestions, 1)
	assert.Equal(t, Suggestion{
		Category:   CategoryKeywords,
		Suggestion: "Add Python",
		Priority:   PriorityMedium,
	}, result.Suggestions[0])

	nonString := ResumeScoreFromRaw(map[string]any{"suggestions": 42})
	assert.Empty(t, nonString.Suggestions)
}

func TestResumeScoreFromRaw_SuggestionEnumSnapping(t *testing.T) {
	result := ResumeScoreFromRaw(map[string]any{
		"suggestions": []any{
			map[string]any{"category": "EXPERIENCE", "suggestion": "quantify it", "priority": "HIGH"},
			map[string]any{"category": "wildcard", "suggestion": "odd category", "priority": "urgent"},
			map[string]any{"category": "skills", "suggestion": ""},
		},
	})

	assert.Len(t, result.Suggestions, 2)
	assert.Equal(t, CategoryExperience, result.Suggestions[0].Category)
	assert.Equal(t, PriorityHigh, result.Suggestions[0].Priority)
	assert.Equal(t, CategoryKeywords, result.Suggestions[1].Category)
	assert.Equal(t, PriorityMedium, result.Suggestions[1].Priority)
}

func TestResumeScoreFromRaw_KeywordCoercion(t *testing.T) {
	result := ResumeScoreFromRaw(map[string]any{
		"matched_keywords": "python",
		"missing_keywords": []any{"docker", 3, "aws"},
	})

	assert.Equal(t, []string{"python"}, result.MatchedKeywords)
	assert.Equal(t, []string{"docker", "aws"}, result.MissingKeywords)
}

func TestResumeScoreFromRaw_MissingSkillsFallback(t *testing.T) {
	result := ResumeScoreFromRaw(map[string]any{
		"missing_skills": []any{"kubernetes", "terraform"},
	})

	assert.Equal(t, []string{"kubernetes", "terraform"}, result.MissingKeywords)
	assert.Equal(t, []string{"kubernetes", "terraform"}, result.MissingSkills)
}

func TestResumeScoreFromRaw_StrengthsStrictList(t *testing.T) {
	withStrings := ResumeScoreFromRaw(map[string]any{
		"strengths": []any{"clear writing", "strong fundamentals"},
	})
	assert.Equal(t, []string{"clear writing", "strong fundamentals"}, withStrings.Strengths)

	mixed := ResumeScoreFromRaw(map[string]any{
		"strengths": []any{"clear writing", 7},
	})
	assert.Nil(t, mixed.Strengths)

	scalar := ResumeScoreFromRaw(map[string]any{
		"strengths": "clear writing",
	})
	assert.Nil(t, scalar.Strengths)
}
