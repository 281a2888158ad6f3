package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRankingResponse_Valid(t *testing.T) {
	doc := map[string]any{
		"reasoning": "strong overlap with the candidate's data skills",
		"ranked": []any{
			map[string]any{"index": 1.0, "title": "Engineer", "company": "Acme", "explanation": "fits", "score": 8.0},
			map[string]any{"index": 3.0},
		},
	}
	assert.NoError(t, ValidateRankingResponse(doc))
}

func TestValidateRankingResponse_MissingRanked(t *testing.T) {
	err := ValidateRankingResponse(map[string]any{"reasoning": "no array"})
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateRankingResponse_BadEntries(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
	}{
		{
			name: "missing index",
			doc: map[string]any{
				"ranked": []any{map[string]any{"title": "Engineer"}},
			},
		},
		{
			name: "zero index",
			doc: map[string]any{
				"ranked": []any{map[string]any{"index": 0.0}},
			},
		},
		{
			name: "fractional index",
			doc: map[string]any{
				"ranked": []any{map[string]any{"index": 1.5}},
			},
		},
		{
			name: "score out of range",
			doc: map[string]any{
				"ranked": []any{map[string]any{"index": 1.0, "score": 42.0}},
			},
		},
		{
			name: "ranked not an array",
			doc: map[string]any{
				"ranked": "top pick: job 2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateRankingResponse(tt.doc))
		})
	}
}
