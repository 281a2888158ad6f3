package parse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONObject_PlainObject(t *testing.T) {
	obj, err := JSONObject(`{"score": 85, "ok": true}`)
	require.NoError(t, err)
	assert.Equal(t, 85.0, obj["score"])
	assert.Equal(t, true, obj["ok"])
}

func TestJSONObject_MarkdownFence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json fence", "```json\n{\"score\": 70}\n```"},
		{"bare fence", "```\n{\"score\": 70}\n```"},
		{"fence with prose", "Here is the analysis:\n```json\n{\"score\": 70}\n```\nHope that helps."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := JSONObject(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, 70.0, obj["score"])
		})
	}
}

func TestJSONObject_ProseAroundObject(t *testing.T) {
	raw := `Sure! Based on the resume, {"score": 55, "match_percentage": 0.55} is my assessment.`
	obj, err := JSONObject(raw)
	require.NoError(t, err)
	assert.Equal(t, 55.0, obj["score"])
}

func TestJSONObject_TrailingCommaRepair(t *testing.T) {
	obj, err := JSONObject(`{"keywords": ["go", "sql",], "score": 60,}`)
	require.NoError(t, err)
	assert.Equal(t, 60.0, obj["score"])
	assert.Len(t, obj["keywords"], 2)
}

func TestJSONObject_NestedBraces(t *testing.T) {
	raw := `{"ranked": [{"index": 1, "title": "Engineer"}], "reasoning": "solid {match}"}`
	obj, err := JSONObject(raw)
	require.NoError(t, err)
	assert.Equal(t, "solid {match}", obj["reasoning"])
}

func TestJSONObject_Failures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t"},
		{"no object", "the model refused to answer"},
		{"unclosed object", `{"score": 85`},
		{"garbage between braces", `{not json at all}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := JSONObject(tt.raw)
			require.Error(t, err)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
		})
	}
}
