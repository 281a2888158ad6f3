package discover

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAdapter struct {
	source   Source
	listings []Listing
	err      error
	panics   bool
}

func (s *stubAdapter) Source() Source { return s.source }

func (s *stubAdapter) Discover(_ context.Context, _, _ string, _ int) ([]Listing, error) {
	if s.panics {
		panic("adapter blew up")
	}
	return s.listings, s.err
}

func makeListings(source Source, n int) []Listing {
	out := make([]Listing, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Listing{
			Title:  fmt.Sprintf("Engineer %d", i),
			URL:    fmt.Sprintf("https://%s.example.com/job/%d", source, i),
			Source: source,
		})
	}
	return out
}

func TestAggregator_FailingAdapterIsIsolated(t *testing.T) {
	healthy := &stubAdapter{source: SourceZipRecruiter, listings: makeListings(SourceZipRecruiter, 10)}
	broken := &stubAdapter{source: SourceIndeed, err: fmt.Errorf("blocked: 403")}

	agg := NewAggregator([]Adapter{healthy, broken}, 30, zap.NewNop())
	result := agg.Discover(context.Background(), "go engineer", "", 20)

	assert.Len(t, result.Jobs, 10)
	assert.Equal(t, []string{string(SourceZipRecruiter)}, result.Sources)
}

func TestAggregator_PanickingAdapterIsIsolated(t *testing.T) {
	healthy := &stubAdapter{source: SourceLinkedIn, listings: makeListings(SourceLinkedIn, 3)}
	crashing := &stubAdapter{source: SourceIndeed, panics: true}

	agg := NewAggregator([]Adapter{crashing, healthy}, 30, zap.NewNop())
	result := agg.Discover(context.Background(), "go engineer", "", 20)

	assert.Len(t, result.Jobs, 3)
	assert.Equal(t, []string{string(SourceLinkedIn)}, result.Sources)
}

func TestAggregator_DedupFirstRegisteredWins(t *testing.T) {
	shared := "https://boards.example.com/job/duplicate"
	first := &stubAdapter{source: SourceZipRecruiter, listings: []Listing{
		{Title: "Original", URL: shared, Source: SourceZipRecruiter},
	}}
	second := &stubAdapter{source: SourceLinkedIn, listings: []Listing{
		{Title: "Duplicate", URL: shared, Source: SourceLinkedIn},
		{Title: "Unique", URL: "https://linkedin.example.com/job/1", Source: SourceLinkedIn},
	}}

	agg := NewAggregator([]Adapter{first, second}, 30, zap.NewNop())
	result := agg.Discover(context.Background(), "engineer", "", 20)

	require.Len(t, result.Jobs, 2)
	assert.Equal(t, "Original", result.Jobs[0].Title)
	assert.Equal(t, SourceZipRecruiter, result.Jobs[0].Source)
}

func TestAggregator_RecencyCutoff(t *testing.T) {
	fresh, stale := 5, 45
	adapter := &stubAdapter{source: SourceIndeed, listings: []Listing{
		{Title: "Fresh", URL: "https://indeed.example.com/job/1", Source: SourceIndeed, PostedDaysAgo: &fresh},
		{Title: "Stale", URL: "https://indeed.example.com/job/2", Source: SourceIndeed, PostedDaysAgo: &stale},
		{Title: "Unknown age", URL: "https://indeed.example.com/job/3", Source: SourceIndeed},
	}}

	agg := NewAggregator([]Adapter{adapter}, 30, zap.NewNop())
	result := agg.Discover(context.Background(), "engineer", "", 20)

	require.Len(t, result.Jobs, 2)
	assert.Equal(t, "Fresh", result.Jobs[0].Title)
	assert.Equal(t, "Unknown age", result.Jobs[1].Title)
}

func TestAggregator_TruncatesToMaxResults(t *testing.T) {
	adapter := &stubAdapter{source: SourceZipRecruiter, listings: makeListings(SourceZipRecruiter, 40)}

	agg := NewAggregator([]Adapter{adapter}, 30, zap.NewNop())
	result := agg.Discover(context.Background(), "engineer", "Austin", 5)

	assert.Len(t, result.Jobs, 5)
	assert.Equal(t, "Austin", result.Location)
}

func TestAggregator_EmptyLocationReportedAsAny(t *testing.T) {
	agg := NewAggregator(nil, 30, zap.NewNop())
	result := agg.Discover(context.Background(), "engineer", "", 10)

	assert.Empty(t, result.Jobs)
	assert.Equal(t, "(any)", result.Location)
}
