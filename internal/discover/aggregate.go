package discover

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// overAskFloor is the minimum per-source ask; each adapter is asked for more
// than its fair share so enough listings survive cross-source dedup and the
// recency filter.
const overAskFloor = 35

// Aggregator runs registered adapters concurrently and merges their results.
type Aggregator struct {
	adapters   []Adapter
	maxAgeDays int
	log        *zap.Logger
}

// NewAggregator creates an Aggregator. Adapter registration order fixes the
// merge order: on URL collisions the earlier adapter's listing wins.
func NewAggregator(adapters []Adapter, maxAgeDays int, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{adapters: adapters, maxAgeDays: maxAgeDays, log: log}
}

// Discover fans out to every adapter, one goroutine each, and gathers with
// per-adapter error isolation: a failing board contributes zero results and
// never fails the aggregate call. Latency is bounded by the slowest adapter.
func (a *Aggregator) Discover(ctx context.Context, query, location string, maxResults int) Result {
	if maxResults <= 0 {
		maxResults = 20
	}
	perSource := maxResults + 20
	if perSource < overAskFloor {
		perSource = overAskFloor
	}

	gathered := make([][]Listing, len(a.adapters))
	g, gctx := errgroup.WithContext(ctx)
	for idx, adapter := range a.adapters {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					a.log.Warn("discovery adapter panicked",
						zap.String("source", string(adapter.Source())),
						zap.Any("panic", r))
				}
			}()
			jobs, err := adapter.Discover(gctx, query, location, perSource)
			if err != nil {
				a.log.Warn("discovery adapter failed",
					zap.String("source", string(adapter.Source())),
					zap.Error(err))
				return nil
			}
			gathered[idx] = jobs
			return nil
		})
	}
	_ = g.Wait()

	// Merge in registration order; first occurrence of a URL wins.
	seen := make(map[string]bool)
	var merged []Listing
	for _, jobs := range gathered {
		for _, job := range jobs {
			if job.URL == "" || seen[job.URL] {
				continue
			}
			if job.PostedDaysAgo != nil && !withinCutoff(*job.PostedDaysAgo, a.maxAgeDays) {
				continue
			}
			seen[job.URL] = true
			merged = append(merged, job)
		}
	}
	if len(merged) > maxResults {
		merged = merged[:maxResults]
	}

	sourceSet := make(map[Source]bool)
	var sources []string
	for _, job := range merged {
		if !sourceSet[job.Source] {
			sourceSet[job.Source] = true
			sources = append(sources, string(job.Source))
		}
	}

	a.log.Info("discovery complete",
		zap.String("query", query),
		zap.String("location", location),
		zap.Int("jobs", len(merged)),
		zap.Strings("sources", sources))

	loc := location
	if loc == "" {
		loc = "(any)"
	}
	return Result{
		Jobs:     merged,
		Query:    query,
		Location: loc,
		Sources:  sources,
	}
}

// String implements fmt.Stringer for log-friendly summaries.
func (r Result) String() string {
	return fmt.Sprintf("%d jobs for %q in %q from %v", len(r.Jobs), r.Query, r.Location, r.Sources)
}
