package filtering

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/internai/internal/types"
)

type sourcesFilter struct {
	toggle
	sources []string
	logger  *zap.Logger
}

// NewSources creates a filter keeping only jobs from the listed sources.
// An empty list keeps everything.
func NewSources(sources []string, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sourcesFilter{sources: sources, logger: logger}
}

func (f *sourcesFilter) Name() string { return "sources" }

func (f *sourcesFilter) Validate() error {
	for _, s := range f.sources {
		if strings.TrimSpace(s) == "" {
			return errors.New("source names must not be blank")
		}
	}
	return nil
}

func (f *sourcesFilter) Apply(_ context.Context, jobs []types.JobItem) ([]types.JobItem, Step, error) {
	initial := len(jobs)
	if len(f.sources) == 0 {
		return jobs, Step{Initial: initial, Left: initial}, nil
	}

	allowed := make(map[types.Source]struct{}, len(f.sources))
	for _, s := range f.sources {
		allowed[types.Source(strings.ToLower(strings.TrimSpace(s)))] = struct{}{}
	}

	kept, removed := exclude(jobs, func(job types.JobItem) bool {
		_, ok := allowed[types.Source(strings.ToLower(string(job.Source)))]
		return !ok
	})

	if len(removed) > 0 {
		f.logger.Info("excluding jobs from other sources",
			zap.Strings("allowed_sources", f.sources),
			zap.Strings("excluded_jobs", removed),
			zap.Int("jobs_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(removed), Left: len(kept)}, nil
}

func (f *sourcesFilter) Status() Status {
	details := map[string]string{}
	if len(f.sources) > 0 {
		details["sources"] = strings.Join(f.sources, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
