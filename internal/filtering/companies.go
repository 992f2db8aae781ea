package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/internai/internal/types"
)

type companiesFilter struct {
	toggle
	companies []string
	logger    *zap.Logger
}

// NewExcludedCompanies creates a filter that removes jobs of the listed
// companies. Names are compared case-insensitively.
func NewExcludedCompanies(companies []string, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &companiesFilter{companies: companies, logger: logger}
}

func (f *companiesFilter) Name() string { return "companies" }

func (f *companiesFilter) Validate() error { return nil }

func (f *companiesFilter) Apply(_ context.Context, jobs []types.JobItem) ([]types.JobItem, Step, error) {
	initial := len(jobs)
	if len(f.companies) == 0 {
		return jobs, Step{Initial: initial, Left: initial}, nil
	}

	excluded := make(map[string]struct{}, len(f.companies))
	for _, c := range f.companies {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			excluded[c] = struct{}{}
		}
	}

	kept, removed := exclude(jobs, func(job types.JobItem) bool {
		_, ok := excluded[strings.ToLower(strings.TrimSpace(job.Company))]
		return ok
	})

	if len(removed) > 0 {
		f.logger.Info("excluding jobs by company",
			zap.Strings("excluded_companies", f.companies),
			zap.Strings("excluded_jobs", removed),
			zap.Int("jobs_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(removed), Left: len(kept)}, nil
}

func (f *companiesFilter) Status() Status {
	details := map[string]string{}
	if len(f.companies) > 0 {
		details["companies"] = strings.Join(f.companies, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
